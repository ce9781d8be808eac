package request

import (
	"errors"
	"strings"

	"github.com/NeuralTrust/ComplianceHawk/pkg/domain/audit"
)

var ErrContractTextRequired = errors.New("contract_text is required")

type AuditContractRequest struct {
	ContractText   string `json:"contract_text" example:"The Vendor Agreement may be terminated by either party with a written notice of 7 days."` // @required
	RegulationRule string `json:"regulation_rule,omitempty" example:"All vendor contracts must have a minimum termination notice period of 30 days."`
}

func (r *AuditContractRequest) Validate() error {
	if strings.TrimSpace(r.ContractText) == "" {
		return ErrContractTextRequired
	}
	return nil
}

// ToDomain leaves an empty rule empty; the service applies its default.
func (r *AuditContractRequest) ToDomain() audit.Request {
	return audit.Request{
		ContractText:   r.ContractText,
		RegulationRule: r.RegulationRule,
	}
}
