package audit

import "strings"

// Request is one clause submitted for review against one regulation rule.
type Request struct {
	ContractText   string `json:"contract_text" example:"The Vendor Agreement may be terminated by either party with a written notice of 7 days."`
	RegulationRule string `json:"regulation_rule,omitempty" example:"All vendor contracts must have a minimum termination notice period of 30 days."`
}

// WithDefaultRule returns a copy of r whose rule is defaultRule when r has none.
func (r Request) WithDefaultRule(defaultRule string) Request {
	if strings.TrimSpace(r.RegulationRule) == "" {
		r.RegulationRule = defaultRule
	}
	return r
}

// Verdict is the service answer. RiskScore is always within [MinRiskScore, MaxRiskScore].
type Verdict struct {
	Status      string `json:"status" example:"🔴 Non-Compliant"`
	RiskScore   int    `json:"risk_score" example:"100"`
	Explanation string `json:"explanation" example:"The contract specifies 7 days, which is less than the mandatory 30 days."`
}

const (
	MinRiskScore = 0
	MaxRiskScore = 100

	StatusCompliant    = "Compliant"
	StatusNonCompliant = "Non-Compliant"
	StatusUnknown      = "Unknown"
	StatusError        = "Error"

	DefaultExplanation = "No explanation provided."
	UnparseablePrefix  = "Failed to parse model response. Raw response: "
)

// ClampRiskScore pins score into the allowed range.
func ClampRiskScore(score int) int {
	switch {
	case score < MinRiskScore:
		return MinRiskScore
	case score > MaxRiskScore:
		return MaxRiskScore
	default:
		return score
	}
}

// FailSafeVerdict is returned when the model answered but its answer could not
// be read. Unreadable output counts as maximal risk, never as compliant.
func FailSafeVerdict(raw string) Verdict {
	return Verdict{
		Status:      StatusError,
		RiskScore:   MaxRiskScore,
		Explanation: UnparseablePrefix + raw,
	}
}
