package response

import "github.com/NeuralTrust/ComplianceHawk/pkg/domain/audit"

type AuditContractResponse struct {
	Status      string `json:"status" example:"🔴 Non-Compliant"`
	RiskScore   int    `json:"risk_score" example:"100"`
	Explanation string `json:"explanation" example:"The contract specifies 7 days, which is less than the mandatory 30 days."`
}

func NewAuditContractResponse(v audit.Verdict) AuditContractResponse {
	return AuditContractResponse{
		Status:      v.Status,
		RiskScore:   audit.ClampRiskScore(v.RiskScore),
		Explanation: v.Explanation,
	}
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail" example:"AI Model not initialized. Check server logs/configuration."`
}

type MessageResponse struct {
	Message string `json:"message" example:"Compliance Hawk API is running. Visit /docs for Swagger UI."`
}
