package audit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/NeuralTrust/ComplianceHawk/pkg/domain/audit"
	"github.com/stretchr/testify/assert"
)

func TestClampRiskScore(t *testing.T) {
	assert.Equal(t, 0, audit.ClampRiskScore(-5))
	assert.Equal(t, 0, audit.ClampRiskScore(0))
	assert.Equal(t, 42, audit.ClampRiskScore(42))
	assert.Equal(t, 100, audit.ClampRiskScore(100))
	assert.Equal(t, 100, audit.ClampRiskScore(1000))
}

func TestFailSafeVerdict(t *testing.T) {
	v := audit.FailSafeVerdict("not json at all")
	assert.Equal(t, "Error", v.Status)
	assert.Equal(t, 100, v.RiskScore)
	assert.Equal(t, "Failed to parse model response. Raw response: not json at all", v.Explanation)
}

func TestRequest_WithDefaultRule(t *testing.T) {
	req := audit.Request{ContractText: "7 days notice"}
	assert.Equal(t, "Indian Labor Law Standards", req.WithDefaultRule("Indian Labor Law Standards").RegulationRule)

	req.RegulationRule = "minimum 30 days"
	assert.Equal(t, "minimum 30 days", req.WithDefaultRule("ignored").RegulationRule)

	req.RegulationRule = "   "
	assert.Equal(t, "fallback", req.WithDefaultRule("fallback").RegulationRule)
}

func TestErrors(t *testing.T) {
	unavailable := fmt.Errorf("wrapped: %w", audit.NewUnavailableError("PROJECT_ID not set"))
	assert.ErrorIs(t, unavailable, audit.ErrAdapterUnavailable)
	assert.Contains(t, unavailable.Error(), "PROJECT_ID not set")

	cause := errors.New("quota exceeded")
	genErr := audit.NewGenerationError("watsonx", cause)
	assert.ErrorIs(t, genErr, cause)
	assert.NotErrorIs(t, genErr, audit.ErrAdapterUnavailable)

	var target *audit.GenerationError
	assert.ErrorAs(t, fmt.Errorf("ctx: %w", genErr), &target)
	assert.Equal(t, "watsonx", target.Provider)
}
