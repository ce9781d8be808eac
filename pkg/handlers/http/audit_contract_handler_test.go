package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	auditMocks "github.com/NeuralTrust/ComplianceHawk/pkg/app/audit/mocks"
	"github.com/NeuralTrust/ComplianceHawk/pkg/common"
	domainAudit "github.com/NeuralTrust/ComplianceHawk/pkg/domain/audit"
	"github.com/NeuralTrust/ComplianceHawk/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newAuditApp(t *testing.T) (*fiber.App, *auditMocks.Service) {
	t.Helper()
	service := auditMocks.NewService(t)
	app := fiber.New()
	app.Post("/audit_contract", NewAuditContractHandler(silentLogger(), service).Handle)
	return app, service
}

func postJSON(t *testing.T, app *fiber.App, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/audit_contract", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestAuditContractHandler_Success(t *testing.T) {
	app, service := newAuditApp(t)

	service.EXPECT().
		Audit(mock.Anything, domainAudit.Request{
			ContractText:   "Notice period is 7 days.",
			RegulationRule: "Minimum notice is 30 days.",
		}).
		Return(domainAudit.Verdict{
			Status:      "🔴 Non-Compliant",
			RiskScore:   100,
			Explanation: "7 is less than 30.",
		}, nil).
		Once()

	status, raw := postJSON(t, app, `{"contract_text":"Notice period is 7 days.","regulation_rule":"Minimum notice is 30 days."}`)
	assert.Equal(t, fiber.StatusOK, status)

	var got response.AuditContractResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "🔴 Non-Compliant", got.Status)
	assert.Equal(t, 100, got.RiskScore)
	assert.Equal(t, "7 is less than 30.", got.Explanation)
}

func TestAuditContractHandler_RuleOmittedIsPassedEmpty(t *testing.T) {
	app, service := newAuditApp(t)

	service.EXPECT().
		Audit(mock.Anything, mock.MatchedBy(func(req domainAudit.Request) bool {
			return req.ContractText == "clause" && req.RegulationRule == ""
		})).
		Return(domainAudit.Verdict{Status: "🟢 Compliant", RiskScore: 0, Explanation: "ok"}, nil).
		Once()

	status, _ := postJSON(t, app, `{"contract_text":"clause"}`)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestAuditContractHandler_ResponseHasExactlyThreeFields(t *testing.T) {
	app, service := newAuditApp(t)

	service.EXPECT().
		Audit(mock.Anything, mock.Anything).
		Return(domainAudit.FailSafeVerdict("garbage"), nil).
		Once()

	status, raw := postJSON(t, app, `{"contract_text":"clause"}`)
	assert.Equal(t, fiber.StatusOK, status)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, 3)
	assert.Equal(t, "Error", fields["status"])
	assert.EqualValues(t, 100, fields["risk_score"])
	assert.Equal(t, domainAudit.UnparseablePrefix+"garbage", fields["explanation"])
}

func TestAuditContractHandler_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"contract_text":`},
		{name: "missing contract_text", body: `{"regulation_rule":"rule"}`},
		{name: "blank contract_text", body: `{"contract_text":"   "}`},
		{name: "wrong type", body: `{"contract_text":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newAuditApp(t)

			status, raw := postJSON(t, app, tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)

			var got response.ErrorResponse
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.NotEmpty(t, got.Detail)
		})
	}
}

func TestAuditContractHandler_AdapterUnavailable(t *testing.T) {
	app, service := newAuditApp(t)

	service.EXPECT().
		Audit(mock.Anything, mock.Anything).
		Return(domainAudit.Verdict{}, domainAudit.NewUnavailableError("api_key is required")).
		Once()

	status, raw := postJSON(t, app, `{"contract_text":"clause"}`)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.JSONEq(t, `{"detail":"AI Model not initialized. Check server logs/configuration."}`, string(raw))
}

func TestAuditContractHandler_GenerationError(t *testing.T) {
	app, service := newAuditApp(t)

	genErr := domainAudit.NewGenerationError(common.ProviderWatsonx, errors.New("quota exceeded"))
	service.EXPECT().
		Audit(mock.Anything, mock.Anything).
		Return(domainAudit.Verdict{}, genErr).
		Once()

	status, raw := postJSON(t, app, `{"contract_text":"clause"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)

	var got response.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, genErr.Error(), got.Detail)
	assert.Contains(t, got.Detail, "quota exceeded")
}

func TestAuditContractHandler_EmptyContractFromService(t *testing.T) {
	app, service := newAuditApp(t)

	service.EXPECT().
		Audit(mock.Anything, mock.Anything).
		Return(domainAudit.Verdict{}, domainAudit.ErrEmptyContract).
		Once()

	status, _ := postJSON(t, app, `{"contract_text":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
