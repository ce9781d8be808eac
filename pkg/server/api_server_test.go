package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	auditMocks "github.com/NeuralTrust/ComplianceHawk/pkg/app/audit/mocks"
	modelMocks "github.com/NeuralTrust/ComplianceHawk/pkg/app/model/mocks"
	"github.com/NeuralTrust/ComplianceHawk/pkg/common"
	"github.com/NeuralTrust/ComplianceHawk/pkg/config"
	domainAudit "github.com/NeuralTrust/ComplianceHawk/pkg/domain/audit"
	handlers "github.com/NeuralTrust/ComplianceHawk/pkg/handlers/http"
	"github.com/NeuralTrust/ComplianceHawk/pkg/middleware"
	"github.com/NeuralTrust/ComplianceHawk/pkg/server"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type badTransport struct{}

func (b *badTransport) GetTransport() handlers.HandlerTransport { return b }

func newTestServer(t *testing.T) (*server.APIServer, *auditMocks.Service) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	service := auditMocks.NewService(t)
	adapter := modelMocks.NewAdapter(t)
	adapter.EXPECT().Provider().Return("watsonx").Maybe()
	adapter.EXPECT().Available().Return(true).Maybe()
	adapter.EXPECT().Reason().Return("").Maybe()

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8000, PublicURL: "http://localhost:8000"},
		Model:  config.ModelConfig{Timeout: time.Second},
	}

	srv := server.NewAPIServer(server.APIServerDI{
		MiddlewareTransport: middleware.NewTransport(
			middleware.NewRequestIDMiddleware(),
			middleware.NewMetricsMiddleware(logger),
			middleware.NewPanicRecoverMiddleware(logger),
		),
		HandlerTransport: &handlers.HandlerTransportDTO{
			AuditContractHandler: handlers.NewAuditContractHandler(logger, service),
			RootHandler:          handlers.NewRootHandler(),
			HealthHandler:        handlers.NewHealthHandler(adapter),
			GetVersionHandler:    handlers.NewGetVersionHandler(),
		},
		Config: cfg,
		Logger: logger,
	})
	return srv, service
}

func TestAPIServer_Routes(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/", "/health", "/version", "/swagger.json", server.PingPath} {
		t.Run(path, func(t *testing.T) {
			resp, err := srv.Router.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(common.RequestIDHeader))
		})
	}
}

func TestAPIServer_Root(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.Router.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Compliance Hawk API is running. Visit /docs for Swagger UI."}`, string(raw))
}

func TestAPIServer_SwaggerJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.Router.Test(httptest.NewRequest(fiber.MethodGet, "/swagger.json", nil))
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Contains(t, doc["paths"], "/audit_contract")
}

func TestAPIServer_AuditContract(t *testing.T) {
	srv, service := newTestServer(t)

	service.EXPECT().
		Audit(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, req domainAudit.Request) (domainAudit.Verdict, error) {
			// The request id reaches the service through the context.
			id, _ := ctx.Value(common.RequestIDContextKey).(string)
			return domainAudit.Verdict{Status: "🟢 Compliant", RiskScore: 0, Explanation: id}, nil
		}).
		Once()

	req := httptest.NewRequest(fiber.MethodPost, "/audit_contract", bytes.NewBufferString(`{"contract_text":"Notice is 45 days."}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeader, "trace-1")

	resp, err := srv.Router.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"🟢 Compliant","risk_score":0,"explanation":"trace-1"}`, string(raw))
}

func TestAPIServer_UnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.Router.Test(httptest.NewRequest(fiber.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAPIServer_InvalidTransportLeavesRoutesUnbuilt(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	srv := server.NewAPIServer(server.APIServerDI{
		MiddlewareTransport: middleware.NewTransport(),
		HandlerTransport:    &badTransport{},
		Config:              &config.Config{Model: config.ModelConfig{Timeout: time.Second}},
		Logger:              logger,
	})

	resp, err := srv.Router.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = srv.Router.Test(httptest.NewRequest(fiber.MethodGet, server.PingPath, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
