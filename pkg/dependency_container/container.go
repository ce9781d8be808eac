package dependency_container

import (
	"fmt"

	"github.com/NeuralTrust/ComplianceHawk/pkg/app/audit"
	"github.com/NeuralTrust/ComplianceHawk/pkg/app/model"
	"github.com/NeuralTrust/ComplianceHawk/pkg/app/prompt"
	"github.com/NeuralTrust/ComplianceHawk/pkg/app/verdict"
	"github.com/NeuralTrust/ComplianceHawk/pkg/config"
	handlers "github.com/NeuralTrust/ComplianceHawk/pkg/handlers/http"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/httpx"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/prometheus"
	providersFactory "github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers/factory"
	"github.com/NeuralTrust/ComplianceHawk/pkg/middleware"
	"github.com/NeuralTrust/ComplianceHawk/pkg/version"
	"github.com/sirupsen/logrus"
)

type Container struct {
	ModelAdapter           model.Adapter
	PromptBuilder          prompt.Builder
	Interpreter            verdict.Interpreter
	AuditService           audit.Service
	HandlerTransport       handlers.HandlerTransport
	MiddlewareTransport    *middleware.Transport
	RequestIDMiddleware    middleware.Middleware
	MetricsMiddleware      middleware.Middleware
	PanicRecoverMiddleware middleware.Middleware
	CORSMiddleware         middleware.Middleware
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	// HTTPClient overrides the outbound client, mainly for tests.
	HTTPClient httpx.Client
	// ProviderLocator overrides provider resolution, mainly for tests.
	ProviderLocator providersFactory.ProviderLocator
}

func NewContainer(di ContainerDI) (*Container, error) {
	if di.Cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if di.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	httpClient := di.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewFastHTTPClient(
			httpx.WithTimeout(di.Cfg.Model.Timeout),
			httpx.WithUserAgent(version.AppName+"/"+version.Version),
		)
	}

	providerLocator := di.ProviderLocator
	if providerLocator == nil {
		providerLocator = providersFactory.NewProviderLocator(httpClient)
	}

	var breaker httpx.CircuitBreaker = httpx.NoopCircuitBreaker{}
	if di.Cfg.Model.Breaker.Enabled {
		breaker = httpx.NewCircuitBreaker(
			di.Cfg.Model.Provider,
			di.Cfg.Model.Breaker.Timeout,
			di.Cfg.Model.Breaker.MaxFailures,
			prometheus.BreakerStateChanged,
		)
	}

	modelAdapter := model.NewAdapter(di.Logger, di.Cfg.Model, providerLocator, breaker)

	promptBuilder, err := prompt.NewBuilder(di.Cfg.Audit.OutputMode, di.Cfg.Audit.EscapeInputs)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt builder: %w", err)
	}
	interpreter := verdict.NewInterpreter(di.Cfg.Audit.OutputMode, di.Cfg.Audit.DecorateStatus)

	auditService := audit.NewService(
		di.Logger,
		modelAdapter,
		promptBuilder,
		interpreter,
		di.Cfg.Audit.DefaultRule,
	)

	// middleware, outermost first
	requestIDMiddleware := middleware.NewRequestIDMiddleware()
	corsMiddleware := middleware.NewCORSMiddleware(middleware.CORSConfig{
		AllowOrigins:     di.Cfg.Server.CORS.AllowOrigins,
		AllowMethods:     di.Cfg.Server.CORS.AllowMethods,
		AllowCredentials: di.Cfg.Server.CORS.AllowCredentials,
		MaxAge:           di.Cfg.Server.CORS.MaxAge,
	})
	metricsMiddleware := middleware.NewMetricsMiddleware(di.Logger)
	panicRecoverMiddleware := middleware.NewPanicRecoverMiddleware(di.Logger)

	middlewareTransport := middleware.NewTransport(
		requestIDMiddleware,
		corsMiddleware,
		metricsMiddleware,
		panicRecoverMiddleware,
	)

	// Handler Transport
	handlerTransport := &handlers.HandlerTransportDTO{
		AuditContractHandler: handlers.NewAuditContractHandler(di.Logger, auditService),
		RootHandler:          handlers.NewRootHandler(),
		HealthHandler:        handlers.NewHealthHandler(modelAdapter),
		GetVersionHandler:    handlers.NewGetVersionHandler(),
	}

	return &Container{
		ModelAdapter:           modelAdapter,
		PromptBuilder:          promptBuilder,
		Interpreter:            interpreter,
		AuditService:           auditService,
		HandlerTransport:       handlerTransport,
		MiddlewareTransport:    middlewareTransport,
		RequestIDMiddleware:    requestIDMiddleware,
		MetricsMiddleware:      metricsMiddleware,
		PanicRecoverMiddleware: panicRecoverMiddleware,
		CORSMiddleware:         corsMiddleware,
	}, nil
}
