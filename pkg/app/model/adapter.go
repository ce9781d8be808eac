package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/ComplianceHawk/pkg/common"
	"github.com/NeuralTrust/ComplianceHawk/pkg/config"
	"github.com/NeuralTrust/ComplianceHawk/pkg/domain/audit"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/httpx"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/prometheus"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers/factory"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Adapter --dir=. --output=./mocks --filename=adapter_mock.go --case=underscore --with-expecter

// Adapter turns a prompt into raw model text. It is safe for concurrent use
// and holds no per-request state.
type Adapter interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Available() bool
	Reason() string
	Provider() string
}

type adapter struct {
	logger   *logrus.Logger
	provider string
	client   providers.Client
	config   *providers.Config
	timeout  time.Duration
	breaker  httpx.CircuitBreaker
}

type disabledAdapter struct {
	provider string
	reason   string
}

// NewAdapter resolves the configured provider and checks its credentials.
// Any problem yields a permanently disabled adapter; the reason is logged
// here, once, and never again per request.
func NewAdapter(
	logger *logrus.Logger,
	cfg config.ModelConfig,
	locator factory.ProviderLocator,
	breaker httpx.CircuitBreaker,
) Adapter {
	client, err := locator.Get(cfg.Provider)
	if err != nil {
		return disable(logger, cfg.Provider, err)
	}

	providerConfig := ProviderConfig(cfg)
	if err := client.Validate(providerConfig); err != nil {
		return disable(logger, cfg.Provider, err)
	}

	if breaker == nil {
		breaker = httpx.NoopCircuitBreaker{}
	}

	prometheus.ModelAvailable.WithLabelValues(cfg.Provider).Set(1)
	logger.WithFields(logrus.Fields{
		"provider": cfg.Provider,
		"model":    cfg.ModelID,
		"timeout":  cfg.Timeout.String(),
	}).Info("model adapter ready")

	return &adapter{
		logger:   logger,
		provider: cfg.Provider,
		client:   client,
		config:   providerConfig,
		timeout:  cfg.Timeout,
		breaker:  breaker,
	}
}

func disable(logger *logrus.Logger, provider string, err error) Adapter {
	prometheus.ModelAvailable.WithLabelValues(provider).Set(0)
	logger.WithError(err).
		WithField("provider", provider).
		Warn("model adapter disabled; /audit_contract will answer 503")
	return &disabledAdapter{provider: provider, reason: err.Error()}
}

// ProviderConfig maps the model section of the service config onto the
// provider-neutral request config.
func ProviderConfig(cfg config.ModelConfig) *providers.Config {
	pc := &providers.Config{
		Credentials: providers.Credentials{
			ApiKey:     cfg.APIKey,
			ProjectID:  cfg.ProjectID,
			BaseURL:    cfg.EndpointURL,
			IAMURL:     cfg.IAMURL,
			APIVersion: cfg.APIVersion,
		},
		Model:             cfg.ModelID,
		MaxTokens:         cfg.Decoding.MaxNewTokens,
		MinTokens:         cfg.Decoding.MinNewTokens,
		Temperature:       cfg.Decoding.Temperature,
		RepetitionPenalty: cfg.Decoding.RepetitionPenalty,
		DecodingMethod:    cfg.Decoding.Method,
		SystemPrompt:      cfg.SystemPrompt,
		Instructions:      cfg.Instructions,
		Options:           cfg.Options,
	}

	switch cfg.Provider {
	case common.ProviderBedrock:
		pc.Credentials.AWS = &providers.AWSCredentials{
			AccessKey:    cfg.AWS.AccessKey,
			SecretKey:    cfg.AWS.SecretKey,
			SessionToken: cfg.AWS.SessionToken,
			Region:       cfg.AWS.Region,
			RoleARN:      cfg.AWS.RoleARN,
			SessionName:  cfg.AWS.SessionName,
		}
	case common.ProviderAzure:
		pc.Credentials.Azure = &providers.AzureCredentials{
			Endpoint:    cfg.Azure.Endpoint,
			ApiVersion:  cfg.Azure.APIVersion,
			UseIdentity: cfg.Azure.UseIdentity,
		}
	}
	// The watsonx endpoint default must not leak into SDK providers as a base URL.
	if cfg.Provider != common.ProviderWatsonx && cfg.EndpointURL == config.DefaultEndpointURL {
		pc.Credentials.BaseURL = ""
	}
	return pc
}

func (a *adapter) Available() bool  { return true }
func (a *adapter) Reason() string   { return "" }
func (a *adapter) Provider() string { return a.provider }

// Generate makes exactly one provider call bounded by the configured
// timeout. Failures come back as *audit.GenerationError.
func (a *adapter) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	var resp *providers.CompletionResponse
	err := a.breaker.Execute(func() error {
		var askErr error
		resp, askErr = a.client.Ask(ctx, a.config, prompt)
		return askErr
	})
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("model call timed out after %s: %w", a.timeout, err)
		}
		prometheus.ModelLatency.WithLabelValues(a.provider, "error").Observe(float64(elapsed.Milliseconds()))
		a.logger.WithError(err).
			WithField("provider", a.provider).
			WithField("duration_ms", elapsed.Milliseconds()).
			Error("model generation failed")
		return "", audit.NewGenerationError(a.provider, err)
	}

	prometheus.ModelLatency.WithLabelValues(a.provider, "ok").Observe(float64(elapsed.Milliseconds()))
	a.logger.WithFields(logrus.Fields{
		"provider":          a.provider,
		"response_id":       resp.ID,
		"stop_reason":       resp.StopReason,
		"completion_tokens": resp.Usage.CompletionTokens,
		"duration_ms":       elapsed.Milliseconds(),
	}).Debug("model generation completed")

	return resp.Response, nil
}

func (d *disabledAdapter) Available() bool  { return false }
func (d *disabledAdapter) Reason() string   { return d.reason }
func (d *disabledAdapter) Provider() string { return d.provider }

func (d *disabledAdapter) Generate(context.Context, string) (string, error) {
	return "", audit.NewUnavailableError(d.reason)
}
