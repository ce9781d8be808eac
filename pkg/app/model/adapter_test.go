package model_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/NeuralTrust/ComplianceHawk/pkg/app/model"
	"github.com/NeuralTrust/ComplianceHawk/pkg/config"
	"github.com/NeuralTrust/ComplianceHawk/pkg/domain/audit"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/httpx"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers"
	locatorMocks "github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers/factory/mocks"
	providerMocks "github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers/mocks"
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

func modelConfig() config.ModelConfig {
	return config.ModelConfig{
		Provider:    "watsonx",
		EndpointURL: config.DefaultEndpointURL,
		APIKey:      "key",
		ProjectID:   "project",
		ModelID:     config.DefaultModelID,
		Timeout:     time.Second,
		Decoding: config.DecodingConfig{
			Method:            "greedy",
			MaxNewTokens:      500,
			MinNewTokens:      1,
			Temperature:       0,
			RepetitionPenalty: 1.1,
		},
	}
}

func TestNewAdapter_UnknownProviderIsDisabled(t *testing.T) {
	locator := locatorMocks.NewProviderLocator(t)
	locator.EXPECT().Get("watsonx").Return(nil, errors.New("unsupported provider: watsonx")).Once()

	a := model.NewAdapter(silentLogger(), modelConfig(), locator, nil)

	assert.False(t, a.Available())
	assert.Contains(t, a.Reason(), "unsupported provider")
}

func TestDisabledAdapter_NeverCallsProvider(t *testing.T) {
	client := providerMocks.NewClient(t)
	locator := locatorMocks.NewProviderLocator(t)
	locator.EXPECT().Get("watsonx").Return(client, nil).Once()
	client.EXPECT().Validate(mock.Anything).Return(providers.MissingField("project id")).Once()

	a := model.NewAdapter(silentLogger(), modelConfig(), locator, nil)
	require.False(t, a.Available())

	out, err := a.Generate(context.Background(), "prompt")
	assert.Empty(t, out)
	assert.ErrorIs(t, err, audit.ErrAdapterUnavailable)

	var unavailable *audit.UnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Contains(t, unavailable.Reason, "project id is required")
	client.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdapter_GenerateSuccess(t *testing.T) {
	client := providerMocks.NewClient(t)
	locator := locatorMocks.NewProviderLocator(t)
	locator.EXPECT().Get("watsonx").Return(client, nil).Once()
	client.EXPECT().Validate(mock.Anything).Return(nil).Once()

	client.EXPECT().Ask(mock.Anything, mock.Anything, "prompt").
		RunAndReturn(func(ctx context.Context, cfg *providers.Config, _ string) (*providers.CompletionResponse, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline, "generation must be bounded by a timeout")
			assert.Equal(t, "project", cfg.Credentials.ProjectID)
			assert.Equal(t, 0.0, cfg.Temperature)
			assert.Equal(t, 500, cfg.MaxTokens)
			assert.Equal(t, 1, cfg.MinTokens)
			assert.Equal(t, 1.1, cfg.RepetitionPenalty)
			return &providers.CompletionResponse{Response: `{"status":"Compliant"}`}, nil
		}).Once()

	a := model.NewAdapter(silentLogger(), modelConfig(), locator, nil)
	require.True(t, a.Available())
	assert.Equal(t, "watsonx", a.Provider())

	out, err := a.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"status":"Compliant"}`, out)
}

func TestAdapter_GenerateFailureIsNotRetried(t *testing.T) {
	client := providerMocks.NewClient(t)
	locator := locatorMocks.NewProviderLocator(t)
	locator.EXPECT().Get("watsonx").Return(client, nil).Once()
	client.EXPECT().Validate(mock.Anything).Return(nil).Once()
	client.EXPECT().Ask(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("remote returned 503")).Once()

	a := model.NewAdapter(silentLogger(), modelConfig(), locator, nil)

	_, err := a.Generate(context.Background(), "prompt")
	require.Error(t, err)

	var genErr *audit.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "watsonx", genErr.Provider)
	assert.Contains(t, err.Error(), "remote returned 503")
	assert.False(t, errors.Is(err, audit.ErrAdapterUnavailable))
}

func TestAdapter_Timeout(t *testing.T) {
	client := providerMocks.NewClient(t)
	locator := locatorMocks.NewProviderLocator(t)
	locator.EXPECT().Get("watsonx").Return(client, nil).Once()
	client.EXPECT().Validate(mock.Anything).Return(nil).Once()
	client.EXPECT().Ask(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ *providers.Config, _ string) (*providers.CompletionResponse, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).Once()

	cfg := modelConfig()
	cfg.Timeout = 20 * time.Millisecond
	a := model.NewAdapter(silentLogger(), cfg, locator, nil)

	_, err := a.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out after 20ms")
}

func TestAdapter_OpenBreakerFailsFast(t *testing.T) {
	client := providerMocks.NewClient(t)
	locator := locatorMocks.NewProviderLocator(t)
	locator.EXPECT().Get("watsonx").Return(client, nil).Once()
	client.EXPECT().Validate(mock.Anything).Return(nil).Once()
	client.EXPECT().Ask(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("boom")).Once()

	breaker := httpx.NewCircuitBreaker("watsonx", time.Minute, 1, nil)
	a := model.NewAdapter(silentLogger(), modelConfig(), locator, breaker)

	_, err := a.Generate(context.Background(), "prompt")
	require.Error(t, err)

	_, err = a.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrCircuitOpen)
}

func TestProviderConfig(t *testing.T) {
	cfg := modelConfig()
	cfg.Provider = "bedrock"
	cfg.AWS = config.AWSConfig{Region: "eu-west-1", RoleARN: "arn:aws:iam::1:role/hawk"}

	pc := model.ProviderConfig(cfg)
	require.NotNil(t, pc.Credentials.AWS)
	assert.Equal(t, "eu-west-1", pc.Credentials.AWS.Region)
	assert.Empty(t, pc.Credentials.BaseURL, "watsonx default endpoint must not be used as a base URL")
	assert.Nil(t, pc.Credentials.Azure)

	cfg.Provider = "azure"
	cfg.Azure = config.AzureConfig{Endpoint: "https://hawk.openai.azure.com", UseIdentity: true}
	pc = model.ProviderConfig(cfg)
	require.NotNil(t, pc.Credentials.Azure)
	assert.True(t, pc.Credentials.Azure.UseIdentity)
}

func TestProviderConfig_PromptPreamble(t *testing.T) {
	pc := model.ProviderConfig(modelConfig())
	assert.Empty(t, pc.SystemPrompt)
	assert.Empty(t, pc.Instructions)

	cfg := modelConfig()
	cfg.SystemPrompt = "You audit employment contracts."
	cfg.Instructions = []string{"Answer in English."}

	pc = model.ProviderConfig(cfg)
	assert.Equal(t, "You audit employment contracts.", pc.SystemPrompt)
	assert.Equal(t, []string{"Answer in English."}, pc.Instructions)
}
