package openai_test

import (
	"context"
	"testing"

	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers/openai"
	"github.com/stretchr/testify/assert"
)

func TestNewOpenaiClient(t *testing.T) {
	client := openai.NewOpenaiClient()
	assert.NotNil(t, client, "NewOpenaiClient should return a non-nil client")
}

func TestAsk_MissingAPIKey(t *testing.T) {
	client := openai.NewOpenaiClient()

	config := &providers.Config{
		Model: "gpt-4o-mini",
	}

	resp, err := client.Ask(context.Background(), config, "test prompt")

	assert.Error(t, err, "Ask should return an error when API key is missing")
	assert.Nil(t, resp, "Ask should return nil response when API key is missing")
	assert.ErrorIs(t, err, providers.ErrMissingCredentials)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestAsk_MissingModel(t *testing.T) {
	client := openai.NewOpenaiClient()

	config := &providers.Config{
		Credentials: providers.Credentials{
			ApiKey: "test-api-key",
		},
	}

	resp, err := client.Ask(context.Background(), config, "test prompt")
	assert.Error(t, err, "Ask should return an error when model is missing")
	assert.Nil(t, resp, "Ask should return nil response when model is missing")
	assert.Contains(t, err.Error(), "model is required")
}

func TestAsk_InvalidOptions(t *testing.T) {
	client := openai.NewOpenaiClient()

	config := &providers.Config{
		Model:       "gpt-4o-mini",
		Credentials: providers.Credentials{ApiKey: "test-api-key"},
		Options:     map[string]interface{}{"seed": "not-a-number"},
	}

	_, err := client.Ask(context.Background(), config, "test prompt")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid openai options")
}

func TestValidate(t *testing.T) {
	client := openai.NewOpenaiClient()
	err := client.Validate(&providers.Config{
		Model:       "gpt-4o-mini",
		Credentials: providers.Credentials{ApiKey: "test-api-key"},
	})
	assert.NoError(t, err)
}
