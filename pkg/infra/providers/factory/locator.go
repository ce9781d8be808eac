package factory

import (
	"fmt"

	"github.com/NeuralTrust/ComplianceHawk/pkg/common"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/httpx"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers/anthropic"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers/azure"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers/bedrock"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers/gemini"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers/openai"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers/watsonx"
)

//go:generate mockery --name=ProviderLocator --dir=. --output=./mocks --filename=provider_locator_mock.go --case=underscore --with-expecter

type ProviderLocator interface {
	Get(provider string) (providers.Client, error)
}

type providerLocator struct {
	httpClient httpx.Client
}

func NewProviderLocator(httpClient httpx.Client) ProviderLocator {
	return &providerLocator{
		httpClient: httpClient,
	}
}

func (f *providerLocator) Get(provider string) (providers.Client, error) {
	switch provider {
	case common.ProviderWatsonx:
		return watsonx.NewWatsonxClient(f.httpClient), nil
	case common.ProviderOpenAI:
		return openai.NewOpenaiClient(), nil
	case common.ProviderGemini:
		return gemini.NewGeminiClient(), nil
	case common.ProviderAnthropic:
		return anthropic.NewAnthropicClient(), nil
	case common.ProviderBedrock:
		return bedrock.NewBedrockClient(), nil
	case common.ProviderAzure:
		return azure.NewAzureClient(f.httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
