package common

import "time"

const (
	RequestIDHeader = "X-Request-ID"

	ShutdownTimeout = 10 * time.Second

	// ProviderWatsonx and friends are the accepted model.provider values.
	ProviderWatsonx   = "watsonx"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderBedrock   = "bedrock"
	ProviderAzure     = "azure"
)
