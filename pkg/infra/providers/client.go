package providers

import (
	"context"
)

// Config carries everything a provider needs for one completion. Zero values
// are meaningful for Temperature: deterministic decoding sends 0 explicitly.
type Config struct {
	Credentials       Credentials            `json:"credentials"`
	Model             string                 `json:"model"`
	MaxTokens         int                    `json:"max_tokens,omitempty"`
	MinTokens         int                    `json:"min_tokens,omitempty"`
	Temperature       float64                `json:"temperature"`
	RepetitionPenalty float64                `json:"repetition_penalty,omitempty"`
	DecodingMethod    string                 `json:"decoding_method,omitempty"`
	SystemPrompt      string                 `json:"system_prompt,omitempty"`
	Instructions      []string               `json:"instructions,omitempty"`
	Options           map[string]interface{} `json:"options,omitempty"`
}

type Credentials struct {
	ApiKey     string            `json:"api_key,omitempty"`
	ProjectID  string            `json:"project_id,omitempty"`
	BaseURL    string            `json:"base_url,omitempty"`
	IAMURL     string            `json:"iam_url,omitempty"`
	APIVersion string            `json:"api_version,omitempty"`
	AWS        *AWSCredentials   `json:"aws,omitempty"`
	Azure      *AzureCredentials `json:"azure,omitempty"`
}

type AWSCredentials struct {
	AccessKey    string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
	SessionToken string `json:"session_token,omitempty"`
	Region       string `json:"region"`
	RoleARN      string `json:"role_arn,omitempty"`
	SessionName  string `json:"session_name,omitempty"`
}

type AzureCredentials struct {
	Endpoint    string `json:"endpoint"`
	ApiVersion  string `json:"api_version,omitempty"`
	UseIdentity bool   `json:"use_identity"`
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

type Client interface {
	// Validate reports whether config is complete enough to reach the
	// provider. It never performs I/O.
	Validate(config *Config) error
	Ask(ctx context.Context, config *Config, prompt string) (*CompletionResponse, error)
}
