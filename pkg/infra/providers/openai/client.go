package openai

import (
	"context"
	"fmt"
	"sync"

	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers"
	"github.com/mitchellh/mapstructure"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"golang.org/x/sync/singleflight"
)

type openaiOptions struct {
	Organization string `mapstructure:"organization"`
	Seed         *int64 `mapstructure:"seed"`
}

type client struct {
	clientPool *sync.Map
	sf         singleflight.Group
}

func NewOpenaiClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
	}
}

func (c *client) Validate(config *providers.Config) error {
	if config.Credentials.ApiKey == "" {
		return providers.MissingField("API key")
	}
	if config.Model == "" {
		return providers.MissingField("model")
	}
	return nil
}

func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	if err := c.Validate(config); err != nil {
		return nil, err
	}

	var options openaiOptions
	if len(config.Options) > 0 {
		if err := mapstructure.Decode(config.Options, &options); err != nil {
			return nil, fmt.Errorf("invalid openai options: %w", err)
		}
	}

	openaiClient := c.getOrCreateClient(config.Credentials.ApiKey, config.Credentials.BaseURL, options.Organization)

	var messages []openai.ChatCompletionMessageParamUnion
	if config.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(config.SystemPrompt))
	}
	if instructions := providers.FormatInstructions(config.Instructions); instructions != "" {
		messages = append(messages, openai.UserMessage(instructions))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:       config.Model,
		Messages:    messages,
		Temperature: openai.Float(config.Temperature),
	}
	if config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(config.MaxTokens))
	}
	if options.Seed != nil {
		params.Seed = openai.Int(*options.Seed)
	}

	resp, err := openaiClient.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("OpenAI request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completions returned")
	}

	return &providers.CompletionResponse{
		ID:         resp.ID,
		Model:      resp.Model,
		Response:   resp.Choices[0].Message.Content,
		StopReason: resp.Choices[0].FinishReason,
		Usage: providers.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

func (c *client) getOrCreateClient(apiKey, baseURL, organization string) *openai.Client {
	key := apiKey + "|" + baseURL + "|" + organization
	if v, ok := c.clientPool.Load(key); ok {
		if cli, ok := v.(*openai.Client); ok {
			return cli
		}
	}
	v, _, _ := c.sf.Do(key, func() (any, error) {
		if v, ok := c.clientPool.Load(key); ok {
			return v, nil
		}
		opts := []option.RequestOption{option.WithAPIKey(apiKey)}
		if baseURL != "" {
			opts = append(opts, option.WithBaseURL(baseURL))
		}
		if organization != "" {
			opts = append(opts, option.WithOrganization(organization))
		}
		cli := openai.NewClient(opts...)
		c.clientPool.Store(key, &cli)
		return &cli, nil
	})
	if cli, ok := v.(*openai.Client); ok {
		return cli
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &cli
}
