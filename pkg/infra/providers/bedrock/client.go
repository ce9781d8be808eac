package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/valyala/fastjson"
)

const (
	ModelPrefixAnthropicClaude = "anthropic.claude"
	ModelPrefixAmazonTitan     = "amazon.titan"
	ModelPrefixMistral         = "mistral"
	ModelPrefixMetaLlama       = "meta.llama"

	anthropicVersion   = "bedrock-2023-05-31"
	defaultSessionName = "compliance-hawk"
	defaultMaxTokens   = 1024
)

// Runtime is the subset of the bedrockruntime client used here.
type Runtime interface {
	InvokeModel(
		ctx context.Context,
		params *bedrockruntime.InvokeModelInput,
		optFns ...func(*bedrockruntime.Options),
	) (*bedrockruntime.InvokeModelOutput, error)
}

type client struct {
	clientPool *sync.Map
	newRuntime func(ctx context.Context, creds *providers.AWSCredentials) (Runtime, error)
}

func NewBedrockClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
		newRuntime: buildRuntime,
	}
}

func (c *client) Validate(config *providers.Config) error {
	if config.Credentials.AWS == nil || config.Credentials.AWS.Region == "" {
		return providers.MissingField("aws region")
	}
	if config.Model == "" {
		return providers.MissingField("model")
	}
	awsCreds := config.Credentials.AWS
	if (awsCreds.AccessKey == "") != (awsCreds.SecretKey == "") {
		return providers.MissingField("aws access key and secret key")
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

	runtime, err := c.getOrCreateRuntime(ctx, config.Credentials.AWS)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bedrock client: %w", err)
	}

	body, err := json.Marshal(buildRequest(config, prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(config.Model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke model: %w", err)
	}

	responseText, err := parseResponse(config.Model, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &providers.CompletionResponse{
		ID:       providers.ResponseID(ctx, "bedrock"),
		Model:    config.Model,
		Response: responseText,
	}, nil
}

// buildRequest shapes the native InvokeModel body for the model family.
func buildRequest(config *providers.Config, prompt string) map[string]interface{} {
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	fullPrompt := prompt
	if instructions := providers.FormatInstructions(config.Instructions); instructions != "" {
		fullPrompt = instructions + "\n" + prompt
	}

	switch {
	case strings.Contains(config.Model, ModelPrefixAnthropicClaude):
		req := map[string]interface{}{
			"anthropic_version": anthropicVersion,
			"max_tokens":        maxTokens,
			"temperature":       config.Temperature,
			"messages": []map[string]interface{}{
				{"role": "user", "content": fullPrompt},
			},
		}
		if config.SystemPrompt != "" {
			req["system"] = config.SystemPrompt
		}
		return req
	case strings.Contains(config.Model, ModelPrefixAmazonTitan):
		return map[string]interface{}{
			"inputText": withSystem(config.SystemPrompt, fullPrompt),
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": maxTokens,
				"temperature":   config.Temperature,
			},
		}
	case strings.Contains(config.Model, ModelPrefixMetaLlama):
		return map[string]interface{}{
			"prompt":      withSystem(config.SystemPrompt, fullPrompt),
			"max_gen_len": maxTokens,
			"temperature": config.Temperature,
		}
	default:
		return map[string]interface{}{
			"prompt":      withSystem(config.SystemPrompt, fullPrompt),
			"max_tokens":  maxTokens,
			"temperature": config.Temperature,
		}
	}
}

func withSystem(system, prompt string) string {
	if system == "" {
		return prompt
	}
	return system + "\n\n" + prompt
}

func parseResponse(model string, body []byte) (string, error) {
	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return "", err
	}

	var text string
	switch {
	case strings.Contains(model, ModelPrefixAnthropicClaude):
		for _, block := range v.GetArray("content") {
			if string(block.GetStringBytes("type")) == "text" {
				text = string(block.GetStringBytes("text"))
				break
			}
		}
	case strings.Contains(model, ModelPrefixAmazonTitan):
		text = string(v.GetStringBytes("results", "0", "outputText"))
	case strings.Contains(model, ModelPrefixMetaLlama):
		text = string(v.GetStringBytes("generation"))
	case strings.Contains(model, ModelPrefixMistral):
		text = string(v.GetStringBytes("outputs", "0", "text"))
	default:
		for _, key := range []string{"completion", "generation", "outputText", "text", "output"} {
			if s := v.GetStringBytes(key); len(s) > 0 {
				text = string(s)
				break
			}
		}
	}

	if text == "" {
		return "", fmt.Errorf("no text content returned")
	}
	return text, nil
}

func (c *client) getOrCreateRuntime(ctx context.Context, creds *providers.AWSCredentials) (Runtime, error) {
	key := buildClientKey(creds)
	if v, ok := c.clientPool.Load(key); ok {
		runtime, ok := v.(Runtime)
		if !ok {
			return nil, fmt.Errorf("invalid client type in pool")
		}
		return runtime, nil
	}
	runtime, err := c.newRuntime(ctx, creds)
	if err != nil {
		return nil, err
	}
	actual, _ := c.clientPool.LoadOrStore(key, runtime)
	if stored, ok := actual.(Runtime); ok {
		return stored, nil
	}
	return runtime, nil
}

func buildClientKey(creds *providers.AWSCredentials) string {
	return fmt.Sprintf("%s:%s:%s", creds.AccessKey, creds.Region, creds.RoleARN)
}

// buildRuntime uses static keys when given, the default AWS chain otherwise,
// and wraps either in an assumed role when RoleARN is set.
func buildRuntime(ctx context.Context, creds *providers.AWSCredentials) (Runtime, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(creds.Region)}
	if creds.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, creds.SessionToken),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	if creds.RoleARN != "" {
		sessionName := creds.SessionName
		if sessionName == "" {
			sessionName = defaultSessionName
		}
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), creds.RoleARN,
			func(o *stscreds.AssumeRoleOptions) {
				o.RoleSessionName = sessionName
			},
		)
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return bedrockruntime.NewFromConfig(cfg), nil
}
