package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/httpx"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers"
	"github.com/valyala/fastjson"
)

const (
	DefaultAPIVersion = "2024-02-15-preview"
	cognitiveScope    = "https://cognitiveservices.azure.com/.default"
)

type client struct {
	httpClient httpx.Client

	credOnce sync.Once
	cred     azcore.TokenCredential
	credErr  error
	newCred  func() (azcore.TokenCredential, error)
}

func NewAzureClient(httpClient httpx.Client) providers.Client {
	return &client{
		httpClient: httpClient,
		newCred: func() (azcore.TokenCredential, error) {
			return azidentity.NewDefaultAzureCredential(nil)
		},
	}
}

// Validate accepts either an API key or Entra ID identity.
func (c *client) Validate(config *providers.Config) error {
	if config.Credentials.Azure == nil || config.Credentials.Azure.Endpoint == "" {
		return providers.MissingField("azure endpoint")
	}
	if config.Model == "" {
		return providers.MissingField("model (deployment ID)")
	}
	if !config.Credentials.Azure.UseIdentity && config.Credentials.ApiKey == "" {
		return providers.MissingField("API key when not using Azure identity")
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
	azureCreds := config.Credentials.Azure

	var messages []map[string]string
	if config.SystemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": config.SystemPrompt})
	}
	if instructions := providers.FormatInstructions(config.Instructions); instructions != "" {
		messages = append(messages, map[string]string{"role": "user", "content": instructions})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	reqBody := map[string]interface{}{
		"messages":    messages,
		"temperature": config.Temperature,
	}
	if config.MaxTokens > 0 {
		reqBody["max_tokens"] = config.MaxTokens
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	apiVersion := azureCreds.ApiVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(azureCreds.Endpoint, "/"),
		url.PathEscape(config.Model),
		url.QueryEscape(apiVersion),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if azureCreds.UseIdentity {
		token, err := c.getAzureADToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Azure AD token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("api-key", config.Credentials.ApiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 status: %d: %s", resp.StatusCode, errorMessage(respBody))
	}

	v, err := fastjson.ParseBytes(respBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	choices := v.GetArray("choices")
	if len(choices) == 0 {
		return nil, fmt.Errorf("no completions returned")
	}
	content := choices[0].Get("message", "content")
	if content == nil || content.Type() != fastjson.TypeString {
		return nil, fmt.Errorf("invalid content format")
	}

	id := string(v.GetStringBytes("id"))
	if id == "" {
		id = providers.ResponseID(ctx, "azure")
	}

	return &providers.CompletionResponse{
		ID:         id,
		Model:      config.Model,
		Response:   string(content.GetStringBytes()),
		StopReason: string(choices[0].GetStringBytes("finish_reason")),
		Usage: providers.Usage{
			PromptTokens:     v.GetInt("usage", "prompt_tokens"),
			CompletionTokens: v.GetInt("usage", "completion_tokens"),
			TotalTokens:      v.GetInt("usage", "total_tokens"),
		},
	}, nil
}

func (c *client) getAzureADToken(ctx context.Context) (string, error) {
	c.credOnce.Do(func() {
		c.cred, c.credErr = c.newCred()
	})
	if c.credErr != nil {
		return "", fmt.Errorf("failed to create credential: %w", c.credErr)
	}
	token, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{cognitiveScope},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	return token.Token, nil
}

func errorMessage(body []byte) string {
	if v, err := fastjson.ParseBytes(body); err == nil {
		if msg := v.GetStringBytes("error", "message"); len(msg) > 0 {
			return string(msg)
		}
	}
	return strings.TrimSpace(string(body))
}
