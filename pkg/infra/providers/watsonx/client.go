package watsonx

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
	"time"

	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/httpx"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers"
	"github.com/valyala/fastjson"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultAPIVersion = "2023-05-29"
	DefaultIAMURL     = "https://iam.cloud.ibm.com/identity/token"

	generationPath = "/ml/v1/text/generation"
	iamGrantType   = "urn:ibm:params:oauth:grant-type:apikey"
	// Tokens are refreshed this long before IAM says they expire.
	tokenRefreshMargin   = time.Minute
	tokenExchangeTimeout = 30 * time.Second
	maxErrorPreview      = 2048
)

type generationRequest struct {
	Input      string               `json:"input"`
	ModelID    string               `json:"model_id"`
	ProjectID  string               `json:"project_id"`
	Parameters generationParameters `json:"parameters"`
}

type generationParameters struct {
	DecodingMethod    string  `json:"decoding_method,omitempty"`
	MaxNewTokens      int     `json:"max_new_tokens,omitempty"`
	MinNewTokens      int     `json:"min_new_tokens,omitempty"`
	Temperature       float64 `json:"temperature"`
	RepetitionPenalty float64 `json:"repetition_penalty,omitempty"`
}

type iamToken struct {
	value     string
	expiresAt time.Time
}

type client struct {
	httpClient httpx.Client
	tokens     *sync.Map
	sf         singleflight.Group
	now        func() time.Time
}

func NewWatsonxClient(httpClient httpx.Client) providers.Client {
	return &client{
		httpClient: httpClient,
		tokens:     &sync.Map{},
		now:        time.Now,
	}
}

func (c *client) Validate(config *providers.Config) error {
	switch {
	case config.Credentials.ApiKey == "":
		return providers.MissingField("api key")
	case config.Credentials.ProjectID == "":
		return providers.MissingField("project id")
	case config.Credentials.BaseURL == "":
		return providers.MissingField("endpoint url")
	case config.Model == "":
		return providers.MissingField("model id")
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

	token, err := c.getOrRefreshToken(ctx, config.Credentials)
	if err != nil {
		return nil, err
	}

	input := prompt
	if instructions := providers.FormatInstructions(config.Instructions); instructions != "" {
		input = instructions + "\n" + prompt
	}
	if config.SystemPrompt != "" {
		input = config.SystemPrompt + "\n\n" + input
	}

	body, err := json.Marshal(generationRequest{
		Input:     input,
		ModelID:   config.Model,
		ProjectID: config.Credentials.ProjectID,
		Parameters: generationParameters{
			DecodingMethod:    config.DecodingMethod,
			MaxNewTokens:      config.MaxTokens,
			MinNewTokens:      config.MinTokens,
			Temperature:       config.Temperature,
			RepetitionPenalty: config.RepetitionPenalty,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, generationURL(config.Credentials), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	respBody, status, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("watsonx request failed: %w", err)
	}
	if status == http.StatusUnauthorized {
		// Revoked tokens are not retried here; the next call fetches a new one.
		c.tokens.Delete(tokenKey(config.Credentials))
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("watsonx generation failed with status %d: %s", status, errorMessage(respBody))
	}

	return parseGeneration(ctx, config.Model, respBody)
}

func (c *client) getOrRefreshToken(ctx context.Context, creds providers.Credentials) (string, error) {
	key := tokenKey(creds)
	if v, ok := c.tokens.Load(key); ok {
		if token, ok := v.(*iamToken); ok && c.now().Before(token.expiresAt) {
			return token.value, nil
		}
	}

	ch := c.sf.DoChan(key, func() (interface{}, error) {
		if v, ok := c.tokens.Load(key); ok {
			if token, ok := v.(*iamToken); ok && c.now().Before(token.expiresAt) {
				return token, nil
			}
		}
		// Waiters share this flight; no single caller's cancellation ends it.
		exchangeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tokenExchangeTimeout)
		defer cancel()
		token, err := c.exchangeAPIKey(exchangeCtx, creds)
		if err != nil {
			return nil, err
		}
		c.tokens.Store(key, token)
		return token, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("iam token request failed: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return "", res.Err
	}
	token, ok := res.Val.(*iamToken)
	if !ok {
		return "", fmt.Errorf("invalid token type in cache")
	}
	return token.value, nil
}

func (c *client) exchangeAPIKey(ctx context.Context, creds providers.Credentials) (*iamToken, error) {
	iamURL := creds.IAMURL
	if iamURL == "" {
		iamURL = DefaultIAMURL
	}

	form := url.Values{}
	form.Set("grant_type", iamGrantType)
	form.Set("apikey", creds.ApiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, iamURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("iam token request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("iam token request failed with status %d: %s", status, errorMessage(body))
	}

	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse iam token response: %w", err)
	}
	accessToken := string(v.GetStringBytes("access_token"))
	if accessToken == "" {
		return nil, fmt.Errorf("iam token response has no access_token")
	}

	expiresAt := c.now().Add(time.Duration(v.GetInt64("expires_in")) * time.Second)
	if exp := v.GetInt64("expiration"); exp > 0 {
		expiresAt = time.Unix(exp, 0)
	}
	return &iamToken{
		value:     accessToken,
		expiresAt: expiresAt.Add(-tokenRefreshMargin),
	}, nil
}

func (c *client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func parseGeneration(ctx context.Context, model string, body []byte) (*providers.CompletionResponse, error) {
	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	results := v.GetArray("results")
	if len(results) == 0 {
		return nil, fmt.Errorf("no completions returned")
	}
	first := results[0]
	inputTokens := first.GetInt("input_token_count")
	outputTokens := first.GetInt("generated_token_count")

	if responseModel := string(v.GetStringBytes("model_id")); responseModel != "" {
		model = responseModel
	}

	return &providers.CompletionResponse{
		ID:         providers.ResponseID(ctx, "watsonx"),
		Model:      model,
		Response:   string(first.GetStringBytes("generated_text")),
		StopReason: string(first.GetStringBytes("stop_reason")),
		Usage: providers.Usage{
			PromptTokens:     inputTokens,
			CompletionTokens: outputTokens,
			TotalTokens:      inputTokens + outputTokens,
		},
	}, nil
}

// errorMessage extracts the first API error message, falling back to a
// truncated body.
func errorMessage(body []byte) string {
	if v, err := fastjson.ParseBytes(body); err == nil {
		if msg := v.GetStringBytes("errors", "0", "message"); len(msg) > 0 {
			return string(msg)
		}
		if msg := v.GetStringBytes("errorMessage"); len(msg) > 0 {
			return string(msg)
		}
	}
	if len(body) > maxErrorPreview {
		body = body[:maxErrorPreview]
	}
	return strings.TrimSpace(string(body))
}

func generationURL(creds providers.Credentials) string {
	version := creds.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	return strings.TrimRight(creds.BaseURL, "/") + generationPath + "?version=" + url.QueryEscape(version)
}

func tokenKey(creds providers.Credentials) string {
	return creds.IAMURL + "|" + creds.ApiKey
}
