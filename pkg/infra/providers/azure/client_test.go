package azure

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/httpx/mocks"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticCredential struct{ token string }

func (s staticCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: s.token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func azureConfig() *providers.Config {
	return &providers.Config{
		Model: "gpt-4o-deployment",
		Credentials: providers.Credentials{
			ApiKey: "azure-key",
			Azure:  &providers.AzureCredentials{Endpoint: "https://hawk.openai.azure.com/"},
		},
	}
}

func okResponse() *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body: io.NopCloser(strings.NewReader(`{
			"id": "chatcmpl-1",
			"choices": [{"message": {"role": "assistant", "content": "verdict"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`)),
	}
}

func TestValidate(t *testing.T) {
	c := NewAzureClient(mocks.NewClient(t))

	assert.ErrorIs(t, c.Validate(&providers.Config{Model: "m"}), providers.ErrMissingCredentials)

	cfg := azureConfig()
	cfg.Credentials.ApiKey = ""
	assert.Error(t, c.Validate(cfg))

	cfg.Credentials.Azure.UseIdentity = true
	assert.NoError(t, c.Validate(cfg))
}

func TestAsk_APIKey(t *testing.T) {
	httpClient := mocks.NewClient(t)
	c := NewAzureClient(httpClient)

	httpClient.EXPECT().Do(mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get("api-key") == "azure-key" &&
			req.URL.Path == "/openai/deployments/gpt-4o-deployment/chat/completions" &&
			req.URL.Query().Get("api-version") == DefaultAPIVersion
	})).Return(okResponse(), nil).Once()

	resp, err := c.Ask(context.Background(), azureConfig(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "verdict", resp.Response)
	assert.Equal(t, "chatcmpl-1", resp.ID)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestAsk_Identity(t *testing.T) {
	httpClient := mocks.NewClient(t)
	c := &client{
		httpClient: httpClient,
		newCred: func() (azcore.TokenCredential, error) {
			return staticCredential{token: "entra-token"}, nil
		},
	}

	cfg := azureConfig()
	cfg.Credentials.ApiKey = ""
	cfg.Credentials.Azure.UseIdentity = true

	httpClient.EXPECT().Do(mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get("Authorization") == "Bearer entra-token"
	})).Return(okResponse(), nil).Once()

	_, err := c.Ask(context.Background(), cfg, "prompt")
	require.NoError(t, err)
}

func TestAsk_CredentialError(t *testing.T) {
	c := &client{
		httpClient: mocks.NewClient(t),
		newCred: func() (azcore.TokenCredential, error) {
			return nil, errors.New("no identity available")
		},
	}
	cfg := azureConfig()
	cfg.Credentials.Azure.UseIdentity = true

	_, err := c.Ask(context.Background(), cfg, "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no identity available")
}

func TestAsk_Non200(t *testing.T) {
	httpClient := mocks.NewClient(t)
	c := NewAzureClient(httpClient)

	httpClient.EXPECT().Do(mock.Anything).Return(&http.Response{
		StatusCode: http.StatusTooManyRequests,
		Body:       io.NopCloser(strings.NewReader(`{"error":{"message":"Rate limit exceeded"}}`)),
	}, nil).Once()

	_, err := c.Ask(context.Background(), azureConfig(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "Rate limit exceeded")
}
