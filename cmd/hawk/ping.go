package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/NeuralTrust/ComplianceHawk/pkg/app/model"
	"github.com/NeuralTrust/ComplianceHawk/pkg/config"
	"github.com/NeuralTrust/ComplianceHawk/pkg/infra/httpx"
	infraLogger "github.com/NeuralTrust/ComplianceHawk/pkg/infra/logger"
	providersFactory "github.com/NeuralTrust/ComplianceHawk/pkg/infra/providers/factory"
	"github.com/sirupsen/logrus"
)

const (
	pingPrompt    = "Say hello!"
	pingMaxTokens = 100
)

// runPing sends one fixed prompt through the configured adapter and reports
// the outcome on out. It returns the process exit code.
func runPing(cfg *config.Config, out io.Writer) int {
	locator := providersFactory.NewProviderLocator(httpx.NewFastHTTPClient(httpx.WithTimeout(cfg.Model.Timeout)))
	return ping(cfg, locator, out)
}

func ping(cfg *config.Config, locator providersFactory.ProviderLocator, out io.Writer) int {
	modelCfg := cfg.Model
	modelCfg.Decoding.MaxNewTokens = pingMaxTokens
	if modelCfg.Decoding.MinNewTokens > pingMaxTokens {
		modelCfg.Decoding.MinNewTokens = 1
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(infraLogger.NewConsoleHook(os.Stderr))

	_, _ = fmt.Fprintln(out, "Testing connection with:")
	_, _ = fmt.Fprintf(out, "Provider: %s\n", modelCfg.Provider)
	_, _ = fmt.Fprintf(out, "URL: %s\n", modelCfg.EndpointURL)
	_, _ = fmt.Fprintf(out, "Project ID: %s\n", modelCfg.ProjectID)
	_, _ = fmt.Fprintf(out, "API Key: %s (Hidden)\n", maskSecret(modelCfg.APIKey))

	adapter := model.NewAdapter(logger, modelCfg, locator, nil)
	if !adapter.Available() {
		_, _ = fmt.Fprintln(out, "\nCONNECTION FAILED!")
		_, _ = fmt.Fprintf(out, "Error Details: %s\n", adapter.Reason())
		return 1
	}

	_, _ = fmt.Fprintf(out, "\nAttempting to send a prompt to %s...\n", modelCfg.ModelID)
	response, err := adapter.Generate(context.Background(), pingPrompt)
	if err != nil {
		_, _ = fmt.Fprintln(out, "\nCONNECTION FAILED!")
		_, _ = fmt.Fprintf(out, "Error Details: %s\n", err)
		return 1
	}

	_, _ = fmt.Fprintf(out, "SUCCESS! Response: %s\n", response)
	return 0
}

func maskSecret(secret string) string {
	if len(secret) <= 5 {
		return "*****"
	}
	return secret[:5] + "..."
}
