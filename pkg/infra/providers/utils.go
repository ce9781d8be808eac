package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NeuralTrust/ComplianceHawk/pkg/common"
	"github.com/google/uuid"
)

var ErrMissingCredentials = errors.New("missing credentials")

// MissingField builds the error every Validate implementation returns.
func MissingField(field string) error {
	return fmt.Errorf("%w: %s is required", ErrMissingCredentials, field)
}

func FormatInstructions(instr []string) string {
	if len(instr) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("[Instructions]\n")
	for _, rule := range instr {
		if strings.TrimSpace(rule) == "" {
			continue
		}
		b.WriteString("- ")
		b.WriteString(rule)
		b.WriteByte('\n')
	}
	return b.String()
}

// ResponseID prefers the inbound request id so provider calls can be tied
// back to the HTTP request in logs.
func ResponseID(ctx context.Context, provider string) string {
	if requestID, ok := ctx.Value(common.RequestIDContextKey).(string); ok && requestID != "" {
		return provider + "-" + requestID
	}
	return provider + "-" + uuid.NewString()
}
