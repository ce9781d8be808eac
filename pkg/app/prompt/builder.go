package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/NeuralTrust/ComplianceHawk/pkg/config"
)

var instructionMarker = regexp.MustCompile(`(?i)\[\s*/?\s*INST\s*\]`)

// Builder renders the audit prompt. Build is pure: equal inputs always give
// byte-identical prompts.
type Builder interface {
	Build(contractText, regulationRule string) string
	Mode() string
}

type builder struct {
	mode         string
	template     string
	escapeInputs bool
}

// NewBuilder selects the template for mode. Inputs are embedded verbatim
// unless escapeInputs is set, so a clause can carry text that reads as
// instructions to the model.
func NewBuilder(mode string, escapeInputs bool) (Builder, error) {
	var template string
	switch mode {
	case config.OutputModeJSON:
		template = jsonTemplate
	case config.OutputModeSentinel:
		template = sentinelTemplate
	default:
		return nil, fmt.Errorf("unknown output mode %q", mode)
	}
	return &builder{
		mode:         mode,
		template:     template,
		escapeInputs: escapeInputs,
	}, nil
}

func (b *builder) Mode() string {
	return b.mode
}

func (b *builder) Build(contractText, regulationRule string) string {
	if b.escapeInputs {
		contractText = escape(contractText)
		regulationRule = escape(regulationRule)
	}
	// A single Replacer pass never re-expands placeholders found in the inputs.
	return strings.NewReplacer(
		contractPlaceholder, contractText,
		rulePlaceholder, regulationRule,
	).Replace(b.template)
}

func escape(s string) string {
	s = instructionMarker.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, `"`, `'`)
}
