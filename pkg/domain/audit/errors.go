package audit

import (
	"errors"
	"fmt"
)

var (
	// ErrAdapterUnavailable matches every UnavailableError via errors.Is.
	ErrAdapterUnavailable = errors.New("model adapter unavailable")
	ErrEmptyContract      = errors.New("contract_text is required")
)

// UnavailableError means the model adapter was never usable in this process.
type UnavailableError struct {
	Reason string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return ErrAdapterUnavailable.Error()
	}
	return fmt.Sprintf("%s (%s)", ErrAdapterUnavailable.Error(), e.Reason)
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrAdapterUnavailable
}

func NewUnavailableError(reason string) error {
	return &UnavailableError{Reason: reason}
}

// GenerationError wraps a failure of an available adapter: transport, quota,
// remote 5xx, timeout or an open circuit.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func NewGenerationError(provider string, err error) error {
	return &GenerationError{Provider: provider, Err: err}
}

// UnparseableOutputError records why a model reply could not be decoded. It
// never leaves the service as an error; it becomes a FailSafeVerdict.
type UnparseableOutputError struct {
	Raw string
	Err error
}

func (e *UnparseableOutputError) Error() string {
	return fmt.Sprintf("unparseable model output: %v", e.Err)
}

func (e *UnparseableOutputError) Unwrap() error {
	return e.Err
}
