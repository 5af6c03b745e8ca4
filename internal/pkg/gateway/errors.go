package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration   = errors.New("invalid backend configuration")
	ErrValidation      = errors.New("invalid payment request")
	ErrExternalProcess = errors.New("external payment program failed")
)

// ConfigError reports a missing or malformed backend option.
// It is raised at construction time and never retried.
type ConfigError struct {
	Backend Kind
	Field   string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s configuration: %s: %s", e.Backend, e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// ValidationError reports a request field rejected before signing
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("field %s value %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ExternalProcessError carries the status reported by the SIPS middleware
type ExternalProcessError struct {
	Executable string
	Code       string
	Message    string
}

func (e *ExternalProcessError) Error() string {
	return fmt.Sprintf("%s returned %s: %s", e.Executable, e.Code, e.Message)
}

func (e *ExternalProcessError) Is(target error) bool {
	return target == ErrExternalProcess
}
