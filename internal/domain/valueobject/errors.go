package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Error taxonomy
// ---------------------------------------------------------------------------

// ValidationError reports malformed or out-of-range applicant input. It is
// always surfaced to the caller and never retried internally.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConfigurationError reports an invalid weight/threshold/rate setup. Scoring
// fails fast on it before any factor is evaluated.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s", e.Reason)
}

// NewConfigurationError builds a ConfigurationError.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// ErrEnrichmentUnavailable signals that the external enrichment call was
// skipped by the rate limiter or circuit breaker, or that the provider
// failed. It degrades silently: the engine appends a note and continues with
// a zero bonus.
var ErrEnrichmentUnavailable = errors.New("enrichment unavailable")
