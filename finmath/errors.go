/*
errors.go - Error taxonomy for the calculation engines

PURPOSE:
  Two error kinds cover every failure a pure calculator can have:

  ErrInvalidInput:
    A precondition is violated (non-positive tenure, sale before purchase,
    enumerated field outside its closed set). Raised at the engine boundary
    before any arithmetic; carries a human-readable reason that callers
    surface verbatim.

  ErrOutOfDomain:
    A lookup fell outside a known rate table (CII years). Engines resolve
    it by clamping to the nearest table boundary and report the clamp;
    it only becomes an error when clamping is impossible.

USAGE:
  if finmath.IsInvalidInput(err) { ... respond 400 ... }

SEE ALSO:
  - api/handlers.go: maps these onto HTTP status codes
*/
package finmath

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is returned when an engine precondition is violated.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfDomain is returned when a table lookup cannot be resolved
	// even by clamping.
	ErrOutOfDomain = errors.New("out of table domain")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// InvalidInputError carries the offending field and a reason suitable for
// showing to an end user unchanged.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInput builds an InvalidInputError for a field.
func NewInvalidInput(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInvalidInput reports whether err is a precondition violation.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
