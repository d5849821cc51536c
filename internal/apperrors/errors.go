package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// FieldErrors is a domain error carrying per-field messages natively, so
// callers never have to round-trip a serialized map through an error string.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return strings.Join(parts, "; ")
}

// InvalidReferenceError reports a malformed identifier on a known field path,
// the moral equivalent of a cast failure in the persistence layer.
type InvalidReferenceError struct {
	Field string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s format", e.Field)
}

// Sentinel domain errors. The message texts are part of the API surface:
// they are matched by clients and echoed verbatim in error bodies.
var (
	ErrMissingSecret     = errors.New("signing secret is not configured")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidEmail      = errors.New("Enter A valid Email")
	ErrWeakPassword      = errors.New("Password is not strong enough")
	ErrUsernameTaken     = errors.New("Username already exists")
	ErrEmailTaken        = errors.New("Email already exists")
	ErrIncorrectEmail    = errors.New("incorrect email")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrNotFound          = errors.New("not found")
)

// IsNotFound reports whether err should surface as a 404-style response
// rather than a normalized field map.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
