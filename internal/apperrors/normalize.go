package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// A rule inspects a failure and writes messages into the result map.
// Rules are not exclusive: several may fire for the same error, and a later
// rule may overwrite what an earlier one wrote. That override order is part
// of the contract.
type rule struct {
	match func(err error) bool
	apply func(err error, out FieldErrors)
}

var rules = []rule{
	// Per-field validation failures, keyed by field path.
	{
		match: func(err error) bool {
			var verrs validator.ValidationErrors
			return errors.As(err, &verrs)
		},
		apply: func(err error, out FieldErrors) {
			var verrs validator.ValidationErrors
			errors.As(err, &verrs)
			for _, fe := range verrs {
				out[strings.ToLower(fe.Field())] = fmt.Sprintf("Field validation failed on the '%s' rule", fe.Tag())
			}
		},
	},
	// Unique-constraint violations, attributed to the conflicting column
	// when the driver message names it.
	{
		match: func(err error) bool {
			return errors.Is(err, gorm.ErrDuplicatedKey)
		},
		apply: func(err error, out FieldErrors) {
			msg := strings.ToLower(err.Error())
			attributed := false
			if strings.Contains(msg, "username") {
				out["username"] = "This username is already taken"
				attributed = true
			}
			if strings.Contains(msg, "email") {
				out["email"] = "This email is already registered"
				attributed = true
			}
			if !attributed {
				out["message"] = "Duplicate field value: must be unique"
			}
		},
	},
	// Malformed identifiers on a known field path.
	{
		match: func(err error) bool {
			var ref *InvalidReferenceError
			return errors.As(err, &ref)
		},
		apply: func(err error, out FieldErrors) {
			var ref *InvalidReferenceError
			errors.As(err, &ref)
			out[ref.Field] = fmt.Sprintf("Invalid %s format", ref.Field)
		},
	},
	// Domain code signalling structured field errors directly.
	{
		match: func(err error) bool {
			var fe FieldErrors
			return errors.As(err, &fe)
		},
		apply: func(err error, out FieldErrors) {
			var fe FieldErrors
			errors.As(err, &fe)
			for field, msg := range fe {
				out[field] = msg
			}
		},
	},
	// Fixed catalog of sentinel failures, each owned by one field.
	{
		match: func(err error) bool {
			for _, s := range sentinelFields {
				if errors.Is(err, s.err) {
					return true
				}
			}
			return false
		},
		apply: func(err error, out FieldErrors) {
			for _, s := range sentinelFields {
				if errors.Is(err, s.err) {
					out[s.field] = s.err.Error()
				}
			}
		},
	},
}

var sentinelFields = []struct {
	err   error
	field string
}{
	{ErrInvalidEmail, "email"},
	{ErrWeakPassword, "password"},
	{ErrUsernameTaken, "username"},
	{ErrEmailTaken, "email"},
	{ErrIncorrectEmail, "email"},
	{ErrIncorrectPassword, "password"},
}

// Normalize converts any failure into a field-keyed message map suitable for
// returning verbatim as an error body. The seed fields are pre-populated with
// empty messages so the response always carries the caller's known keys.
// Normalize never panics and never lets an error escape unmapped: an
// unrecognized failure lands under a generic "message" key.
func Normalize(err error, seedFields ...string) FieldErrors {
	out := FieldErrors{}
	for _, f := range seedFields {
		out[f] = ""
	}
	if err == nil {
		return out
	}

	matched := false
	for _, r := range rules {
		if r.match(err) {
			r.apply(err, out)
			matched = true
		}
	}
	if !matched {
		out["message"] = err.Error()
	}
	return out
}
