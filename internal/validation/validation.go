// Package validation provides input validation utilities producing
// field-level error messages.
package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

// MinPasswordLength is the configurable floor of the password policy.
var MinPasswordLength = 8

// MaxPasswordLength is the bcrypt input ceiling. Longer passwords are
// rejected up front rather than silently truncated or failed at hashing
// time.
const MaxPasswordLength = 72

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Errors accumulates validation messages keyed by field name.
type Errors map[string][]string

// Add appends a message for the given field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether at least one field failed validation.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Required fails when value is empty.
func (e Errors) Required(field, value string) {
	if value == "" {
		e.Add(field, fmt.Sprintf("The %s field is required.", field))
	}
}

// MaxLen fails when value exceeds max bytes. Empty values pass; pair
// with Required when the field is mandatory.
func (e Errors) MaxLen(field, value string, max int) {
	if len(value) > max {
		e.Add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, max))
	}
}

// Email fails when value is not a plausible email address.
func (e Errors) Email(field, value string) {
	if value != "" && !emailRegex.MatchString(value) {
		e.Add(field, fmt.Sprintf("The %s must be a valid email address.", field))
	}
}

// In fails when value is not one of allowed.
func (e Errors) In(field, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e.Add(field, fmt.Sprintf("The selected %s is invalid.", field))
}

// Password enforces the strength policy: minimum length plus at least
// one uppercase letter, one lowercase letter and one digit.
func (e Errors) Password(field, value string) {
	if value == "" {
		return
	}
	if len(value) < MinPasswordLength {
		e.Add(field, fmt.Sprintf("The %s must be at least %d characters.", field, MinPasswordLength))
	}
	if len(value) > MaxPasswordLength {
		e.Add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, MaxPasswordLength))
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		e.Add(field, fmt.Sprintf("The %s must contain at least one uppercase letter.", field))
	}
	if !hasLower {
		e.Add(field, fmt.Sprintf("The %s must contain at least one lowercase letter.", field))
	}
	if !hasDigit {
		e.Add(field, fmt.Sprintf("The %s must contain at least one digit.", field))
	}
}
