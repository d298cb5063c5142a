// Package validation collects per-field input checks into a map of
// field -> message, which handlers hand to response.ValidationError as-is.
package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

var emailRx = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Validator struct {
	errors map[string]string
}

func New() *Validator {
	return &Validator{errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.errors) == 0
}

func (v *Validator) Errors() map[string]string {
	return v.errors
}

// AddError records the first message per field; later checks don't overwrite.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.errors[field]; !exists {
		v.errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) Require(field, value string) {
	v.Check(value != "", field, field+" is required")
}

func (v *Validator) Email(field, value string) {
	v.Check(emailRx.MatchString(value), field, "must be a valid email address")
}

func (v *Validator) MinLength(field, value string, min int) {
	v.Check(len(value) >= min, field, fmt.Sprintf("must be at least %d characters", min))
}

func (v *Validator) MaxLength(field, value string, max int) {
	v.Check(len(value) <= max, field, fmt.Sprintf("must be at most %d characters", max))
}

func (v *Validator) IntRange(field string, value, min, max int) {
	v.Check(value >= min && value <= max, field, fmt.Sprintf("must be between %d and %d", min, max))
}

func (v *Validator) Match(field, a, b string) {
	v.Check(a == b, field, "passwords do not match")
}

// Password enforces length >= 8 plus at least one upper, lower, digit and
// symbol character.
func (v *Validator) Password(field, value string) {
	if len(value) < 8 {
		v.AddError(field, "must be at least 8 characters")
		return
	}

	var upper, lower, digit, symbol bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	if !upper || !lower || !digit || !symbol {
		v.AddError(field, "must contain upper and lower case letters, a digit and a symbol")
	}
}
