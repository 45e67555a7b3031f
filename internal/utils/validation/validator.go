package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	digitsRegex       = regexp.MustCompile(`^[0-9]+$`)
	alphanumericRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	phoneRegex        = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is the list of field failures collected by a Validator.
type Errors []ValidationError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, ve := range e {
		parts[i] = ve.Error()
	}
	return strings.Join(parts, "; ")
}

// Has reports whether field failed validation.
func (e Errors) Has(field string) bool {
	for _, ve := range e {
		if ve.Field == field {
			return true
		}
	}
	return false
}

type Validator struct {
	Errors Errors
}

func New() *Validator {
	return &Validator{
		Errors: make(Errors, 0),
	}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// Err returns the collected errors, or nil when the input was valid.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return v.Errors
}

func (v *Validator) AddError(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks that a string is not blank.
func (v *Validator) Required(field, value string) bool {
	ok := strings.TrimSpace(value) != ""
	v.Check(ok, field, "must not be empty")
	return ok
}

// MaxBytes checks the UTF-8 byte length of value, not its rune count.
func (v *Validator) MaxBytes(field, value string, n int) {
	v.Check(len(value) <= n, field, fmt.Sprintf("must not be more than %d bytes long", n))
}

func (v *Validator) Digits(field, value string) {
	v.Check(digitsRegex.MatchString(value), field, "must contain digits only")
}

func (v *Validator) Alphanumeric(field, value string) {
	v.Check(alphanumericRegex.MatchString(value), field, "must contain letters and digits only")
}

// Phone validates an international phone number with optional leading +.
func (v *Validator) Phone(field, phone string) {
	v.Check(phoneRegex.MatchString(phone), field, "must be a valid phone number")
}

// Date checks value against a time layout.
func (v *Validator) Date(field, value, layout string) {
	_, err := time.Parse(layout, value)
	v.Check(len(value) == len(layout) && err == nil, field, "must be a valid date in "+layout+" format")
}
