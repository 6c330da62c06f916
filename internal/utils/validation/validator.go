package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// rules holds the tag-based checks; it caches parsed tags and is safe for
// concurrent use.
var rules = validator.New()

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator struct {
	Errors []ValidationError
}

func New() *Validator {
	return &Validator{
		Errors: make([]ValidationError, 0),
	}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
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

// Required records a "required" error for every empty value, in order.
func (v *Validator) Required(fields ...Field) {
	for _, f := range fields {
		v.Check(strings.TrimSpace(f.Value) != "", f.Name, "required")
	}
}

// Fields returns the names of the fields that failed.
func (v *Validator) Fields() []string {
	names := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		names = append(names, e.Field)
	}
	return names
}

// Error joins every recorded error into one message.
func (v *Validator) Error() string {
	msgs := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Field pairs a request field name with its submitted value.
type Field struct {
	Name  string
	Value string
}

func IsEmail(s string) bool {
	return rules.Var(s, "required,email") == nil
}
