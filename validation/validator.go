package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/util"
)

// FieldError is a validation failure for one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Checker accumulates field errors so a config section or request reports
// every problem at once.
type Checker struct {
	fields []FieldError
}

// New creates an empty Checker.
func New() *Checker {
	return &Checker{}
}

// Check records message for field unless ok.
func (c *Checker) Check(ok bool, field, message string) *Checker {
	if !ok {
		c.fields = append(c.fields, FieldError{Field: field, Message: message})
	}
	return c
}

// Range checks lo <= value <= hi.
func (c *Checker) Range(field string, value, lo, hi int) *Checker {
	return c.Check(value >= lo && value <= hi, field, fmt.Sprintf("must be between %d and %d", lo, hi))
}

// OneOf checks that value is in allowed.
func (c *Checker) OneOf(field, value string, allowed []string) *Checker {
	return c.Check(util.StringInSlice(value, allowed), field, "must be one of: "+strings.Join(allowed, ", "))
}

// Fields returns the recorded errors.
func (c *Checker) Fields() []FieldError {
	return c.fields
}

// Err returns an INVALID_INPUT *errors.AppError listing every field error,
// or nil when there are none.
func (c *Checker) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return invalid(c.fields)
}

func invalid(fields []FieldError) *errors.AppError {
	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = f.Field + ": " + f.Message
	}
	return errors.Validation(strings.Join(messages, "; ")).WithDetail("fields", fields)
}
