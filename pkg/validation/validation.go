// Package validation checks payloads before they reach the database.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// Error contains the messages for all fields that failed validation.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, ", ")
}

// normalizer is implemented by payloads that trim or default
// their fields before validation.
type normalizer interface {
	normalize()
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use the JSON names of fields in messages
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("amount", isAmount); err != nil {
		panic(err)
	}

	return v
}

// isAmount validates that a string can be parsed as a number greater than 0.
func isAmount(fl validator.FieldLevel) bool {
	amount, err := ParseAmount(fl.Field().String())
	if err != nil {
		return false
	}

	return amount.IsPositive()
}

// ParseAmount parses a decimal amount, ignoring surrounding whitespace.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// Validate normalizes and validates a payload.
//
// payload must be a pointer to one of the payload types of this package.
// The returned error is an *Error.
func Validate(payload any) error {
	if n, ok := payload.(normalizer); ok {
		n.normalize()
	}

	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return &Error{Messages: []string{err.Error()}}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		messages = append(messages, toText(e))
	}

	return &Error{Messages: messages}
}

// ID validates that id can reference a row.
func ID(id int64, entity string) error {
	if id <= 0 {
		return &Error{Messages: []string{fmt.Sprintf("Invalid %s ID", strings.ToLower(entity))}}
	}

	return nil
}

func toText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s characters", e.Field(), e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "amount":
		return fmt.Sprintf("%s must be a number greater than 0", e.Field())
	case "gt":
		return fmt.Sprintf("%s must be a positive number", e.Field())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}
