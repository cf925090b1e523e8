package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is the field-level violation shape returned in 400 bodies.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Message renders a human-readable message for a failed rule.
func Message(field, tag string) string {
	field = strings.ToLower(field[:1]) + field[1:]

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s is too short", field)
	case "max":
		return fmt.Sprintf("%s is too long", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "oneof":
		return fmt.Sprintf("%s has an unsupported value", field)
	case "password":
		return fmt.Sprintf("%s must contain an uppercase letter, a lowercase letter, a digit and a special character", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// CollectErrors converts a binding error into field-level messages.
// Non-validator errors (malformed JSON) collapse into a single entry.
func CollectErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "request body is malformed"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
			Message: Message(fe.Field(), fe.Tag()),
		})
	}
	return out
}
