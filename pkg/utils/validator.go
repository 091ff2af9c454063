package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError is one failed rule, shown inline next to the form.
type FieldError struct {
	Field   string
	Value   string
	Message string
}

// Rule checks one form field against a validator tag such as "required" or
// "max=100". An empty Message falls back to a generic one for the tag.
type Rule struct {
	Field   string
	Tag     string
	Message string
}

// ValidateForm runs every rule in order against values and collects all
// failures. A failing rule never stops the rules after it.
func ValidateForm(values map[string]string, rules []Rule) []FieldError {
	var errs []FieldError
	for _, rule := range rules {
		value := values[rule.Field]
		err := validate.Var(value, rule.Tag)
		if err == nil {
			continue
		}

		message := rule.Message
		if message == "" {
			if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
				message = getErrorMessage(fieldErrs[0])
			} else {
				message = fmt.Sprintf("Invalid %s field", rule.Field)
			}
		}

		errs = append(errs, FieldError{Field: rule.Field, Value: value, Message: message})
	}
	return errs
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid":
		return "Must be a valid UUID"
	default:
		return "Invalid value"
	}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// EscapeHTML replaces HTML-significant characters with entities.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// FormatValidationErrors joins errors into a single line for logging.
func FormatValidationErrors(errs []FieldError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(msgs, "; ")
}
