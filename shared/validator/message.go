package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be at most {param} characters long",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"datetime": "{field} must be a date in YYYY-MM-DD format",
		"numeric":  "{field} must be a number",
		"number":   "{field} must be a whole number",
	}
)

func render(valErr val.FieldError, field string) string {
	msg := messages[valErr.Tag()]
	if msg == "" {
		return valErr.Error()
	}

	msg = strings.ReplaceAll(msg, "{field}", field)

	return strings.ReplaceAll(msg, "{param}", valErr.Param())
}

// fields groups every failing rule under its JSON field name.
func fields(err error) map[string][]string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return map[string][]string{"non_field_errors": {err.Error()}}
	}

	res := map[string][]string{}

	for _, valErr := range valErrors {
		res[valErr.Field()] = append(res[valErr.Field()], render(valErr, valErr.Field()))
	}

	return res
}
