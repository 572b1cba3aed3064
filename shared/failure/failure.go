package failure

import (
	"errors"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// ValidationFailure carries field-scoped messages, rendered as {"field": ["message", ...]}.
type ValidationFailure struct {
	Fields map[string][]string
}

func (e *ValidationFailure) Error() string {
	parts := make([]string, 0, len(e.Fields))

	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, field+": "+strings.Join(e.Fields[field], ", "))
	}

	return strings.Join(parts, "; ")
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// Validation returns a single field error.
func Validation(field, message string) error {
	return &ValidationFailure{
		Fields: map[string][]string{field: {message}},
	}
}

// ValidationFields returns a field error for every entry of fields, or nil when there is none.
func ValidationFields(fields map[string][]string) error {
	if len(fields) == 0 {
		return nil
	}

	return &ValidationFailure{Fields: fields}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	var validation *ValidationFailure
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// GetFields returns the field messages when err is a validation failure.
func GetFields(err error) (map[string][]string, bool) {
	var validation *ValidationFailure
	if errors.As(err, &validation) {
		return validation.Fields, true
	}

	return nil, false
}
