package validator

import (
	"chappbooking/shared/failure"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		if name == "" {
			return field.Name
		}

		return name
	})
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, a failure.ValidationFailure listing every failing field is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return failure.Validation(typeErr.Field, fmt.Sprintf("%s must be a valid %s", typeErr.Field, typeErr.Type.Kind())) //nolint:wrapcheck
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		return failure.ValidationFields(fields(err)) //nolint:wrapcheck
	}

	return nil
}

// ValidateField validates a single value, such as a query parameter, reporting failures under name.
func ValidateField(name string, field any, tag string) error {
	err := validate.Var(field, tag)
	if err == nil {
		return nil
	}

	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return failure.Validation(name, err.Error()) //nolint:wrapcheck
	}

	msgs := make([]string, 0, len(valErrors))
	for _, valErr := range valErrors {
		msgs = append(msgs, render(valErr, name))
	}

	return failure.ValidationFields(map[string][]string{name: msgs}) //nolint:wrapcheck
}
