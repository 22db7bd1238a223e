package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under their wire names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	// Money and Date are validated through their text form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		switch x := field.Interface().(type) {
		case Money:
			return x.String()
		case Date:
			return x.String()
		}

		return nil
	}, Money{}, Date{})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	mustRegister(v, "money", func(fl validator.FieldLevel) bool {
		d, err := parseAmount(fl.Field().String())
		return err == nil && d.Abs().LessThan(maxMoney)
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// Validate checks v against its `validate` tags. The first violation is returned as a
// *ValidationError; nil means v is acceptable.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) || len(violations) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := violations[0]

	return &ValidationError{Field: fe.Field(), Message: violationMessage(fe)}
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "money":
		return fmt.Sprintf("%s must be a decimal amount below %s", fe.Field(), maxMoney.String())
	}

	return fmt.Sprintf("%s is invalid", fe.Field())
}

// Decode reads one JSON document from r into dst and validates it. Every failure, including
// malformed JSON, comes back as a *ValidationError.
func Decode(r io.Reader, dst any) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return decodeError(err)
	}

	return Validate(dst)
}

func decodeError(err error) *ValidationError {
	if ve, ok := AsValidation(err); ok {
		return ve
	}

	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)

	switch {
	case errors.As(err, &typeErr):
		return Invalid(typeErr.Field, "%s must be a %s", typeErr.Field, jsonKind(typeErr.Type))
	case errors.As(err, &syntaxErr):
		return &ValidationError{Message: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}
	case errors.Is(err, io.EOF):
		return &ValidationError{Message: "request body is required"}
	}

	return &ValidationError{Message: err.Error()}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "list"
	}

	return "object"
}
