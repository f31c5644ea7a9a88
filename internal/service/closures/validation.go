package closures

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	msg   string
	cause error
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Unwrap exposes the domain error that made the input invalid, if any.
func (e *ValidationError) Unwrap() error {
	return e.cause
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

func wrapValidationError(msg string, cause error) error {
	return &ValidationError{msg: msg + ": " + cause.Error(), cause: cause}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags on s and reports the first failure as a
// ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return validationError(fieldMessage(fieldErrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		if fe.Kind() == reflect.String {
			return field + " must be at most " + fe.Param() + " characters"
		}
		return field + " must be at most " + fe.Param()
	case "min":
		return field + " must be at least " + fe.Param()
	case "oneof":
		return field + " must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return field + " is invalid"
	}
}
