package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is a single rejected value.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldErrors collects rejected values of one form submission.
type FieldErrors []FieldError

func (e FieldErrors) HasErrors() bool { return len(e) > 0 }

// Has reports whether field was rejected.
func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Messages returns the messages attached to field.
func (e FieldErrors) Messages(field string) []string {
	var out []string
	for _, fe := range e {
		if fe.Field == field {
			out = append(out, fe.Message)
		}
	}
	return out
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(parts, "; ")
}

// Reject appends a field error.
func (e *FieldErrors) Reject(field, code, message string) {
	*e = append(*e, FieldError{Field: field, Code: code, Message: message})
}

// FromBinding converts the error of a gin bind call into field errors.
// Values that could not be parsed at all are reported under "form".
func FromBinding(err error) FieldErrors {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{{Field: "form", Code: "typeMismatch", Message: err.Error()}}
	}

	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		out = append(out, FieldError{Field: field, Code: fe.Tag(), Message: message(fe)})
	}
	return out
}

// BindFailure keeps only the part of a bind error that is not a constraint
// violation; constraint violations are reported by the validators themselves.
func BindFailure(err error) FieldErrors {
	var verrs validator.ValidationErrors
	if err == nil || errors.As(err, &verrs) {
		return nil
	}
	return FromBinding(err)
}

// CheckStruct runs the binding constraints of obj without binding a request.
func CheckStruct(obj interface{}) FieldErrors {
	return FromBinding(binding.Validator.ValidateStruct(obj))
}

func message(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s should not be empty", name)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s should be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s should be greater than or equal to %s", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s should be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s should be less than or equal to %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
