package transport

import (
	"reflect"
	"strings"

	"github.com/expense-manager/expense-manager-go/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator checks decoded responses against their `validate` struct tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports JSON field names
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate checks result, which must be a pointer. Non-struct results are not checked.
func (v *Validator) Validate(result interface{}) error {
	rv := reflect.ValueOf(result)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	err := v.validate.Struct(result)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "failed to validate response")
	}

	out := &types.ValidationErrors{Type: rv.Type().Name()}
	for _, fe := range fieldErrs {
		out.Errors = append(out.Errors, &types.FieldError{
			Field: trimRoot(fe.Namespace()),
			Rule:  fe.Tag(),
		})
	}
	return out
}

// trimRoot drops the leading struct name from a validator namespace
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
