package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"purchasing/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

// RequestValidator implements echo.Validator on top of go-playground/validator and
// reports failures in the errs taxonomy, named by their JSON field path.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	problems := make([]error, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		name := fieldPath(fe.Namespace())
		if fe.Tag() == "required" {
			problems = append(problems, errs.NewValueIsRequiredError(name))
			continue
		}
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("failed on %q", fe.Tag())))
	}
	return errors.Join(problems...)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
