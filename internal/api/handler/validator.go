package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// requiredMessager lets a request type choose the message reported when any
// of its required fields is missing.
type requiredMessager interface {
	requiredMessage() string
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return domain.IsValidEmail(fl.Field().String())
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. A missing field outranks
// any other failure; otherwise the first failure is reported.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	for _, fe := range ve {
		if fe.Tag() == "required" {
			if rm, ok := i.(requiredMessager); ok {
				return domain.NewValidationError(rm.requiredMessage())
			}
			return domain.NewValidationError(fieldError(fe))
		}
	}
	return domain.NewValidationError(fieldError(ve[0]))
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "emailaddr", "email":
		return "Invalid email format"
	case "min":
		if field == "password" {
			return fmt.Sprintf("Password must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		if field == "password" {
			return fmt.Sprintf("Password must be at most %s bytes", fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s%s must be one of: %s", strings.ToUpper(field[:1]), field[1:], fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
