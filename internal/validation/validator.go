package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Field names in errors follow the JSON payload.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			return IsDate(fl.Field().String())
		})
	})
	return validate
}

// IsDate reports whether s is an ISO-8601 date or timestamp.
func IsDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// Struct validates s against its `validate` tags and reports every
// failing field at once as a *domain.ValidationError.
func Struct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}

	fields := make([]domain.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		fields = append(fields, domain.FieldError{
			Field:   e.Field(),
			Message: formatValidationError(e),
		})
	}
	return domain.NewValidationError(fields...)
}

// For adapts Struct to a typed gate function.
func For[T any]() func(T) error {
	return func(v T) error {
		return Struct(v)
	}
}

func formatValidationError(e validator.FieldError) string {
	field := e.Field()
	isString := e.Kind() == reflect.String

	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "date":
		return field + " must be a valid date"
	case "oneof":
		return field + " must be one of the following: " + strings.Join(strings.Fields(e.Param()), ", ")
	case "max":
		if isString {
			return fmt.Sprintf("%s cannot exceed %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "gt":
		if e.Param() == "0" {
			return field + " must be a positive number"
		}
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	default:
		return field + " is invalid"
	}
}
