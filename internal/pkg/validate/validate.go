// Package validate runs struct-tag validation and reports failures as
// domain field errors.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"job-board/internal/domain"
	"job-board/internal/pkg/password"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return password.Validate(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{v: v}
}

var std = New()

// Struct validates s and returns a *domain.ValidationError on failure.
func Struct(s any) error { return std.Struct(s) }

// Field validates a single value and records any failure under name.
func Field(fields *domain.Fields, name string, value any, tag string) {
	std.Field(fields, name, value, tag)
}

func (x *Validator) Struct(s any) error {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return domain.NewValidationError("Validation failed.", domain.FieldError{Field: "body", Message: err.Error()})
	}
	var fields domain.Fields
	for _, fe := range ves {
		fields.Add(fe.Field(), message(fe))
	}
	return fields.Err()
}

func (x *Validator) Field(fields *domain.Fields, name string, value any, tag string) {
	err := x.v.Var(value, tag)
	if err == nil {
		return
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		fields.Add(name, err.Error())
		return
	}
	for _, fe := range ves {
		fields.Add(name, message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "required_if":
		return "is required for recruiters"
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	case "password":
		return "must be 8 to 72 bytes long and contain a number"
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return "is invalid"
	}
}
