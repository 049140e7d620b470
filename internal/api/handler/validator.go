package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/campusevents/event-platform/internal/core/domain"
)

// ruleMessages renders a failed rule for a field. Rules without an entry fall
// back to a generic message.
var ruleMessages = map[string]func(field, param string) string{
	"required": func(f, _ string) string { return f + " is required" },
	"notblank": func(f, _ string) string { return f + " must not be blank" },
	"email":    func(f, _ string) string { return f + " must be a valid email" },
	"gt":       func(f, p string) string { return fmt.Sprintf("%s must be greater than %s", f, p) },
	"gte":      func(f, p string) string { return fmt.Sprintf("%s must be at least %s", f, p) },
	"oneof": func(f, p string) string {
		return fmt.Sprintf("%s must be one of: %s", f, p)
	},
}

// requestValidator adapts go-playground/validator to echo.Validator.
type requestValidator struct {
	v *validator.Validate
}

// NewValidator returns the validator installed on the echo instance. Messages
// name fields by their json key and it understands a notblank rule that
// rejects whitespace-only strings.
func NewValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}
	return &requestValidator{v: v}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

// Validate implements echo.Validator. Rule failures become a single
// domain.ValidationError listing every offending field.
func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, len(fieldErrs))
	for n, fe := range fieldErrs {
		render, ok := ruleMessages[fe.Tag()]
		if !ok {
			msgs[n] = fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
			continue
		}
		msgs[n] = render(fe.Field(), fe.Param())
	}
	return domain.NewValidationError(strings.Join(msgs, "; "))
}
