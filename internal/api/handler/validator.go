package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/taskforge/task-api/internal/core/domain"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to
// echo.Echo.Validator. Field names in error messages come from json tags.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. All violated rules are
// collected into one ValidationError, never just the first.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]domain.FieldError, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, fieldError(fe))
			}
			return &domain.ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) domain.FieldError {
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "email":
		msg = "must be a valid email address"
	case "min":
		msg = fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		msg = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		msg = fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		msg = "must match " + strings.ToLower(fe.Param())
	case "username":
		msg = "may only contain letters, digits, underscores and hyphens"
	default:
		msg = fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
	return domain.FieldError{Field: field, Message: msg}
}

// passwordViolations checks the password policy rule by rule so a rejection
// lists every unmet rule. go-playground stops at the first failing tag per
// field, hence the explicit walk.
func passwordViolations(password string) []domain.FieldError {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	var fields []domain.FieldError
	add := func(ok bool, msg string) {
		if !ok {
			fields = append(fields, domain.FieldError{Field: "password", Message: msg})
		}
	}
	add(len(password) >= 8, "must be at least 8 characters")
	add(hasUpper, "must contain an uppercase letter")
	add(hasLower, "must contain a lowercase letter")
	add(hasDigit, "must contain a digit")
	add(hasSpecial, "must contain a special character")
	return fields
}

// combine merges struct-tag violations with extra field errors into a single
// ValidationError, or returns nil when everything passed. A non-validation
// error from Validate passes through unchanged.
func combine(validateErr error, extra ...domain.FieldError) error {
	var fields []domain.FieldError
	if validateErr != nil {
		var ve *domain.ValidationError
		if !errors.As(validateErr, &ve) {
			return validateErr
		}
		fields = ve.Fields
	}
	fields = append(fields, extra...)
	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}
