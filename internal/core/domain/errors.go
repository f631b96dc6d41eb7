package domain

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials is deliberately generic: it never reveals
	// whether the identifier or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrUsernameTaken = errors.New("username already in use")

	// ErrTaskNotFound covers both "does not exist" and "exists but belongs
	// to another user" so task existence is never leaked across owners.
	ErrTaskNotFound = errors.New("task not found")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	ErrTooManyAttempts = errors.New("too many failed login attempts")
)

// FieldError describes a single violated validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// ValidationError aggregates every violated rule for a request payload, not
// just the first one encountered.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}
