package application

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken   = errors.New("user with this email already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrTagNotFound  = errors.New("tag not found")
)

// ValidationError reports a bad or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Auth failure reasons.
const (
	ReasonInvalidCredentials = "invalid_credentials"
	ReasonUnauthenticated    = "unauthenticated"
)

// AuthError is returned when credentials or a token are rejected.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return "auth: " + e.Reason }

// Is matches any *AuthError with the same reason.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Reason == e.Reason
}

var (
	ErrInvalidCredentials = &AuthError{Reason: ReasonInvalidCredentials}
	ErrUnauthenticated    = &AuthError{Reason: ReasonUnauthenticated}
)

func requiredField(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}
