package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"fakestore/internal/models"
	"fakestore/internal/repositories"
)

var (
	ErrInvalidAPIKey      = errors.New("invalid API key")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
	// ErrUserNotFound means a well-formed token names a user that no longer exists.
	ErrUserNotFound = errors.New("user not found")
	ErrNotFound     = repositories.ErrNotFound
	ErrConflict     = repositories.ErrDuplicate
)

// ForbiddenError is returned when the actor's role does not permit an action.
type ForbiddenError struct {
	Action Action
	Role   models.Role
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("role %s is not allowed to %s", e.Role, e.Action)
}

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

var validate = validator.New()

// validateStruct runs the struct's validate tags and converts failures into a
// *ValidationError keyed by field name.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &ValidationError{Fields: fields}
}
