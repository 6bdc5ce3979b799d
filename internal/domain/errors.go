package domain

import (
	"errors"
	"strings"
)

var (
	// ErrValidation marks structural input problems.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks a missing, invalid or expired session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is returned for both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail is returned when registering an email that is already taken.
	ErrDuplicateEmail = errors.New("user already exists")
	// ErrNotFound covers records that are absent or owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrUpstream wraps failures of the asset host.
	ErrUpstream = errors.New("upstream failure")
	// ErrInternal marks anything unanticipated.
	ErrInternal = errors.New("internal error")
)

// FieldError is a single field-level validation message.
type FieldError struct {
	Field   string
	Message string
	Value   string
}

// ValidationError aggregates field errors for one request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Add appends a field error.
func (e *ValidationError) Add(field, message, value string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message, Value: value})
}

// OrNil returns e when it holds at least one field error.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Has reports whether a field already has an error recorded.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Merge appends the errors of other for fields not yet present in e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for _, f := range other.Fields {
		if !e.Has(f.Field) {
			e.Fields = append(e.Fields, f)
		}
	}
}
