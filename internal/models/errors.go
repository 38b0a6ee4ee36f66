package models

import (
	"errors"
	"sort"
	"strings"
)

// Error kinds shared by every service. Service-level sentinel errors wrap one
// of these so callers can classify a failure with errors.Is without knowing
// the concrete error.
var (
	// ErrValidation marks bad input: missing fields, duplicate names, weak passwords
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a reference to an entity that does not exist
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied marks an action the acting user may not perform
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInUse marks a delete blocked because a task still references the entity
	ErrInUse = errors.New("entity is in use")
)

// ValidationError carries per-field messages for a rejected form.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Fields map[string]string

	causes []error
}

// NewValidationError returns a ValidationError with a single field message
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records a message for field, keeping the first message per field
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// AddErr records err's message for field and keeps err reachable through
// errors.Is, so callers can still match the service's sentinel error.
func (e *ValidationError) AddErr(field string, err error) {
	if err == nil {
		return
	}
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Add(field, err.Error())
	e.causes = append(e.causes, err)
}

// Empty reports whether no field has a message
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// OrNil returns e as an error, or nil when it holds no messages
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the sentinel errors recorded with AddErr
func (e *ValidationError) Unwrap() []error {
	return e.causes
}

// FieldError returns a ValidationError holding a single sentinel for field
func FieldError(field string, err error) *ValidationError {
	e := &ValidationError{}
	e.AddErr(field, err)
	return e
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
