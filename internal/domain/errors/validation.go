package errors

import (
	"net/http"
	"strings"
)

// FieldError describes a single rule violated by a field of an input model.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is raised by a validator before any mutation takes place.
// It carries the offending model so the caller can re-render it with field errors.
type ValidationError struct {
	Model  any
	Fields []FieldError
}

// NewValidationError creates a validation error for model.
func NewValidationError(model any, fields []FieldError) *ValidationError {
	return &ValidationError{
		Model:  model,
		Fields: fields,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidationFailed.Error()
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap makes every ValidationError match ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return ErrValidationFailed.ErrorCode()
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	return ErrValidationFailed.Message()
}

// Details returns the field errors as a single line.
func (e *ValidationError) Details() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+"="+f.Rule)
	}

	return strings.Join(parts, ",")
}

// HasField reports whether the named field failed validation.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}

	return false
}
