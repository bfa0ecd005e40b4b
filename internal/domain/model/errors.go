package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by repositories when no assessment matches the lookup.
var ErrNotFound = errors.New("assessment not found")

// FieldError describes one rejected input field.
type FieldError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

// ValidationError reports every rejected field of one request, in
// questionnaire order. CrisisSignal is set when the request still carried
// suicidal_thoughts = Yes, so callers can surface crisis resources.
type ValidationError struct {
	Fields       []FieldError
	CrisisSignal bool
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error.
func (e *ValidationError) Add(field, constraint, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Constraint: constraint, Message: message})
}

// HasErrors reports whether any field was rejected.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Field returns the error recorded for the named field, if any.
func (e *ValidationError) Field(name string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldError{}, false
}

// ArtifactError marks a missing, unreadable or inconsistent frozen artifact.
// It is fatal: the process must not serve requests.
type ArtifactError struct {
	Kind string
	Path string
	Err  error
}

func (e *ArtifactError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("artifact %s (%s): %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("artifact %s: %v", e.Kind, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// NewArtifactError builds an ArtifactError from a formatted message.
func NewArtifactError(kind, path, format string, args ...interface{}) *ArtifactError {
	return &ArtifactError{Kind: kind, Path: path, Err: fmt.Errorf(format, args...)}
}

// PredictionError marks an unexpected failure of the frozen model. It is not retried.
type PredictionError struct {
	Err          error
	CrisisSignal bool
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed: %v", e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
