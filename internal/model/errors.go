package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for editing operations
var (
	ErrEmptyTitle       = errors.New("section title and category name are required")
	ErrEmptyDescription = errors.New("feature description is required")
)

// ParseError represents parsing errors with source context
type ParseError struct {
	Source  string
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Source, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Source, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(source, field, message string, cause error) *ParseError {
	return &ParseError{
		Source:  source,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// IndexError reports an out-of-range position in the section tree.
// Positions are 1-based to match what users see.
type IndexError struct {
	Kind     string
	Position int
	Length   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s %d out of range (have %d)", e.Kind, e.Position, e.Length)
}
