package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrNotInitialized = errors.New("not initialized")
	ErrInvalidInput   = errors.New("invalid input")
)

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "input", "table", "scheme"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// AlreadyExistsError indicates a resource already exists.
type AlreadyExistsError struct {
	Resource string
	ID       string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.ID)
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// ParseError indicates a malformed input row.
type ParseError struct {
	Line   int    // 1-based line number, header is line 1
	Column string // Header name of the offending column
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: column %s: %s (value %q)", e.Line, e.Column, e.Reason, e.Value)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidInput
}

// ValidationError indicates invalid user input or configuration.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NotInitializedError indicates no color table has been generated yet.
type NotInitializedError struct {
	Path string
}

func (e *NotInitializedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("no color table at %s (run 'namemap generate')", e.Path)
	}
	return "no color table (run 'namemap generate')"
}

func (e *NotInitializedError) Unwrap() error {
	return ErrNotInitialized
}

// Helper constructors for common cases

func InputNotFound(path string) error {
	return &NotFoundError{Resource: "input", ID: path}
}

func SchemeNotFound(name string) error {
	return &NotFoundError{Resource: "palette scheme", ID: name}
}

func ConfigAlreadyExists(path string) error {
	return &AlreadyExistsError{Resource: "config", ID: path}
}

func MissingColumn(column string) error {
	return &ParseError{Line: 1, Reason: fmt.Sprintf("missing required column %q", column)}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already-exists error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation or parse error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotInitialized checks if an error means no table exists yet.
func IsNotInitialized(err error) bool {
	return errors.Is(err, ErrNotInitialized)
}
