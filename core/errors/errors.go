// Package errors provides the error kinds reported by verse lookups.
//
// Every typed error unwraps to one of the package sentinels so callers can
// branch with errors.Is without caring about the concrete type.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a book, chapter or verse was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates malformed input or a failed validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict indicates mutually exclusive arguments were combined
	ErrConflict = errors.New("conflicting arguments")
	// ErrMissing indicates a required argument was not supplied
	ErrMissing = errors.New("missing argument")
)

// NotFoundError represents a lookup that matched nothing
type NotFoundError struct {
	Resource string // Kind of thing looked up (e.g., "book", "chapter", "verse")
	ID       string // Identifier that was looked up
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents an argument validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// LocatorError represents a malformed compact or explicit locator.
type LocatorError struct {
	Input   string // Locator text as supplied
	Message string // What is wrong with it
	Err     error  // Underlying parser error, if any
}

func (e *LocatorError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid locator %q: %s", e.Input, e.Message)
	}
	return fmt.Sprintf("invalid locator: %s", e.Message)
}

func (e *LocatorError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Is lets errors.Is(err, ErrInvalidInput) succeed even when a parser error is wrapped.
func (e *LocatorError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "open")
	Path      string // File path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or schema error in a source document
type ParseError struct {
	Format  string // Format being parsed (e.g., "XML")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Is lets errors.Is(err, ErrInvalidInput) succeed even when a decoder error is wrapped.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// LoadError reports a corpus that could not be loaded. Err is an *IOError or
// a *ParseError.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("cannot load document %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("cannot load document: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ConflictError represents mutually exclusive arguments given together
type ConflictError struct {
	Args []string // Flags that were combined
}

func (e *ConflictError) Error() string {
	switch len(e.Args) {
	case 0:
		return "conflicting arguments"
	case 1:
		return fmt.Sprintf("%s conflicts with another argument", e.Args[0])
	}
	msg := e.Args[0]
	for i, a := range e.Args[1:] {
		if i == len(e.Args)-2 {
			msg += " and " + a
		} else {
			msg += ", " + a
		}
	}
	return msg + " cannot be used together"
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// MissingError represents a required argument that was not supplied
type MissingError struct {
	Arg  string // Flag or argument name
	Hint string // Optional hint on how to supply it
}

func (e *MissingError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("missing %s: %s", e.Arg, e.Hint)
	}
	return fmt.Sprintf("missing %s", e.Arg)
}

func (e *MissingError) Unwrap() error {
	return ErrMissing
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewLocator creates a LocatorError
func NewLocator(input, message string) *LocatorError {
	return &LocatorError{
		Input:   input,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewLoad creates a LoadError
func NewLoad(path string, err error) *LoadError {
	return &LoadError{
		Path: path,
		Err:  err,
	}
}

// NewConflict creates a ConflictError
func NewConflict(args ...string) *ConflictError {
	return &ConflictError{Args: args}
}

// NewMissing creates a MissingError
func NewMissing(arg, hint string) *MissingError {
	return &MissingError{
		Arg:  arg,
		Hint: hint,
	}
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
