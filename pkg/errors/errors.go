// Package errors provides the error taxonomy for rigmap.
// Typed errors carry the offending input and support errors.Is against the
// package sentinels so callers can branch on the kind of failure.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard library helpers re-exported so callers need one errors import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// Sentinel errors for errors.Is checks.
var (
	// ErrNotFound indicates that a requested brand or radio was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a brand or radio already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedInput indicates a source row that could not be read
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnresolvedGrantee indicates an FCC ID with no known grantee code prefix
	ErrUnresolvedGrantee = errors.New("unresolved grantee")

	// ErrInvariantViolation indicates duplicate (brand, model) keys survived reconciliation
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// AlreadyExistsError reports a create that collides with an existing key.
type AlreadyExistsError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// MalformedInputError is a row-level failure in one of the readers.
// The row is skipped and the pass continues.
type MalformedInputError struct {
	Source  string // reader that produced the row, e.g. "catalog_csv"
	Line    int    // 1-based line or record number, 0 when unknown
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	var b strings.Builder
	b.WriteString("malformed ")
	b.WriteString(e.Source)
	b.WriteString(" row")
	if e.Line > 0 {
		fmt.Fprintf(&b, " %d", e.Line)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %q", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Unwrap implements errors.Unwrap.
func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// NewMalformedInputError creates a new MalformedInputError.
func NewMalformedInputError(source string, line int, field, message string) *MalformedInputError {
	return &MalformedInputError{Source: source, Line: line, Field: field, Message: message}
}

// UnresolvedGranteeError reports an FCC ID that no grantee code explains.
type UnresolvedGranteeError struct {
	FCCID  string
	Reason string
}

// Error implements the error interface.
func (e *UnresolvedGranteeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unresolved grantee for FCC ID %q: %s", e.FCCID, e.Reason)
	}
	return fmt.Sprintf("unresolved grantee for FCC ID %q", e.FCCID)
}

// Is implements errors.Is support.
func (e *UnresolvedGranteeError) Is(target error) bool {
	return target == ErrUnresolvedGrantee
}

// NewUnresolvedGranteeError creates a new UnresolvedGranteeError.
func NewUnresolvedGranteeError(fccID, reason string) *UnresolvedGranteeError {
	return &UnresolvedGranteeError{FCCID: fccID, Reason: reason}
}

// InvariantViolationError reports a normalized key held by more than one record
// after reconciliation. It is fatal for the pass.
type InvariantViolationError struct {
	Key   string
	Count int
}

// Error implements the error interface.
func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("duplicate catalog key %s held by %d records", e.Key, e.Count)
}

// Is implements errors.Is support.
func (e *InvariantViolationError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError represents an error when decoding a whole document.
type ParseError struct {
	Format  string // "csv", "xml", "yaml", "markdown"
	File    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations.
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError.
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// ResourceError represents an error during a store or catalog operation.
type ResourceError struct {
	Operation string // "load", "upsert", "rename", "dedupe"
	Resource  string // "radio", "brand", "catalog"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError.
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: message, Err: err}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMalformedInput checks if an error is a row-level reader failure.
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsUnresolvedGrantee checks if an error is an unresolved FCC ID.
func IsUnresolvedGrantee(err error) bool {
	return errors.Is(err, ErrUnresolvedGrantee)
}

// IsInvariantViolation checks if an error is a fatal duplicate-key error.
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}

// WrapIO wraps an error as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
