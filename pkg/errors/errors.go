// Package errors provides custom error types for the sourcecat system.
// The merge pipeline fails closed: any of the errors defined here aborts
// the current merge pass and no partial catalog is produced.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the sourcecat system
var (
	// ErrUnitMismatch indicates incompatible physical dimensions between a
	// value and the unit required of it
	ErrUnitMismatch = errors.New("non-equivalent units")

	// ErrMixedUnits indicates a sequence mixing unit-bearing values and
	// bare scalars
	ErrMixedUnits = errors.New("cannot mix units and scalars")

	// ErrConvergence indicates the enclosing-ellipse solver exhausted its
	// tolerance sequence without converging
	ErrConvergence = errors.New("no common ellipse found")

	// ErrSchema indicates duplicate or incompatible column definitions
	// while unioning catalog schemas
	ErrSchema = errors.New("incompatible catalog schemas")

	// ErrNotFound indicates that a requested row or column was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")
)

// UnitError represents a unit-consistency failure during validation of a
// quantity against a required unit.
type UnitError struct {
	Want    string // required unit
	Have    string // unit carried by the offending value, if any
	Context string // what was being validated, e.g. a column name
	Mixed   bool   // sequence mixed united and unitless elements
}

// Error implements the error interface
func (e *UnitError) Error() string {
	if e.Mixed {
		if e.Context != "" {
			return fmt.Sprintf("cannot mix units and scalars in %s", e.Context)
		}
		return "cannot mix units and scalars"
	}
	if e.Context != "" {
		return fmt.Sprintf("non-equivalent units for %s: have %s, want %s", e.Context, e.Have, e.Want)
	}
	return fmt.Sprintf("non-equivalent units: have %s, want %s", e.Have, e.Want)
}

// Is implements errors.Is support
func (e *UnitError) Is(target error) bool {
	if e.Mixed {
		return target == ErrMixedUnits
	}
	return target == ErrUnitMismatch
}

// NewUnitError creates a new UnitError
func NewUnitError(context, have, want string) *UnitError {
	return &UnitError{Context: context, Have: have, Want: want}
}

// NewMixedUnitsError creates a UnitError for a sequence mixing united and
// unitless elements
func NewMixedUnitsError(context string) *UnitError {
	return &UnitError{Context: context, Mixed: true}
}

// ConvergenceError represents an enclosing-ellipse solve that failed at
// every tolerance in the back-off sequence.
type ConvergenceError struct {
	Tolerances []float64
	Err        error
}

// Error implements the error interface
func (e *ConvergenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no common ellipse found after %d tolerance attempts: %v", len(e.Tolerances), e.Err)
	}
	return fmt.Sprintf("no common ellipse found after %d tolerance attempts", len(e.Tolerances))
}

// Unwrap implements errors.Unwrap
func (e *ConvergenceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConvergenceError) Is(target error) bool {
	return target == ErrConvergence
}

// NewConvergenceError creates a new ConvergenceError
func NewConvergenceError(tolerances []float64, err error) *ConvergenceError {
	return &ConvergenceError{Tolerances: tolerances, Err: err}
}

// SchemaError represents a failure to union two catalog schemas
type SchemaError struct {
	Column  string
	Message string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("schema error for column %s: %s", e.Column, e.Message)
	}
	return fmt.Sprintf("schema error: %s", e.Message)
}

// Is implements errors.Is support
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// NewSchemaError creates a new SchemaError
func NewSchemaError(column, message string) *SchemaError {
	return &SchemaError{Column: column, Message: message}
}

// MergeError represents an error during a catalog merge pass. It records
// which pair of the fold failed so multi-catalog merges can report the
// offending inputs.
type MergeError struct {
	First  string
	Second string
	Err    error
}

// Error implements the error interface
func (e *MergeError) Error() string {
	return fmt.Sprintf("merge error between %s and %s: %v", e.First, e.Second, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *MergeError) Unwrap() error {
	return e.Err
}

// NewMergeError creates a new MergeError
func NewMergeError(first, second string, err error) *MergeError {
	return &MergeError{First: first, Second: second, Err: err}
}

// NotFoundError represents an error when a row or column is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// ParseError represents an error when parsing catalog files
type ParseError struct {
	Format  string // "yaml", "reg"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// Helper functions for error checking

// IsUnitMismatch checks if an error is a unit mismatch error
func IsUnitMismatch(err error) bool {
	return errors.Is(err, ErrUnitMismatch)
}

// IsMixedUnits checks if an error is a mixed units error
func IsMixedUnits(err error) bool {
	return errors.Is(err, ErrMixedUnits)
}

// IsConvergence checks if an error is a convergence failure
func IsConvergence(err error) bool {
	return errors.Is(err, ErrConvergence)
}

// IsSchema checks if an error is a schema error
func IsSchema(err error) bool {
	return errors.Is(err, ErrSchema)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
