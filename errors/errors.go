/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when no row matches a key
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrTypeMismatch is returned when an erased value does not carry the declared type
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsupportedType is returned when a type has no registered comparator
	ErrUnsupportedType = errors.New("unsupported field type")

	// ErrColumnNotFound is returned when a record does not hold a column
	ErrColumnNotFound = errors.New("column not found")

	// ErrTableNotFound is returned when no table exists for an entity type
	ErrTableNotFound = errors.New("table not found")

	// ErrCompositeKeyUnsupported is returned for tables with more than one key column
	ErrCompositeKeyUnsupported = errors.New("composite keys not supported")

	// ErrNotInitialized is returned when a database is used before Initialize
	ErrNotInitialized = errors.New("database not initialized")

	// ErrAlreadyInitialized is returned when a database is configured or initialized after Initialize
	ErrAlreadyInitialized = errors.New("database already initialized")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// TypeMismatchError is a failed cast of an erased value to a column's declared type
type TypeMismatchError struct {
	Column string
	Want   string
	Got    string
}

func (e *TypeMismatchError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("type mismatch for column %q: expected %s, got %s", e.Column, e.Want, e.Got)
	}
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Want, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// UnsupportedTypeError names a type with no registered comparator
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported field type %s", e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// ColumnNotFoundError names a column missing from a record
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrColumnNotFound
}

// TableNotFoundError names a missing table
type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found", e.Table)
}

func (e *TableNotFoundError) Is(target error) bool {
	return target == ErrTableNotFound
}

// CompositeKeyError is a lookup against a table whose identity spans several columns
type CompositeKeyError struct {
	Table string
	Keys  int
}

func (e *CompositeKeyError) Error() string {
	return fmt.Sprintf("table %q has %d key columns: composite keys not supported", e.Table, e.Keys)
}

func (e *CompositeKeyError) Is(target error) bool {
	return target == ErrCompositeKeyUnsupported
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewTypeMismatchError creates a new TypeMismatchError
func NewTypeMismatchError(column string, want, got fmt.Stringer) error {
	return &TypeMismatchError{Column: column, Want: want.String(), Got: got.String()}
}

// NewUnsupportedTypeError creates a new UnsupportedTypeError
func NewUnsupportedTypeError(typ fmt.Stringer) error {
	return &UnsupportedTypeError{Type: typ.String()}
}

// NewColumnNotFoundError creates a new ColumnNotFoundError
func NewColumnNotFoundError(column string) error {
	return &ColumnNotFoundError{Column: column}
}

// NewTableNotFoundError creates a new TableNotFoundError
func NewTableNotFoundError(table string) error {
	return &TableNotFoundError{Table: table}
}

// NewCompositeKeyError creates a new CompositeKeyError
func NewCompositeKeyError(table string, keys int) error {
	return &CompositeKeyError{Table: table, Keys: keys}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTypeMismatch checks if an error is a type mismatch error
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsUnsupportedType checks if an error is an unsupported type error
func IsUnsupportedType(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}

// IsColumnNotFound checks if an error is a column not found error
func IsColumnNotFound(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}

// IsTableNotFound checks if an error is a table not found error
func IsTableNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound)
}

// IsCompositeKeyUnsupported checks if an error is a composite key error
func IsCompositeKeyUnsupported(err error) bool {
	return errors.Is(err, ErrCompositeKeyUnsupported)
}
