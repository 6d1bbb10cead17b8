/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

type kind string

func (k kind) String() string { return string(k) }

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("person", "123")

	// Test error message
	expected := `person with key "123" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	// Test Is method
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	// Test helper function
	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "row",
			message:  "expected 3 values, got 2",
			expected: `validation failed for field "row": expected 3 values, got 2`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "table has no key column",
			expected: "validation failed: table has no key column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !errors.Is(err, ErrInvalidInput) {
				t.Error("ValidationError should match ErrInvalidInput")
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestTypeMismatchError(t *testing.T) {
	tests := []struct {
		name     string
		column   string
		expected string
	}{
		{
			name:     "with column",
			column:   "age",
			expected: `type mismatch for column "age": expected int, got string`,
		},
		{
			name:     "without column",
			expected: "type mismatch: expected int, got string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTypeMismatchError(tt.column, kind("int"), kind("string"))
			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}
			if !IsTypeMismatch(err) {
				t.Error("IsTypeMismatch should return true for TypeMismatchError")
			}
		})
	}
}

func TestStorageErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		expected string
		check    func(error) bool
	}{
		{
			name:     "unsupported type",
			err:      NewUnsupportedTypeError(kind("bool")),
			sentinel: ErrUnsupportedType,
			expected: "unsupported field type bool",
			check:    IsUnsupportedType,
		},
		{
			name:     "column not found",
			err:      NewColumnNotFoundError("email"),
			sentinel: ErrColumnNotFound,
			expected: `column "email" not found`,
			check:    IsColumnNotFound,
		},
		{
			name:     "table not found",
			err:      NewTableNotFoundError("person"),
			sentinel: ErrTableNotFound,
			expected: `table "person" not found`,
			check:    IsTableNotFound,
		},
		{
			name:     "composite key",
			err:      NewCompositeKeyError("order_line", 2),
			sentinel: ErrCompositeKeyUnsupported,
			expected: `table "order_line" has 2 key columns: composite keys not supported`,
			check:    IsCompositeKeyUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, tt.err.Error())
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("%T should match %v", tt.err, tt.sentinel)
			}
			if !tt.check(tt.err) {
				t.Errorf("helper should return true for %T", tt.err)
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	// Test that wrapped errors still match
	original := NewTableNotFoundError("person")
	wrapped := fmt.Errorf("save failed: %w", original)

	if !errors.Is(wrapped, ErrTableNotFound) {
		t.Error("Wrapped TableNotFoundError should still match ErrTableNotFound")
	}

	var tnf *TableNotFoundError
	if !errors.As(wrapped, &tnf) || tnf.Table != "person" {
		t.Errorf("errors.As should recover the table name, got %+v", tnf)
	}
}

func TestSentinelErrors(t *testing.T) {
	// Ensure sentinel errors are distinct
	sentinels := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrTypeMismatch,
		ErrUnsupportedType,
		ErrColumnNotFound,
		ErrTableNotFound,
		ErrCompositeKeyUnsupported,
		ErrNotInitialized,
		ErrAlreadyInitialized,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
