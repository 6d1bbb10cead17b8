/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"fmt"

	"github.com/suparena/dorm/errors"
	"github.com/suparena/dorm/registry"
	"github.com/suparena/dorm/storagemodels"
)

// TableSpec describes a table to create.
type TableSpec struct {
	Name    string
	Columns []storagemodels.Column
	// FieldTypes supplies key equality. It belongs to the owning database.
	FieldTypes *registry.FieldTypes
}

// Engine stores rows in named tables. Rows are identified by the value of
// their single key column.
type Engine interface {
	CreateTable(ctx context.Context, spec TableSpec) error

	Columns(ctx context.Context, table string) ([]storagemodels.Column, error)

	// Get returns the row whose key equals key. A missing row is not an error.
	Get(ctx context.Context, table string, key storagemodels.Value) (storagemodels.Row, bool, error)

	// Upsert replaces the row with the same key or appends a new one,
	// assigning generated keys, and returns the stored values.
	Upsert(ctx context.Context, table string, row storagemodels.Row) (storagemodels.Row, error)

	Delete(ctx context.Context, table string, key storagemodels.Value) error
}

// SingleKey returns the index of the only key column in cols.
func SingleKey(table string, cols []storagemodels.Column) (int, error) {
	keys := storagemodels.KeyColumns(cols)
	switch len(keys) {
	case 0:
		return -1, errors.NewValidationError("", fmt.Sprintf("table %q has no key column", table))
	case 1:
		return keys[0], nil
	}
	return -1, errors.NewCompositeKeyError(table, len(keys))
}

// CheckRow verifies that row has one value per column and that every set
// value carries its column's kind.
func CheckRow(cols []storagemodels.Column, row storagemodels.Row) error {
	if len(row) != len(cols) {
		return errors.NewValidationError("row", fmt.Sprintf("expected %d values, got %d", len(cols), len(row)))
	}
	for i, c := range cols {
		if !row[i].IsNull() && row[i].Kind() != c.Kind {
			return errors.NewTypeMismatchError(c.Name, c.Kind, row[i].Kind())
		}
	}
	return nil
}

// CheckSpec validates a table specification before it is created.
func CheckSpec(spec TableSpec) error {
	if spec.Name == "" {
		return errors.NewValidationError("name", "table name must not be empty")
	}
	if spec.FieldTypes == nil {
		return errors.NewValidationError("field_types", fmt.Sprintf("table %q has no field type registry", spec.Name))
	}
	seen := make(map[string]struct{}, len(spec.Columns))
	for _, c := range spec.Columns {
		if _, dup := seen[c.Name]; dup {
			return errors.NewValidationError("columns", fmt.Sprintf("column %q defined twice on table %q", c.Name, spec.Name))
		}
		seen[c.Name] = struct{}{}
		if c.Generated && c.Kind != storagemodels.KindInt && c.Kind != storagemodels.KindInt64 {
			return errors.NewValidationError("columns", fmt.Sprintf("generated column %q must be int or int64, not %s", c.Name, c.Kind))
		}
	}
	return nil
}
