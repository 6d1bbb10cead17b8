/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import (
	"fmt"
	"sync"

	"github.com/suparena/dorm/datastore"
	"github.com/suparena/dorm/errors"
	"github.com/suparena/dorm/registry"
	sm "github.com/suparena/dorm/storagemodels"
)

// Table holds rows aligned to its column list. Rows are matched by a linear
// scan over the key column; the first equal row wins.
type Table struct {
	mu         sync.RWMutex
	name       string
	fieldTypes *registry.FieldTypes
	columns    []sm.Column
	rows       []sm.Row
	lastID     int64
}

// NewTable creates an empty table that compares keys with fieldTypes.
func NewTable(name string, fieldTypes *registry.FieldTypes) *Table {
	return &Table{name: name, fieldTypes: fieldTypes}
}

func (t *Table) Name() string { return t.name }

// AddColumn appends a column definition. It fails once the table holds rows.
func (t *Table) AddColumn(col sm.Column) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.rows) > 0 {
		return errors.NewValidationError("columns", fmt.Sprintf("cannot add column %q to non-empty table %q", col.Name, t.name))
	}
	for _, c := range t.columns {
		if c.Name == col.Name {
			return errors.NewValidationError("columns", fmt.Sprintf("column %q defined twice on table %q", col.Name, t.name))
		}
	}
	t.columns = append(t.columns, col)
	return nil
}

// Columns returns a copy of the column list.
func (t *Table) Columns() []sm.Column {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]sm.Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of stored rows.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Get returns a copy of the row whose key equals key.
func (t *Table) Get(key sm.Value) (sm.Row, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	pos, err := t.find(key)
	if err != nil || pos < 0 {
		return nil, false, err
	}
	return t.rows[pos].Clone(), true, nil
}

// Upsert replaces the row sharing row's key in place, or appends row as a
// new one. On insert a generated key column is overwritten with the next id.
func (t *Table) Upsert(row sm.Row) (sm.Row, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := datastore.CheckRow(t.columns, row); err != nil {
		return nil, fmt.Errorf("table %q: %w", t.name, err)
	}
	k, err := datastore.SingleKey(t.name, t.columns)
	if err != nil {
		return nil, err
	}
	keyCol := t.columns[k]
	if row[k].IsNull() && !keyCol.Generated {
		return nil, errors.NewValidationError(keyCol.Name, fmt.Sprintf("key of table %q must be set", t.name))
	}

	pos, err := t.find(row[k])
	if err != nil {
		return nil, err
	}

	stored := row.Clone()
	if pos >= 0 {
		t.rows[pos] = stored
		return stored.Clone(), nil
	}

	if keyCol.Generated {
		id, ok := sm.WithInt(keyCol.Kind, t.lastID+1)
		if !ok {
			return nil, errors.NewValidationError(keyCol.Name, fmt.Sprintf("generated column must be int or int64, not %s", keyCol.Kind))
		}
		t.lastID++
		stored[k] = id
	}
	t.rows = append(t.rows, stored)
	return stored.Clone(), nil
}

// Delete removes the row whose key equals key.
func (t *Table) Delete(key sm.Value) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos, err := t.find(key)
	if err != nil {
		return err
	}
	if pos < 0 {
		return errors.NewNotFoundError(t.name, key.String())
	}
	t.rows = append(t.rows[:pos], t.rows[pos+1:]...)
	return nil
}

// find returns the position of the row whose key equals key, or -1.
// Callers hold t.mu.
func (t *Table) find(key sm.Value) (int, error) {
	k, err := datastore.SingleKey(t.name, t.columns)
	if err != nil {
		return -1, err
	}
	equal, err := t.fieldTypes.Comparator(t.columns[k].Kind)
	if err != nil {
		return -1, fmt.Errorf("table %q column %q: %w", t.name, t.columns[k].Name, err)
	}
	for i, r := range t.rows {
		if equal(r[k], key) {
			return i, nil
		}
	}
	return -1, nil
}
