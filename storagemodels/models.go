/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"sort"

	"github.com/suparena/dorm/errors"
)

// Column describes one column of a table.
type Column struct {
	// Name is the column name shared by records and rows.
	Name string
	// Kind is the declared type of values stored in the column.
	Kind Kind
	// Key marks the column as part of the row identity.
	Key bool
	// Generated marks a key column whose value the engine assigns on insert.
	Generated bool
}

// Row holds one value per column, in column order.
type Row []Value

// Clone returns a copy of r that shares no backing array with it.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// KeyColumns returns the indexes of the key columns in cols.
func KeyColumns(cols []Column) []int {
	var idx []int
	for i, c := range cols {
		if c.Key {
			idx = append(idx, i)
		}
	}
	return idx
}

// Record is a name-keyed snapshot of one row. It knows nothing about
// column order; callers supply that from a column list.
type Record struct {
	values map[string]Value
}

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]Value)}
}

// RecordFromRow projects row into a fresh Record using cols for names.
func RecordFromRow(cols []Column, row Row) *Record {
	rec := NewRecord()
	for i, c := range cols {
		if i < len(row) {
			rec.Set(c.Name, row[i])
		}
	}
	return rec
}

// Set stores v under name, overwriting any previous value.
func (r *Record) Set(name string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	r.values[name] = v
}

// Get returns the value stored under name.
func (r *Record) Get(name string) (Value, error) {
	v, ok := r.values[name]
	if !ok {
		return Null(), errors.NewColumnNotFoundError(name)
	}
	return v, nil
}

func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

func (r *Record) Len() int { return len(r.values) }

// Names returns the stored column names in lexical order.
func (r *Record) Names() []string {
	names := make([]string, 0, len(r.values))
	for n := range r.values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ToRow lays the record out in cols order. A missing column fails.
func (r *Record) ToRow(cols []Column) (Row, error) {
	row := make(Row, len(cols))
	for i, c := range cols {
		v, err := r.Get(c.Name)
		if err != nil {
			return nil, err
		}
		row[i] = v
	}
	return row, nil
}
