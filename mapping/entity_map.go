/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/suparena/dorm/errors"
	sm "github.com/suparena/dorm/storagemodels"
)

// Schema is the type-independent view of an entity map used by the
// database and the storage engines.
type Schema interface {
	// Table is the name of the table backing the entity type.
	Table() string
	// Columns lists the mapped columns in configuration order.
	Columns() []sm.Column
	// EntityType is the Go type the map converts.
	EntityType() reflect.Type
	// Seal freezes the configuration.
	Seal()
}

// ColumnConfig is one column binding of an EntityMap.
type ColumnConfig[T any] struct {
	owner  *EntityMap[T]
	column sm.Column
	access Accessor[T]
}

// Generated marks a key column as assigned by the storage engine on insert.
func (c *ColumnConfig[T]) Generated(generated bool) *ColumnConfig[T] {
	c.owner.mustBeOpen()
	if !c.column.Key {
		panic(fmt.Sprintf("mapping: column %q is not a key and cannot be generated", c.column.Name))
	}
	c.column.Generated = generated
	return c
}

func (c *ColumnConfig[T]) Column() sm.Column { return c.column }

// EntityMap binds the columns of one table to the fields of T.
type EntityMap[T any] struct {
	table    string
	bindings []*ColumnConfig[T]
	sealed   atomic.Bool
}

// New creates an empty map for T backed by table.
func New[T any](table string) *EntityMap[T] {
	if table == "" {
		panic("mapping: table name must not be empty")
	}
	return &EntityMap[T]{table: table}
}

// Configure registers one column binding. It panics once the map is sealed,
// and for a duplicate or empty column name.
func (m *EntityMap[T]) Configure(name string, access Accessor[T], key, generated bool) *ColumnConfig[T] {
	m.mustBeOpen()
	if name == "" {
		panic("mapping: column name must not be empty")
	}
	if access == nil {
		panic(fmt.Sprintf("mapping: nil accessor for column %q", name))
	}
	for _, b := range m.bindings {
		if b.column.Name == name {
			panic(fmt.Sprintf("mapping: column %q configured twice on table %q", name, m.table))
		}
	}

	cfg := &ColumnConfig[T]{
		owner: m,
		column: sm.Column{
			Name: name,
			Kind: access.Kind(),
			Key:  key,
		},
		access: access,
	}
	m.bindings = append(m.bindings, cfg)
	if generated {
		cfg.Generated(true)
	}
	return cfg
}

// ID maps the key column.
func (m *EntityMap[T]) ID(name string, access Accessor[T]) *ColumnConfig[T] {
	return m.Configure(name, access, true, false)
}

// Field maps an ordinary column.
func (m *EntityMap[T]) Field(name string, access Accessor[T]) *ColumnConfig[T] {
	return m.Configure(name, access, false, false)
}

func (m *EntityMap[T]) Table() string { return m.table }

func (m *EntityMap[T]) EntityType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Columns returns a copy of the column list in configuration order.
func (m *EntityMap[T]) Columns() []sm.Column {
	cols := make([]sm.Column, len(m.bindings))
	for i, b := range m.bindings {
		cols[i] = b.column
	}
	return cols
}

// KeyColumn returns the first key column.
func (m *EntityMap[T]) KeyColumn() (sm.Column, bool) {
	for _, b := range m.bindings {
		if b.column.Key {
			return b.column, true
		}
	}
	return sm.Column{}, false
}

func (m *EntityMap[T]) Seal() { m.sealed.Store(true) }

func (m *EntityMap[T]) Sealed() bool { return m.sealed.Load() }

// ToEntity allocates a T and fills every mapped field from rec. On failure
// no entity is returned.
func (m *EntityMap[T]) ToEntity(rec *sm.Record) (*T, error) {
	instance := new(T)
	if err := m.apply(instance, rec); err != nil {
		return nil, err
	}
	return instance, nil
}

// UpdateEntity overwrites the mapped fields of entity from rec. The fields
// are staged on a copy, so entity is left untouched when any column fails.
func (m *EntityMap[T]) UpdateEntity(entity *T, rec *sm.Record) error {
	staged := *entity
	if err := m.apply(&staged, rec); err != nil {
		return err
	}
	*entity = staged
	return nil
}

// ToRecord snapshots every mapped field of entity.
func (m *EntityMap[T]) ToRecord(entity *T) *sm.Record {
	rec := sm.NewRecord()
	for _, b := range m.bindings {
		rec.Set(b.column.Name, b.access.Get(entity))
	}
	return rec
}

func (m *EntityMap[T]) apply(entity *T, rec *sm.Record) error {
	for _, b := range m.bindings {
		v, err := rec.Get(b.column.Name)
		if err != nil {
			return fmt.Errorf("table %q: %w", m.table, err)
		}
		if err := b.access.Set(entity, v); err != nil {
			if errors.IsTypeMismatch(err) {
				return errors.NewTypeMismatchError(b.column.Name, b.column.Kind, v.Kind())
			}
			return fmt.Errorf("column %q: %w", b.column.Name, err)
		}
	}
	return nil
}

func (m *EntityMap[T]) mustBeOpen() {
	if m.sealed.Load() {
		panic(fmt.Sprintf("mapping: entity map for table %q is sealed", m.table))
	}
}
