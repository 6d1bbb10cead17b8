/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides the in-memory reference implementation of datastore.Engine
package memory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/suparena/dorm/datastore"
	"github.com/suparena/dorm/errors"
	sm "github.com/suparena/dorm/storagemodels"
)

// Engine is an in-memory datastore.Engine. The table set has its own lock
// and every table guards its rows.
type Engine struct {
	mu          sync.RWMutex
	tables      map[string]*Table
	logger      *slog.Logger
	getError    error
	upsertError error
	deleteError error
}

var _ datastore.Engine = (*Engine)(nil)

// New creates an empty in-memory engine
func New() *Engine {
	return &Engine{
		tables: make(map[string]*Table),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the logger used for table lifecycle events
func (e *Engine) WithLogger(logger *slog.Logger) *Engine {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// WithGetError makes Get operations return an error
func (e *Engine) WithGetError(err error) *Engine {
	e.getError = err
	return e
}

// WithUpsertError makes Upsert operations return an error
func (e *Engine) WithUpsertError(err error) *Engine {
	e.upsertError = err
	return e
}

// WithDeleteError makes Delete operations return an error
func (e *Engine) WithDeleteError(err error) *Engine {
	e.deleteError = err
	return e
}

// CreateTable adds an empty table built from spec
func (e *Engine) CreateTable(ctx context.Context, spec datastore.TableSpec) error {
	if err := datastore.CheckSpec(spec); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.tables[spec.Name]; exists {
		return errors.NewValidationError("name", fmt.Sprintf("table %q already exists", spec.Name))
	}

	t := NewTable(spec.Name, spec.FieldTypes)
	for _, c := range spec.Columns {
		if err := t.AddColumn(c); err != nil {
			return err
		}
	}
	e.tables[spec.Name] = t
	e.logger.DebugContext(ctx, "table created", "table", spec.Name, "columns", len(spec.Columns))
	return nil
}

// DropTable removes the named table and its rows
func (e *Engine) DropTable(ctx context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.tables[name]; !ok {
		return errors.NewTableNotFoundError(name)
	}
	delete(e.tables, name)
	e.logger.DebugContext(ctx, "table dropped", "table", name)
	return nil
}

// Table returns the named table
func (e *Engine) Table(name string) (*Table, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	t, ok := e.tables[name]
	if !ok {
		return nil, errors.NewTableNotFoundError(name)
	}
	return t, nil
}

// Tables lists the table names in lexical order
func (e *Engine) Tables() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.tables))
	for n := range e.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) Columns(ctx context.Context, table string) ([]sm.Column, error) {
	t, err := e.Table(table)
	if err != nil {
		return nil, err
	}
	return t.Columns(), nil
}

func (e *Engine) Get(ctx context.Context, table string, key sm.Value) (sm.Row, bool, error) {
	if e.getError != nil {
		return nil, false, e.getError
	}
	t, err := e.Table(table)
	if err != nil {
		return nil, false, err
	}
	return t.Get(key)
}

func (e *Engine) Upsert(ctx context.Context, table string, row sm.Row) (sm.Row, error) {
	if e.upsertError != nil {
		return nil, e.upsertError
	}
	t, err := e.Table(table)
	if err != nil {
		return nil, err
	}
	return t.Upsert(row)
}

func (e *Engine) Delete(ctx context.Context, table string, key sm.Value) error {
	if e.deleteError != nil {
		return e.deleteError
	}
	t, err := e.Table(table)
	if err != nil {
		return err
	}
	return t.Delete(key)
}

// Count returns the number of rows in table, or zero for an unknown table
func (e *Engine) Count(table string) int {
	t, err := e.Table(table)
	if err != nil {
		return 0
	}
	return t.Len()
}
