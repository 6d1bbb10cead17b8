/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dorm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"

	"github.com/suparena/dorm/datastore"
	"github.com/suparena/dorm/errors"
	"github.com/suparena/dorm/mapping"
	"github.com/suparena/dorm/registry"
	sm "github.com/suparena/dorm/storagemodels"
)

// Database owns the entity maps of an application and the engine their
// tables live in. Maps are configured first, then Initialize creates one
// table per map. Sessions can only be opened on an initialized database.
type Database struct {
	mu          sync.RWMutex
	engine      datastore.Engine
	fieldTypes  *registry.FieldTypes
	logger      *slog.Logger
	schemas     map[reflect.Type]mapping.Schema
	order       []reflect.Type
	initialized bool
}

// Option configures a Database.
type Option func(*Database)

// WithFieldTypes replaces the default registry of comparable field types.
func WithFieldTypes(ft *registry.FieldTypes) Option {
	return func(db *Database) {
		if ft != nil {
			db.fieldTypes = ft
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(db *Database) {
		if logger != nil {
			db.logger = logger
		}
	}
}

// New creates an uninitialized Database on top of engine.
func New(engine datastore.Engine, opts ...Option) *Database {
	db := &Database{
		engine:     engine,
		fieldTypes: registry.DefaultFieldTypes(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		schemas:    make(map[reflect.Type]mapping.Schema),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Configure registers m as the map for entity type T. A second map for the
// same type is ignored.
func Configure[T any](db *Database, m *mapping.EntityMap[T]) error {
	return db.configure(m)
}

func (db *Database) configure(s mapping.Schema) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.initialized {
		return errors.ErrAlreadyInitialized
	}
	typ := s.EntityType()
	if _, exists := db.schemas[typ]; exists {
		db.logger.Debug("entity map already configured", "type", typ.String(), "table", s.Table())
		return nil
	}
	db.schemas[typ] = s
	db.order = append(db.order, typ)
	return nil
}

// Initialize creates the table of every configured map and seals the maps.
// It succeeds at most once.
func (db *Database) Initialize(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.initialized {
		return errors.ErrAlreadyInitialized
	}
	specs := make([]datastore.TableSpec, 0, len(db.order))
	names := make(map[string]reflect.Type, len(db.order))
	for _, typ := range db.order {
		s := db.schemas[typ]
		spec := datastore.TableSpec{
			Name:       s.Table(),
			Columns:    s.Columns(),
			FieldTypes: db.fieldTypes,
		}
		if err := datastore.CheckSpec(spec); err != nil {
			return fmt.Errorf("invalid table %q for %s: %w", spec.Name, typ, err)
		}
		if other, taken := names[spec.Name]; taken {
			return errors.NewValidationError("table", fmt.Sprintf("table %q mapped by both %s and %s", spec.Name, other, typ))
		}
		names[spec.Name] = typ
		specs = append(specs, spec)
	}

	created := make([]string, 0, len(specs))
	for i, spec := range specs {
		if err := db.engine.CreateTable(ctx, spec); err != nil {
			db.dropTables(ctx, created)
			return fmt.Errorf("failed to create table %q for %s: %w", spec.Name, db.order[i], err)
		}
		created = append(created, spec.Name)
		db.logger.Debug("table created", "table", spec.Name, "type", db.order[i].String(), "columns", len(spec.Columns))
	}
	for _, s := range db.schemas {
		s.Seal()
	}
	db.initialized = true
	db.logger.Info("database initialized", "tables", len(db.order))
	return nil
}

// tableDropper is implemented by engines that can remove a table, which
// lets a failed Initialize be retried.
type tableDropper interface {
	DropTable(ctx context.Context, table string) error
}

func (db *Database) dropTables(ctx context.Context, tables []string) {
	dropper, ok := db.engine.(tableDropper)
	if !ok {
		return
	}
	for _, name := range tables {
		if err := dropper.DropTable(ctx, name); err != nil {
			db.logger.Warn("failed to drop table after initialize error", "table", name, "error", err)
		}
	}
}

func (db *Database) Initialized() bool {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.initialized
}

// Engine returns the storage engine backing the database.
func (db *Database) Engine() datastore.Engine { return db.engine }

// FieldTypes returns the registry shared by every table of the database.
func (db *Database) FieldTypes() *registry.FieldTypes { return db.fieldTypes }

// Schemas lists the configured maps in configuration order.
func (db *Database) Schemas() []mapping.Schema {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]mapping.Schema, 0, len(db.order))
	for _, typ := range db.order {
		out = append(out, db.schemas[typ])
	}
	return out
}

// NewSession opens a session on an initialized database.
func (db *Database) NewSession() (*Session, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if !db.initialized {
		return nil, errors.ErrNotInitialized
	}
	return newSession(db), nil
}

// LoadRecord reads the row keyed by id from the table of entityType. A
// missing row returns (nil, false, nil).
func (db *Database) LoadRecord(ctx context.Context, id sm.Value, entityType reflect.Type) (*sm.Record, bool, error) {
	s, err := db.schema(entityType)
	if err != nil {
		return nil, false, err
	}
	cols, err := db.engine.Columns(ctx, s.Table())
	if err != nil {
		return nil, false, err
	}
	row, found, err := db.engine.Get(ctx, s.Table(), id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s %s: %w", entityType, id, err)
	}
	if !found {
		return nil, false, nil
	}
	return sm.RecordFromRow(cols, row), true, nil
}

// SaveRecord upserts rec into the table of entityType and writes the stored
// values, generated keys included, back into rec.
func (db *Database) SaveRecord(ctx context.Context, rec *sm.Record, entityType reflect.Type) error {
	s, err := db.schema(entityType)
	if err != nil {
		return err
	}
	cols, err := db.engine.Columns(ctx, s.Table())
	if err != nil {
		return err
	}
	row, err := rec.ToRow(cols)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", entityType, err)
	}
	stored, err := db.engine.Upsert(ctx, s.Table(), row)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", entityType, err)
	}
	for i, c := range cols {
		rec.Set(c.Name, stored[i])
	}
	return nil
}

// DeleteRecord removes the row keyed by id from the table of entityType.
func (db *Database) DeleteRecord(ctx context.Context, id sm.Value, entityType reflect.Type) error {
	s, err := db.schema(entityType)
	if err != nil {
		return err
	}
	if err := db.engine.Delete(ctx, s.Table(), id); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", entityType, id, err)
	}
	return nil
}

func (db *Database) schema(entityType reflect.Type) (mapping.Schema, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if !db.initialized {
		return nil, errors.ErrNotInitialized
	}
	s, ok := db.schemas[entityType]
	if !ok {
		return nil, errors.NewTableNotFoundError(entityType.String())
	}
	return s, nil
}
