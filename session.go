/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dorm

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/suparena/dorm/errors"
	"github.com/suparena/dorm/mapping"
	sm "github.com/suparena/dorm/storagemodels"
)

// Session converts typed entities to and from records of its database.
// A session is cheap and must not outlive its database.
type Session struct {
	id     string
	db     *Database
	logger *slog.Logger
}

func newSession(db *Database) *Session {
	id := uuid.NewString()
	return &Session{
		id:     id,
		db:     db,
		logger: db.logger.With("session", id),
	}
}

// ID identifies the session in log output.
func (s *Session) ID() string { return s.id }

func (s *Session) Database() *Database { return s.db }

// Load returns the entity of type T keyed by id, or nil when no such row
// exists.
func Load[T any, ID sm.Scalar](ctx context.Context, s *Session, id ID) (*T, error) {
	m, err := entityMap[T](s)
	if err != nil {
		return nil, err
	}
	rec, found, err := s.db.LoadRecord(ctx, sm.ValueOf(id), m.EntityType())
	if err != nil {
		return nil, err
	}
	if !found {
		s.logger.Debug("entity not found", "table", m.Table(), "id", id)
		return nil, nil
	}
	return m.ToEntity(rec)
}

// Save upserts entity and refreshes it with the stored values, so a
// generated key is visible to the caller afterwards.
func Save[T any](ctx context.Context, s *Session, entity *T) error {
	if entity == nil {
		return errors.NewValidationError("entity", "must not be nil")
	}
	m, err := entityMap[T](s)
	if err != nil {
		return err
	}
	rec := m.ToRecord(entity)
	if err := s.db.SaveRecord(ctx, rec, m.EntityType()); err != nil {
		return err
	}
	if err := m.UpdateEntity(entity, rec); err != nil {
		return fmt.Errorf("failed to refresh %s: %w", m.EntityType(), err)
	}
	s.logger.Debug("entity saved", "table", m.Table())
	return nil
}

// Delete removes the entity of type T keyed by id.
func Delete[T any, ID sm.Scalar](ctx context.Context, s *Session, id ID) error {
	m, err := entityMap[T](s)
	if err != nil {
		return err
	}
	return s.db.DeleteRecord(ctx, sm.ValueOf(id), m.EntityType())
}

func entityMap[T any](s *Session) (*mapping.EntityMap[T], error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	schema, err := s.db.schema(typ)
	if err != nil {
		return nil, err
	}
	m, ok := schema.(*mapping.EntityMap[T])
	if !ok {
		return nil, fmt.Errorf("schema for %s is %T, not an entity map", typ, schema)
	}
	return m, nil
}
