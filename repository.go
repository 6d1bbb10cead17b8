/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dorm

import (
	"context"

	sm "github.com/suparena/dorm/storagemodels"
)

// Repository is a stateless typed view of one entity type over a Session.
type Repository[T any, ID sm.Scalar] struct {
	session *Session
}

// NewRepository creates a repository for T keyed by ID.
func NewRepository[T any, ID sm.Scalar](s *Session) *Repository[T, ID] {
	return &Repository[T, ID]{session: s}
}

func (r *Repository[T, ID]) Load(ctx context.Context, id ID) (*T, error) {
	return Load[T](ctx, r.session, id)
}

func (r *Repository[T, ID]) Save(ctx context.Context, entity *T) error {
	return Save(ctx, r.session, entity)
}

func (r *Repository[T, ID]) Delete(ctx context.Context, id ID) error {
	return Delete[T](ctx, r.session, id)
}

// Exists reports whether a row keyed by id is stored.
func (r *Repository[T, ID]) Exists(ctx context.Context, id ID) (bool, error) {
	e, err := r.Load(ctx, id)
	if err != nil {
		return false, err
	}
	return e != nil, nil
}
