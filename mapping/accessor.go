/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"github.com/suparena/dorm/errors"
	sm "github.com/suparena/dorm/storagemodels"
)

// Accessor reads and writes one entity field as an erased value. Accessors
// are built once per column and invoked for every load and save.
type Accessor[T any] interface {
	// Kind is the declared type of the field.
	Kind() sm.Kind
	// Get erases the field of entity.
	Get(entity *T) sm.Value
	// Set casts v to the field type and stores it in entity.
	Set(entity *T, v sm.Value) error
}

type fieldRef[T any, F sm.Scalar] struct {
	ref func(*T) *F
}

// Ref builds an accessor from a function that addresses a field:
//
//	mapping.Ref(func(p *Person) *string { return &p.Name })
func Ref[T any, F sm.Scalar](ref func(*T) *F) Accessor[T] {
	if ref == nil {
		panic("mapping: nil field reference")
	}
	return fieldRef[T, F]{ref: ref}
}

func (f fieldRef[T, F]) Kind() sm.Kind { return sm.KindOf[F]() }

func (f fieldRef[T, F]) Get(entity *T) sm.Value {
	return sm.ValueOf(*f.ref(entity))
}

func (f fieldRef[T, F]) Set(entity *T, v sm.Value) error {
	typed, ok := sm.As[F](v)
	if !ok {
		return errors.NewTypeMismatchError("", f.Kind(), v.Kind())
	}
	*f.ref(entity) = typed
	return nil
}

type property[T any, F sm.Scalar] struct {
	get func(*T) F
	set func(*T, F)
}

// Property builds an accessor from a getter and setter pair, for entities
// that keep their fields unexported. UpdateEntity stages changes on a
// shallow copy of the entity, so a setter that writes through a pointer,
// map or slice field mutates shared state even when a later column fails.
func Property[T any, F sm.Scalar](get func(*T) F, set func(*T, F)) Accessor[T] {
	if get == nil || set == nil {
		panic("mapping: property needs both a getter and a setter")
	}
	return property[T, F]{get: get, set: set}
}

func (p property[T, F]) Kind() sm.Kind { return sm.KindOf[F]() }

func (p property[T, F]) Get(entity *T) sm.Value {
	return sm.ValueOf(p.get(entity))
}

func (p property[T, F]) Set(entity *T, v sm.Value) error {
	typed, ok := sm.As[F](v)
	if !ok {
		return errors.NewTypeMismatchError("", p.Kind(), v.Kind())
	}
	p.set(entity, typed)
	return nil
}
