/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sort"
	"sync"

	"github.com/suparena/dorm/errors"
	"github.com/suparena/dorm/storagemodels"
)

// Comparator tests two erased values for equality.
type Comparator func(lhs, rhs storagemodels.Value) bool

// FieldTypes is the set of kinds a database can compare. It is owned by one
// Database and handed to the tables that need key equality.
type FieldTypes struct {
	mu          sync.RWMutex
	comparators map[storagemodels.Kind]Comparator
}

// NewFieldTypes creates a registry holding the given kinds.
func NewFieldTypes(kinds ...storagemodels.Kind) *FieldTypes {
	ft := &FieldTypes{comparators: make(map[storagemodels.Kind]Comparator, len(kinds))}
	for _, k := range kinds {
		ft.Register(k)
	}
	return ft
}

// DefaultFieldTypes returns a registry seeded with int and string.
func DefaultFieldTypes() *FieldTypes {
	return NewFieldTypes(storagemodels.KindInt, storagemodels.KindString)
}

// Register adds kind to the registry. Registering a kind twice keeps the
// first comparator. It panics for the null kind.
func (ft *FieldTypes) Register(kind storagemodels.Kind) {
	if kind == storagemodels.KindNull {
		panic("field types: the null kind cannot be registered")
	}

	ft.mu.Lock()
	defer ft.mu.Unlock()
	if _, exists := ft.comparators[kind]; exists {
		return
	}
	ft.comparators[kind] = equalOf(kind)
}

// Comparator returns the equality function for kind.
func (ft *FieldTypes) Comparator(kind storagemodels.Kind) (Comparator, error) {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	cmp, ok := ft.comparators[kind]
	if !ok {
		return nil, errors.NewUnsupportedTypeError(kind)
	}
	return cmp, nil
}

// Equal compares lhs and rhs with the comparator registered for kind.
func (ft *FieldTypes) Equal(kind storagemodels.Kind, lhs, rhs storagemodels.Value) (bool, error) {
	cmp, err := ft.Comparator(kind)
	if err != nil {
		return false, err
	}
	return cmp(lhs, rhs), nil
}

func (ft *FieldTypes) Supports(kind storagemodels.Kind) bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	_, ok := ft.comparators[kind]
	return ok
}

// Kinds lists the registered kinds in ascending order.
func (ft *FieldTypes) Kinds() []storagemodels.Kind {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	kinds := make([]storagemodels.Kind, 0, len(ft.comparators))
	for k := range ft.comparators {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// equalOf builds the comparator for one kind: two nulls are equal, otherwise
// both sides must carry exactly kind and equal payloads.
func equalOf(kind storagemodels.Kind) Comparator {
	return func(lhs, rhs storagemodels.Value) bool {
		if lhs.IsNull() && rhs.IsNull() {
			return true
		}
		if lhs.Kind() != kind || rhs.Kind() != kind {
			return false
		}
		return lhs.Same(rhs)
	}
}
