/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dorm_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dorm"
	"github.com/suparena/dorm/datastore"
	"github.com/suparena/dorm/datastore/memory"
	"github.com/suparena/dorm/datastore/testmodels"
	"github.com/suparena/dorm/errors"
	"github.com/suparena/dorm/mapping"
	"github.com/suparena/dorm/registry"
	sm "github.com/suparena/dorm/storagemodels"
)

var personType = reflect.TypeOf(testmodels.Person{})

func newPersonDB(t *testing.T) (*dorm.Database, *memory.Engine, *dorm.Session) {
	t.Helper()
	engine := memory.New()
	db := dorm.New(engine)
	require.NoError(t, dorm.Configure(db, testmodels.PersonMap()))
	require.NoError(t, db.Initialize(context.Background()))
	s, err := db.NewSession()
	require.NoError(t, err)
	return db, engine, s
}

func TestPersonScenario(t *testing.T) {
	ctx := context.Background()
	_, _, s := newPersonDB(t)

	p, err := dorm.Load[testmodels.Person](ctx, s, 1)
	require.NoError(t, err)
	require.Nil(t, p)

	john := testmodels.Person{Name: "John Doe", Age: 30}
	require.NoError(t, dorm.Save(ctx, s, &john))
	require.Equal(t, 1, john.ID)

	loaded, err := dorm.Load[testmodels.Person](ctx, s, 1)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, "John Doe", loaded.Name)
	require.Equal(t, 30, loaded.Age)

	jane := testmodels.Person{Name: "Jane", Age: 22}
	require.NoError(t, dorm.Save(ctx, s, &jane))
	require.Equal(t, 2, jane.ID)

	again, err := dorm.Load[testmodels.Person](ctx, s, 1)
	require.NoError(t, err)
	require.Equal(t, &testmodels.Person{ID: 1, Name: "John Doe", Age: 30}, again)
}

func TestSaveOverwritesInPlace(t *testing.T) {
	ctx := context.Background()
	_, engine, s := newPersonDB(t)

	p := testmodels.Person{Name: "John", Age: 30}
	require.NoError(t, dorm.Save(ctx, s, &p))
	require.Equal(t, 1, engine.Count("person"))

	p.Age = 31
	require.NoError(t, dorm.Save(ctx, s, &p))
	require.NoError(t, dorm.Save(ctx, s, &p))
	require.Equal(t, 1, engine.Count("person"))
	require.Equal(t, 1, p.ID)

	loaded, err := dorm.Load[testmodels.Person](ctx, s, p.ID)
	require.NoError(t, err)
	require.Equal(t, 31, loaded.Age)
}

func TestGeneratedIDsIncrease(t *testing.T) {
	ctx := context.Background()
	_, _, s := newPersonDB(t)

	last := 0
	for i := 0; i < 10; i++ {
		p := testmodels.Person{Name: "p", Age: i}
		require.NoError(t, dorm.Save(ctx, s, &p))
		require.Greater(t, p.ID, last)
		last = p.ID
	}

	require.NoError(t, dorm.Delete[testmodels.Person](ctx, s, last))
	p := testmodels.Person{Name: "after delete"}
	require.NoError(t, dorm.Save(ctx, s, &p))
	require.Greater(t, p.ID, last)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	ft := registry.DefaultFieldTypes()
	ft.Register(sm.KindDateTime)
	db := dorm.New(memory.New(), dorm.WithFieldTypes(ft))
	require.NoError(t, dorm.Configure(db, testmodels.RatingSystemMap()))
	require.NoError(t, db.Initialize(ctx))
	s, err := db.NewSession()
	require.NoError(t, err)

	ct := strfmt.DateTime(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	rs := testmodels.RatingSystem{
		ID:          "TTOakville",
		Name:        "Oakville Table Tennis Ranking System",
		Description: "",
		SiteURL:     "https://example.com",
		CreatedAt:   ct,
		UpdatedAt:   ct,
	}
	require.NoError(t, dorm.Save(ctx, s, &rs))

	loaded, err := dorm.Load[testmodels.RatingSystem](ctx, s, "TTOakville")
	require.NoError(t, err)
	require.Equal(t, &rs, loaded)
}

func TestCompositeKeyRejected(t *testing.T) {
	ctx := context.Background()
	db := dorm.New(memory.New())
	require.NoError(t, dorm.Configure(db, testmodels.OrderLineMap()))
	require.NoError(t, db.Initialize(ctx))
	s, err := db.NewSession()
	require.NoError(t, err)

	_, err = dorm.Load[testmodels.OrderLine](ctx, s, 1)
	require.True(t, errors.IsCompositeKeyUnsupported(err))

	line := testmodels.OrderLine{OrderID: 1, Line: 1, Quantity: 3}
	err = dorm.Save(ctx, s, &line)
	require.True(t, errors.IsCompositeKeyUnsupported(err))
}

func TestDatabaseLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("SessionBeforeInitialize", func(t *testing.T) {
		db := dorm.New(memory.New())
		_, err := db.NewSession()
		require.ErrorIs(t, err, errors.ErrNotInitialized)

		_, _, err = db.LoadRecord(ctx, sm.IntValue(1), personType)
		require.ErrorIs(t, err, errors.ErrNotInitialized)
	})

	t.Run("InitializeTwice", func(t *testing.T) {
		db := dorm.New(memory.New())
		require.NoError(t, db.Initialize(ctx))
		require.ErrorIs(t, db.Initialize(ctx), errors.ErrAlreadyInitialized)
		require.True(t, db.Initialized())
	})

	t.Run("ConfigureAfterInitialize", func(t *testing.T) {
		db := dorm.New(memory.New())
		require.NoError(t, db.Initialize(ctx))
		err := dorm.Configure(db, testmodels.PersonMap())
		require.ErrorIs(t, err, errors.ErrAlreadyInitialized)
	})

	t.Run("FirstMapWins", func(t *testing.T) {
		engine := memory.New()
		db := dorm.New(engine)
		first := testmodels.PersonMap()
		second := mapping.New[testmodels.Person]("people")
		second.ID("id", mapping.Ref(func(p *testmodels.Person) *int { return &p.ID })).Generated(true)

		require.NoError(t, dorm.Configure(db, first))
		require.NoError(t, dorm.Configure(db, second))
		require.NoError(t, db.Initialize(ctx))

		require.Equal(t, []string{"person"}, engine.Tables())
		require.Len(t, db.Schemas(), 1)
		require.True(t, first.Sealed())
		require.False(t, second.Sealed())
	})

	t.Run("UnconfiguredType", func(t *testing.T) {
		_, _, s := newPersonDB(t)
		_, err := dorm.Load[testmodels.OrderLine](ctx, s, 1)
		require.True(t, errors.IsTableNotFound(err))
	})

	t.Run("SealedMapPanics", func(t *testing.T) {
		m := testmodels.PersonMap()
		db := dorm.New(memory.New())
		require.NoError(t, dorm.Configure(db, m))
		require.NoError(t, db.Initialize(ctx))
		require.Panics(t, func() {
			m.Field("email", mapping.Ref(func(p *testmodels.Person) *string { return &p.Name }))
		})
	})
}

type badKey struct {
	Key string
}

func TestInitializeFailureLeavesNoTables(t *testing.T) {
	ctx := context.Background()
	engine := memory.New()
	db := dorm.New(engine)

	bad := mapping.New[badKey]("bad")
	bad.ID("key", mapping.Ref(func(b *badKey) *string { return &b.Key })).Generated(true)
	require.NoError(t, dorm.Configure(db, testmodels.PersonMap()))
	require.NoError(t, dorm.Configure(db, bad))

	err := db.Initialize(ctx)
	require.True(t, errors.IsValidationError(err))
	require.Empty(t, engine.Tables())
	require.False(t, db.Initialized())

	err = db.Initialize(ctx)
	require.True(t, errors.IsValidationError(err))
	require.Empty(t, engine.Tables())
}

func TestInitializeRollsBackCreatedTables(t *testing.T) {
	ctx := context.Background()
	engine := memory.New()
	ft := registry.DefaultFieldTypes()
	ft.Register(sm.KindDateTime)
	db := dorm.New(engine, dorm.WithFieldTypes(ft))
	require.NoError(t, dorm.Configure(db, testmodels.RatingSystemMap()))
	require.NoError(t, dorm.Configure(db, testmodels.PersonMap()))

	// An existing "person" table makes the second CreateTable fail.
	squatter := mapping.New[badKey]("person")
	squatter.ID("key", mapping.Ref(func(b *badKey) *string { return &b.Key }))
	require.NoError(t, engine.CreateTable(ctx, datastore.TableSpec{
		Name: "person", Columns: squatter.Columns(), FieldTypes: ft,
	}))

	require.Error(t, db.Initialize(ctx))
	require.Equal(t, []string{"person"}, engine.Tables())

	require.NoError(t, engine.DropTable(ctx, "person"))
	require.NoError(t, db.Initialize(ctx))
	require.Equal(t, []string{"person", "rating_system"}, engine.Tables())
}

func TestInitializeRejectsSharedTableName(t *testing.T) {
	ctx := context.Background()
	engine := memory.New()
	db := dorm.New(engine)

	other := mapping.New[badKey]("person")
	other.ID("key", mapping.Ref(func(b *badKey) *string { return &b.Key }))
	require.NoError(t, dorm.Configure(db, testmodels.PersonMap()))
	require.NoError(t, dorm.Configure(db, other))

	require.True(t, errors.IsValidationError(db.Initialize(ctx)))
	require.Empty(t, engine.Tables())
}

func TestRecordOperations(t *testing.T) {
	ctx := context.Background()
	db, _, _ := newPersonDB(t)

	rec := sm.NewRecord()
	rec.Set("id", sm.IntValue(0))
	rec.Set("name", sm.StringValue("John"))
	rec.Set("age", sm.IntValue(40))
	require.NoError(t, db.SaveRecord(ctx, rec, personType))

	id, err := rec.Get("id")
	require.NoError(t, err)
	require.Equal(t, sm.IntValue(1), id)

	loaded, found, err := db.LoadRecord(ctx, id, personType)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []string{"age", "id", "name"}, loaded.Names())

	_, found, err = db.LoadRecord(ctx, sm.IntValue(2), personType)
	require.NoError(t, err)
	require.False(t, found)

	partial := sm.NewRecord()
	partial.Set("name", sm.StringValue("no id"))
	err = db.SaveRecord(ctx, partial, personType)
	require.True(t, errors.IsColumnNotFound(err))

	require.NoError(t, db.DeleteRecord(ctx, id, personType))
	require.True(t, errors.IsNotFound(db.DeleteRecord(ctx, id, personType)))
}

func TestSaveNilEntity(t *testing.T) {
	_, _, s := newPersonDB(t)
	err := dorm.Save[testmodels.Person](context.Background(), s, nil)
	require.True(t, errors.IsValidationError(err))
}

func TestEngineFailurePropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.NewValidationError("engine", "unavailable")
	engine := memory.New().WithUpsertError(boom)
	db := dorm.New(engine)
	require.NoError(t, dorm.Configure(db, testmodels.PersonMap()))
	require.NoError(t, db.Initialize(ctx))
	s, err := db.NewSession()
	require.NoError(t, err)

	p := testmodels.Person{Name: "John"}
	err = dorm.Save(ctx, s, &p)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, p.ID)
}
