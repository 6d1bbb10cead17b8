/*
Package dorm is a small object-relational mapping layer. Typed entities are
rebuilt from, and persisted to, a storage engine without the entity knowing
its column names, storage representation or table layout.

The library follows a configure → initialize → session workflow:
  - Configure: describe each entity type with a mapping.EntityMap
  - Initialize: create one table per map; the maps are sealed
  - Session: load, save and delete typed entities

Key Features:
  - Type-safe operations using Go generics
  - Storage engines for memory and DynamoDB behind datastore.Engine
  - Engine-assigned, strictly increasing integer keys
  - Per-database registry of comparable field types
  - Semantic error types for better error handling

Basic Usage:

	m := mapping.New[Person]("person")
	m.ID("id", mapping.Ref(func(p *Person) *int { return &p.ID })).Generated(true)
	m.Field("name", mapping.Ref(func(p *Person) *string { return &p.Name }))

	db := dorm.New(memory.New())
	_ = dorm.Configure(db, m)
	_ = db.Initialize(ctx)

	s, _ := db.NewSession()
	p := Person{Name: "John Doe"}
	err := dorm.Save(ctx, s, &p) // p.ID is now 1
	loaded, err := dorm.Load[Person](ctx, s, 1)

Composite keys, queries and transactions are not supported.
*/
package dorm
