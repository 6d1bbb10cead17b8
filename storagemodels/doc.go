/*
Package storagemodels defines the data structures shared by the mapping layer
and the storage engines.

Key Types:

Value:
A closed sum type over the storable scalar kinds. The zero Value is null.

	v := storagemodels.ValueOf(30)          // KindInt
	age, ok := storagemodels.As[int](v)     // 30, true
	_, ok = storagemodels.As[string](v)     // "", false

Column and Row:
A table's schema is an ordered []Column; each stored Row holds one Value per
column in that order.

Record:
A transient name-keyed snapshot of one row, created fresh for every load or
save:

	rec := storagemodels.NewRecord()
	rec.Set("name", storagemodels.StringValue("John Doe"))
	v, err := rec.Get("name")

These types are independent of any entity type and of any storage backend.
*/
package storagemodels
