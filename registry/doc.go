/*
Package registry holds the field type registry used for key equality.

A FieldTypes value records which scalar kinds a database can compare. It is
seeded with int and string and extended at startup:

	ft := registry.DefaultFieldTypes()
	ft.Register(storagemodels.KindDateTime)

	same, err := ft.Equal(storagemodels.KindInt, lhs, rhs)
	if errors.IsUnsupportedType(err) {
	    // the kind was never registered
	}

Two null values compare equal. A set value equals another only when both
carry exactly the registered kind and equal payloads.

There is no package-level registry: each Database owns one and passes it to
the tables it creates.
*/
package registry
