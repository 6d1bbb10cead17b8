/*
Package errors provides semantic error types for dorm.

The package defines the failure modes of mapping and storage with specific
types that can be checked using the standard errors.Is() function or the
provided helper functions.

Common Errors:

	var (
	    ErrTypeMismatch            = errors.New("type mismatch")
	    ErrUnsupportedType         = errors.New("unsupported field type")
	    ErrColumnNotFound          = errors.New("column not found")
	    ErrTableNotFound           = errors.New("table not found")
	    ErrCompositeKeyUnsupported = errors.New("composite keys not supported")
	)

Usage:

	person, err := dorm.Load[Person](ctx, session, 1)
	if err != nil {
	    if errors.IsTypeMismatch(err) {
	        // the stored row no longer matches the entity map
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewColumnNotFoundError("email")
	err := errors.NewCompositeKeyError("order_line", 2)

None of these errors are retried internally. They are returned synchronously
and support wrapping with %w.
*/
package errors
