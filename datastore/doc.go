/*
Package datastore defines the storage engine contract used by dorm.

The main interface is Engine, which stores erased rows in named tables:

	type Engine interface {
	    CreateTable(ctx context.Context, spec TableSpec) error
	    Columns(ctx context.Context, table string) ([]storagemodels.Column, error)
	    Get(ctx context.Context, table string, key storagemodels.Value) (storagemodels.Row, bool, error)
	    Upsert(ctx context.Context, table string, row storagemodels.Row) (storagemodels.Row, error)
	    Delete(ctx context.Context, table string, key storagemodels.Value) error
	}

A row's identity is the value of its key column. Upsert decides between
insert and update purely from whether a row with that key already exists;
on insert a generated key column receives the next table-local id.

Implementations:
  - memory: in-memory reference engine, linear key scan
  - ddb: DynamoDB implementation using a single-table layout

Tables with more than one key column are rejected with
errors.ErrCompositeKeyUnsupported on every keyed operation.
*/
package datastore
