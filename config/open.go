/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/suparena/dorm"
	"github.com/suparena/dorm/datastore"
	"github.com/suparena/dorm/datastore/ddb"
	"github.com/suparena/dorm/datastore/memory"
)

// OpenEngine creates the storage engine selected by cfg.Backend.
func OpenEngine(ctx context.Context, cfg Config, logger *slog.Logger) (datastore.Engine, error) {
	switch cfg.Backend {
	case BackendMemory:
		return memory.New().WithLogger(logger), nil
	case BackendDynamoDB:
		engine, err := ddb.NewDynamodbEngine(ctx, ddb.Credentials{
			AccessKey: cfg.DynamoDB.AccessKey,
			SecretKey: cfg.DynamoDB.SecretKey,
			Region:    cfg.DynamoDB.Region,
			Endpoint:  cfg.DynamoDB.Endpoint,
		}, cfg.DynamoDB.Table)
		if err != nil {
			return nil, err
		}
		return engine.WithLogger(logger), nil
	}
	return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
}

// OpenDatabase creates an uninitialized database on the configured engine
// with the configured field types.
func OpenDatabase(ctx context.Context, cfg Config, logger *slog.Logger) (*dorm.Database, error) {
	ft, err := cfg.FieldTypeRegistry()
	if err != nil {
		return nil, err
	}
	engine, err := OpenEngine(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return dorm.New(engine, dorm.WithFieldTypes(ft), dorm.WithLogger(logger)), nil
}
