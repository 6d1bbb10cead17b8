/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/suparena/dorm"
	"github.com/suparena/dorm/config"
	"github.com/suparena/dorm/datastore/testmodels"
)

func newDemoCommand(out, errOut io.Writer, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Save and load Person entities on the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, closer, err := config.NewLogger(cfg.Log, errOut)
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			db, err := config.OpenDatabase(ctx, cfg, logger)
			if err != nil {
				return err
			}
			logger.Info("running demo", "backend", cfg.Backend)
			return runDemo(ctx, out, db)
		},
	}
}

func runDemo(ctx context.Context, out io.Writer, db *dorm.Database) error {
	if err := dorm.Configure(db, testmodels.PersonMap()); err != nil {
		return err
	}
	if err := db.Initialize(ctx); err != nil {
		return err
	}
	s, err := db.NewSession()
	if err != nil {
		return err
	}
	people := dorm.NewRepository[testmodels.Person, int](s)

	john := testmodels.Person{Name: "John Doe", Age: 30}
	if err := people.Save(ctx, &john); err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %s (age %d) as id %d\n", john.Name, john.Age, john.ID)

	jane := testmodels.Person{Name: "Jane", Age: 22}
	if err := people.Save(ctx, &jane); err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %s (age %d) as id %d\n", jane.Name, jane.Age, jane.ID)

	for _, id := range []int{john.ID, jane.ID} {
		p, err := people.Load(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("person %d not found after save", id)
		}
		fmt.Fprintf(out, "loaded id %d: %s (age %d)\n", p.ID, p.Name, p.Age)
	}
	return nil
}
