/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suparena/dorm/datastore/testmodels"
	"github.com/suparena/dorm/mapping"
)

func demoSchemas() []mapping.Schema {
	return []mapping.Schema{
		testmodels.PersonMap(),
		testmodels.RatingSystemMap(),
	}
}

func newSchemaCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the columns of the demo entity maps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range demoSchemas() {
				if err := writeSchema(out, s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func writeSchema(out io.Writer, s mapping.Schema) error {
	if _, err := fmt.Fprintf(out, "%s (%s)\n", s.Table(), s.EntityType()); err != nil {
		return err
	}
	for _, c := range s.Columns() {
		var flags []string
		if c.Key {
			flags = append(flags, "key")
		}
		if c.Generated {
			flags = append(flags, "generated")
		}
		line := fmt.Sprintf("  %-12s %-9s %s", c.Name, c.Kind, strings.Join(flags, ","))
		if _, err := fmt.Fprintln(out, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
