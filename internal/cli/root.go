/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/suparena/dorm"
	"github.com/suparena/dorm/config"
)

type globalOptions struct {
	configPath string
	envFile    string
}

func (g *globalOptions) load() (config.Config, error) {
	return config.Load(config.LoadOptions{
		ConfigPath: g.configPath,
		EnvFile:    g.envFile,
	})
}

// NewRootCommand builds the dorm command tree. Command output goes to out,
// errors and logs to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "dorm",
		Short:         "dorm entity mapping toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Path to a dotenv file")

	cmd.AddCommand(newVersionCommand(out))
	cmd.AddCommand(newSchemaCommand(out))
	cmd.AddCommand(newDemoCommand(out, errOut, opts))
	return cmd
}

func newVersionCommand(out io.Writer) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := dorm.GetVersionInfo()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			_, err := fmt.Fprintf(out, "version=%s commit=%s build_date=%s go=%s\n", info.Version, info.GitCommit, info.BuildDate, info.GoVersion)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version as JSON")
	return cmd
}
