package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize taskboard storage",
		Long:  "Create the configuration and data directories, then initialize the storage backend.",
		Args:  checkArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			// config.yaml was created by load; attach once to create the schema.
			backend, _, err := o.attachBackend(cmd.Context())
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			if err := backend.Detach(); err != nil {
				return fmt.Errorf("init: finalize storage: %w", err)
			}

			dataDir, err := o.resolveDataDir()
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}

			if o.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"config_dir": o.resolvedConfigDir,
					"data_dir":   dataDir,
					"backend":    o.cfg.GetString(cfgKeyBackend),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "taskboard initialized successfully")
			fmt.Fprintln(out, "  config:", o.resolvedConfigDir)
			fmt.Fprintln(out, "  data:  ", dataDir)
			return nil
		},
	}
}
