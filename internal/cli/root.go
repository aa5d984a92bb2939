// Package cli implements the taskboard command-line interface: server
// administration (init, serve, import) and client commands that drive a
// running server through client.Store.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/taskboard/internal/paths"
	"github.com/mesh-intelligence/taskboard/pkg/taskboard"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// options holds global flag values and the loaded configuration shared by
// all subcommands.
type options struct {
	configDir string
	dataDir   string
	serverURL string
	jsonMode  bool

	// Set by PersistentPreRunE.
	resolvedConfigDir string
	cfg               *viper.Viper
}

// NewRootCmd creates the top-level "taskboard" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "taskboard",
		Short: "A small task tracker with a REST server and a CLI client",
		Long: `taskboard stores tasks with a title, a description and a status
(To Do, In Progress, Completed). "serve" runs the REST server; list, show,
create, update, delete and filter talk to a running server.`,
		Version:       taskboard.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return o.load()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return userError{err}
	})

	root.PersistentFlags().StringVar(&o.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&o.dataDir, "data-dir", "", "data directory (default: $(CWD)/.taskboard-db)")
	root.PersistentFlags().StringVar(&o.serverURL, "server", "", "server URL for client commands (default: server_url from config.yaml)")
	root.PersistentFlags().BoolVar(&o.jsonMode, "json", false, "output as JSON")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(o))
	root.AddCommand(newServeCmd(o))
	root.AddCommand(newImportCmd(o))
	root.AddCommand(newListCmd(o))
	root.AddCommand(newShowCmd(o))
	root.AddCommand(newCreateCmd(o))
	root.AddCommand(newUpdateCmd(o))
	root.AddCommand(newDeleteCmd(o))
	root.AddCommand(newFilterCmd(o))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "taskboard:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// load resolves the configuration directory and reads config.yaml.
func (o *options) load() error {
	configDir, err := paths.ResolveConfigDir(o.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	o.resolvedConfigDir = configDir
	o.cfg = cfg
	return nil
}

// userError marks a failure caused by the invocation rather than the system.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

// exitCode maps an error to exitUserError or exitSysError.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ue userError
	switch {
	case errors.As(err, &ue),
		errors.Is(err, types.ErrValidation),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID):
		return exitUserError
	default:
		return exitSysError
	}
}

// checkArgs wraps a positional-argument validator so its failures count as
// user errors.
func checkArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return userError{err}
		}
		return nil
	}
}
