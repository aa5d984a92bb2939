package cli

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-kratos/kratos/v2"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskboard/internal/paths"
	"github.com/mesh-intelligence/taskboard/internal/server"
	"github.com/mesh-intelligence/taskboard/internal/tasks"
	"github.com/mesh-intelligence/taskboard/pkg/taskboard"
)

func newServeCmd(o *options) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the taskboard REST server",
		Long: `Serve the task routes over HTTP until interrupted:

  GET    /tasks
  GET    /tasks/{id}
  POST   /tasks
  PATCH  /tasks/{id}
  DELETE /tasks/{id}
  GET    /tasks/filter-by-status/{status}`,
		Args: checkArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = o.cfg.GetString(cfgKeyListen)
			}
			if o.cfg.GetString(cfgKeyLogLevel) != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			logger := o.logger(cmd.ErrOrStderr())

			backend, table, err := o.attachBackend(cmd.Context())
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer backend.Detach()

			srv := server.New(
				tasks.NewService(table, logger),
				server.WithAddress(listen),
				server.WithLogger(logger),
			)

			app := kratos.New(
				kratos.Context(cmd.Context()),
				kratos.Name(paths.AppName),
				kratos.Version(taskboard.Version),
				kratos.Logger(logger),
				kratos.Server(srv),
			)
			if err := app.Run(); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default: listen from config.yaml)")
	return cmd
}
