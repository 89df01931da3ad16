/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"os/signal"
	"syscall"

	"github.com/josephgoksu/taskvoice/internal/actions"
	"github.com/josephgoksu/taskvoice/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task actions over HTTP",
	Long: `Start an HTTP endpoint for voice and chat clients:

  GET  /healthz           liveness
  GET  /v1/actions        action catalogue
  POST /v1/actions/:name  invoke add_task, list_tasks or complete_task`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := appConfig.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return withSurface(func(surface *actions.Surface) error {
			srv := server.New(server.Config{
				Addr:           addr,
				AllowedOrigins: appConfig.Server.AllowedOrigins,
				Version:        GetVersion(),
			}, surface, appLogger())
			return srv.Run(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}
