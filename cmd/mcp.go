/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"os/signal"
	"syscall"

	"github.com/josephgoksu/taskvoice/internal/actions"
	taskmcp "github.com/josephgoksu/taskvoice/internal/mcp"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the task actions as MCP tools over stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing add_task,
list_tasks and complete_task. Logs go to stderr so they never corrupt the
protocol stream.

Example client entry:
  {"command": "taskvoice", "args": ["mcp"]}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return withSurface(func(surface *actions.Surface) error {
			server := taskmcp.NewServer(surface, GetVersion(), appLogger())
			appLogger().Info("MCP server listening on stdio", "data", appConfig.Data.File)
			if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
