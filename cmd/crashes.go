package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/josephgoksu/taskvoice/internal/logger"
	"github.com/josephgoksu/taskvoice/internal/ui"
	"github.com/spf13/cobra"
)

// crashesCmd represents the crashes command
var crashesCmd = &cobra.Command{
	Use:   "crashes",
	Short: "List crash logs written by earlier runs",
	Long: fmt.Sprintf(`List the crash logs kept under <rootDir>/%s, oldest first.
At most %d are kept. Attach the newest one when reporting a bug.`, logger.CrashLogDir, logger.MaxCrashLogs),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logs, err := logger.ListCrashLogs()
		if err != nil {
			return fmt.Errorf("list crash logs: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(logs) == 0 {
			fmt.Fprintln(out, ui.StyleSubtle.Render("No crash logs."))
			return nil
		}
		fmt.Fprintln(out, ui.StyleTitle.Render(fmt.Sprintf("Crash logs (%d)", len(logs))))
		for _, path := range logs {
			fmt.Fprintf(out, "  %s\n", filepath.ToSlash(path))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(crashesCmd)
}
