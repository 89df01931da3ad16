package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/josephgoksu/taskvoice/internal/actions"
	"github.com/josephgoksu/taskvoice/internal/ui"
	"github.com/josephgoksu/taskvoice/types"
	"github.com/spf13/cobra"
)

var (
	addDue  string
	addJSON bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:     "add [task text]",
	Aliases: []string{"a", "new"},
	Short:   "Add a task",
	Example: `  taskvoice add buy milk
  taskvoice add "call the plumber" --due 2025-09-20`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := types.AddTaskParams{Text: strings.Join(args, " ")}
		if cmd.Flags().Changed("due") {
			params.Due = &addDue
		}

		return withSurface(func(surface *actions.Surface) error {
			res, err := surface.AddTask(cmd.Context(), params)
			if err != nil {
				return err
			}
			if addJSON {
				return writeJSON(cmd, res)
			}
			msg := fmt.Sprintf("✅ Added %q (ID: %d)", res.Text, res.ID)
			if res.Due != nil {
				msg += fmt.Sprintf(", due %s", *res.Due)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.StyleSuccess.Render(msg))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "optional due date, free-form (e.g. 2025-09-20)")
	addCmd.Flags().BoolVar(&addJSON, "json", false, "print the result as JSON")
}

// writeJSON prints v as indented JSON on stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
