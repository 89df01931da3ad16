package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/josephgoksu/taskvoice/internal/actions"
	"github.com/josephgoksu/taskvoice/internal/ui"
	"github.com/josephgoksu/taskvoice/models"
	"github.com/josephgoksu/taskvoice/types"
	"github.com/spf13/cobra"
)

var (
	doneYes  bool
	doneJSON bool
)

// Terminal interaction, replaced in tests.
var (
	isInteractive = ui.IsInteractive
	selectTask    = ui.SelectTask
	confirm       = ui.Confirm
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:     "done [id or text]",
	Aliases: []string{"complete", "d"},
	Short:   "Mark a task as done",
	Long: `Mark the first task whose id equals the query, or whose text contains it
(case-insensitive), as done.

Without a query an interactive picker lists pending tasks. In a terminal the
match is confirmed before it is completed, including a match that is not among
the first 10 pending tasks; pass --yes to skip the prompt.`,
	Example: `  taskvoice done milk
  taskvoice done 1712345678901 --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		interactive := isInteractive() && !doneYes && !doneJSON

		if query == "" && !interactive {
			return fmt.Errorf("a task id or text is required when not running interactively")
		}

		return withSurface(func(surface *actions.Surface) error {
			if interactive {
				picked, err := pickTask(cmd, surface, query)
				if errors.Is(err, ui.ErrCancelled) {
					fmt.Fprintln(cmd.OutOrStdout(), ui.StyleWarning.Render("Cancelled."))
					return nil
				}
				if errors.Is(err, ui.ErrNoTasks) {
					fmt.Fprintln(cmd.OutOrStdout(), "No pending tasks.")
					return nil
				}
				if err != nil {
					return err
				}
				if picked != nil {
					query = picked.IDString()
				}
			}

			res, err := surface.CompleteTask(cmd.Context(), types.CompleteTaskParams{Query: query})
			if err != nil {
				return err
			}
			if doneJSON {
				return writeJSON(cmd, res)
			}
			if !res.OK {
				fmt.Fprintln(cmd.OutOrStdout(), ui.StyleWarning.Render("No matching task found."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.StyleSuccess.Render(fmt.Sprintf("✅ Completed %q (ID: %d)", res.Task.Text, res.Task.ID)))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
	doneCmd.Flags().BoolVarP(&doneYes, "yes", "y", false, "complete without asking for confirmation")
	doneCmd.Flags().BoolVar(&doneJSON, "json", false, "print the result as JSON (implies --yes)")
}

// pickTask resolves the task to complete and asks for confirmation.
// A nil task with a nil error means no listed pending task matches query;
// the user has then confirmed completing the query as given.
func pickTask(cmd *cobra.Command, surface *actions.Surface, query string) (*models.Task, error) {
	res, err := surface.ListTasks(cmd.Context(), types.ListTasksParams{})
	if err != nil {
		return nil, err
	}

	var task models.Task
	if query == "" {
		task, err = selectTask(res.Tasks, "Which task is done")
		if err != nil {
			return nil, err
		}
	} else {
		q := models.NormalizeQuery(query)
		found := false
		for _, t := range res.Tasks {
			if t.Matches(q) {
				task, found = t, true
				break
			}
		}
		if !found {
			if err := confirm(fmt.Sprintf("Mark the first task matching %q as done", query)); err != nil {
				return nil, err
			}
			return nil, nil
		}
	}

	if err := confirm(fmt.Sprintf("Mark %q as done", task.Text)); err != nil {
		return nil, err
	}
	return &task, nil
}
