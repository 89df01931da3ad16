package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/josephgoksu/taskvoice/internal/actions"
	"github.com/josephgoksu/taskvoice/internal/config"
	"github.com/josephgoksu/taskvoice/internal/ui"
	"github.com/josephgoksu/taskvoice/models"
	"github.com/josephgoksu/taskvoice/store"
	"github.com/josephgoksu/taskvoice/types"
	"github.com/spf13/cobra"
)

var (
	listJSON    bool
	listAllOpen bool
	listWatch   bool
)

// watchDebounce coalesces bursts of write and rename events from one save.
const watchDebounce = 150 * time.Millisecond

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List pending tasks",
	Long: `List pending tasks in the order they were added. By default at most 10 are
shown, the same view an agent gets from list_tasks; use --all-open for every
pending task. With --watch the list is redrawn whenever the task file changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()
		surface := actions.NewSurface(s, appLogger())

		if err := renderList(cmd, s, surface); err != nil {
			return err
		}
		if !listWatch {
			return nil
		}
		if appConfig.Data.Backend == store.BackendSQLite {
			return fmt.Errorf("--watch is only supported for the file backend")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return watchTaskFile(ctx, config.DataPath(appConfig), func() error {
			if ui.IsInteractive() {
				fmt.Fprint(cmd.OutOrStdout(), "\033[H\033[2J")
			}
			return renderList(cmd, s, surface)
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print tasks as JSON")
	listCmd.Flags().BoolVarP(&listAllOpen, "all-open", "a", false, "show every pending task, not just the first 10")
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "redraw when the task file changes")
}

func renderList(cmd *cobra.Command, s store.TaskStore, surface *actions.Surface) error {
	var tasks []models.Task
	if listAllOpen {
		open, err := s.ListOpen()
		if err != nil {
			return err
		}
		tasks = open
	} else {
		res, err := surface.ListTasks(cmd.Context(), types.ListTasksParams{})
		if err != nil {
			return err
		}
		tasks = res.Tasks
	}

	if listJSON {
		return writeJSON(cmd, types.ListTasksResult{Tasks: tasks})
	}
	ui.RenderTaskList(cmd.OutOrStdout(), tasks, ui.TerminalWidth(100))
	return nil
}

// watchTaskFile calls onChange after the file at path changes, until ctx
// is done.
func watchTaskFile(ctx context.Context, path string, onChange func() error) error {
	watcher, err := newTaskFileWatcher(path)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()
	return runTaskFileWatch(ctx, watcher, path, onChange)
}

// newTaskFileWatcher watches the parent directory of path, since saves
// replace the file by rename.
func newTaskFileWatcher(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return watcher, nil
}

// runTaskFileWatch debounces events for path and ignores its neighbours,
// such as the lock file and save temp files.
func runTaskFileWatch(ctx context.Context, watcher *fsnotify.Watcher, path string, onChange func() error) error {
	target := filepath.Clean(path)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			debounce = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			appLogger().Warn("file watcher error", "err", err)
		case <-debounce:
			debounce = nil
			if err := onChange(); err != nil {
				appLogger().Error("refresh task list", "err", err)
			}
		}
	}
}
