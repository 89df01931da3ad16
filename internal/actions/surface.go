// Package actions is the callable surface that agent layers use to manage
// the task list: add_task, list_tasks and complete_task.
package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/josephgoksu/taskvoice/internal/logger"
	"github.com/josephgoksu/taskvoice/models"
	"github.com/josephgoksu/taskvoice/store"
	"github.com/josephgoksu/taskvoice/types"
)

// ListTasksLimit caps how many open tasks list_tasks returns.
const ListTasksLimit = 10

// Surface translates structured action calls into store operations.
// It holds no state of its own; concurrent calls are serialized by the store.
type Surface struct {
	store store.TaskStore
	log   *log.Logger
}

// NewSurface returns a Surface backed by s. A nil logger discards output.
func NewSurface(s store.TaskStore, l *log.Logger) *Surface {
	if l == nil {
		l = logger.Discard()
	}
	return &Surface{store: s, log: l}
}

// AddTask creates a task and echoes what was stored.
func (a *Surface) AddTask(ctx context.Context, params types.AddTaskParams) (*types.AddTaskResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Text) == "" {
		return nil, &ArgumentError{Action: NameAddTask, Field: "text", Err: store.ErrEmptyText}
	}

	due := models.NormalizeDue(params.Due)
	id, err := a.store.Add(params.Text, due)
	if err != nil {
		return nil, fmt.Errorf("add task: %w", err)
	}
	a.log.Debug("task added", "id", id)
	return &types.AddTaskResult{ID: id, Text: strings.TrimSpace(params.Text), Due: due}, nil
}

// ListTasks returns the first ListTasksLimit open tasks in insertion order.
func (a *Surface) ListTasks(ctx context.Context, _ types.ListTasksParams) (*types.ListTasksResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	open, err := a.store.ListOpen()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if len(open) > ListTasksLimit {
		open = open[:ListTasksLimit]
	}
	if open == nil {
		open = []models.Task{}
	}
	a.log.Debug("tasks listed", "count", len(open))
	return &types.ListTasksResult{Tasks: open}, nil
}

// CompleteTask marks the first task matching the query as done. A miss is
// reported as OK=false, not as an error.
func (a *Surface) CompleteTask(ctx context.Context, params types.CompleteTaskParams) (*types.CompleteTaskResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := a.store.Complete(params.Query)
	if err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}
	if t == nil {
		a.log.Debug("no task matched", "query", params.Query)
		return &types.CompleteTaskResult{OK: false}, nil
	}
	a.log.Debug("task completed", "id", t.ID)
	return &types.CompleteTaskResult{OK: true, Task: t}, nil
}

// Invoke dispatches a call by action name with JSON-encoded arguments.
// Empty arguments are treated as an empty object.
func (a *Surface) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	logger.SetLastToolCall(name, string(args))

	switch name {
	case NameAddTask:
		var p types.AddTaskParams
		if err := decodeArgs(name, args, &p); err != nil {
			return nil, err
		}
		return a.AddTask(ctx, p)
	case NameListTasks:
		var p types.ListTasksParams
		if err := decodeArgs(name, args, &p); err != nil {
			return nil, err
		}
		return a.ListTasks(ctx, p)
	case NameCompleteTask:
		var p types.CompleteTaskParams
		if err := decodeArgs(name, args, &p); err != nil {
			return nil, err
		}
		return a.CompleteTask(ctx, p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}

func decodeArgs(action string, args json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &ArgumentError{Action: action, Field: typeErr.Field, Err: err}
		}
		return &ArgumentError{Action: action, Err: err}
	}
	return nil
}
