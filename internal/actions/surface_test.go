package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/josephgoksu/taskvoice/models"
	"github.com/josephgoksu/taskvoice/store"
	"github.com/josephgoksu/taskvoice/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSurface(t *testing.T) (*Surface, store.TaskStore) {
	t.Helper()
	base := time.Date(2025, 9, 20, 9, 0, 0, 0, time.UTC)
	n := 0
	clock := func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Millisecond)
	}
	s, err := store.NewFileTaskStore("/data/tasks.json", store.WithFs(afero.NewMemMapFs()), store.WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewSurface(s, nil), s
}

func strPtr(s string) *string { return &s }

func TestSurface_Scenario(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestSurface(t)

	milk, err := a.AddTask(ctx, types.AddTaskParams{Text: "  buy milk "})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", milk.Text)
	assert.Nil(t, milk.Due)

	dog, err := a.AddTask(ctx, types.AddTaskParams{Text: "walk dog", Due: strPtr("2025-09-21")})
	require.NoError(t, err)
	require.NotNil(t, dog.Due)
	assert.Equal(t, "2025-09-21", *dog.Due)
	assert.Greater(t, dog.ID, milk.ID)

	done, err := a.CompleteTask(ctx, types.CompleteTaskParams{Query: "MILK"})
	require.NoError(t, err)
	assert.True(t, done.OK)
	require.NotNil(t, done.Task)
	assert.Equal(t, milk.ID, done.Task.ID)
	assert.True(t, done.Task.Done)

	list, err := a.ListTasks(ctx, types.ListTasksParams{})
	require.NoError(t, err)
	require.Len(t, list.Tasks, 1)
	assert.Equal(t, "walk dog", list.Tasks[0].Text)
}

func TestSurface_AddTaskRejectsBlankText(t *testing.T) {
	a, s := newTestSurface(t)

	_, err := a.AddTask(context.Background(), types.AddTaskParams{Text: "   "})
	require.Error(t, err)
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "text", argErr.Field)
	assert.ErrorIs(t, err, store.ErrEmptyText)

	open, err := s.ListOpen()
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestSurface_AddTaskKeepsDueAsSupplied(t *testing.T) {
	a, s := newTestSurface(t)
	res, err := a.AddTask(context.Background(), types.AddTaskParams{Text: "call mum", Due: strPtr("")})
	require.NoError(t, err)
	require.NotNil(t, res.Due)
	assert.Equal(t, "", *res.Due)

	open, err := s.ListOpen()
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.NotNil(t, open[0].Due)
	assert.Equal(t, "", *open[0].Due)
}

func TestSurface_ListTasksTruncates(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestSurface(t)

	for i := 0; i < ListTasksLimit+5; i++ {
		_, err := a.AddTask(ctx, types.AddTaskParams{Text: fmt.Sprintf("task %02d", i)})
		require.NoError(t, err)
	}

	list, err := a.ListTasks(ctx, types.ListTasksParams{})
	require.NoError(t, err)
	require.Len(t, list.Tasks, ListTasksLimit)
	assert.Equal(t, "task 00", list.Tasks[0].Text)
	assert.Equal(t, "task 09", list.Tasks[ListTasksLimit-1].Text)
}

func TestSurface_ListTasksEmptyIsArray(t *testing.T) {
	a, _ := newTestSurface(t)
	list, err := a.ListTasks(context.Background(), types.ListTasksParams{})
	require.NoError(t, err)

	data, err := json.Marshal(list)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks":[]}`, string(data))
}

func TestSurface_CompleteOnEmptyStore(t *testing.T) {
	a, _ := newTestSurface(t)
	res, err := a.CompleteTask(context.Background(), types.CompleteTaskParams{Query: "anything"})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Nil(t, res.Task)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"task":null}`, string(data))
}

func TestSurface_CompleteTwiceByID(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestSurface(t)
	added, err := a.AddTask(ctx, types.AddTaskParams{Text: "water plants"})
	require.NoError(t, err)

	q := types.CompleteTaskParams{Query: models.Task{ID: added.ID}.IDString()}
	first, err := a.CompleteTask(ctx, q)
	require.NoError(t, err)
	second, err := a.CompleteTask(ctx, q)
	require.NoError(t, err)

	assert.True(t, second.OK)
	assert.Equal(t, first.Task, second.Task)
}

func TestSurface_CanceledContext(t *testing.T) {
	a, _ := newTestSurface(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.AddTask(ctx, types.AddTaskParams{Text: "never stored"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSurface_StorageErrorPropagates(t *testing.T) {
	_, s := newTestSurface(t)
	ro := NewSurface(readOnlyStore{s}, nil)

	_, err := ro.AddTask(context.Background(), types.AddTaskParams{Text: "x"})
	require.Error(t, err)
	assert.True(t, store.IsStorageError(err))
	assert.Equal(t, types.CodeStorage, Classify(err).Code)
}

type readOnlyStore struct{ store.TaskStore }

func (readOnlyStore) Add(string, *string) (int64, error) {
	return 0, &store.StorageError{Op: "write", Path: "tasks.json", Err: errors.New("read-only file system")}
}

func TestInvoke(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestSurface(t)

	out, err := a.Invoke(ctx, NameAddTask, json.RawMessage(`{"text":"buy milk","due":"friday"}`))
	require.NoError(t, err)
	added, ok := out.(*types.AddTaskResult)
	require.True(t, ok)
	assert.Equal(t, "buy milk", added.Text)

	out, err = a.Invoke(ctx, NameListTasks, nil)
	require.NoError(t, err)
	assert.Len(t, out.(*types.ListTasksResult).Tasks, 1)

	out, err = a.Invoke(ctx, NameCompleteTask, json.RawMessage(`{"query":"milk"}`))
	require.NoError(t, err)
	assert.True(t, out.(*types.CompleteTaskResult).OK)
}

func TestInvoke_Errors(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestSurface(t)

	tests := []struct {
		name     string
		action   string
		args     string
		wantCode string
	}{
		{"unknown action", "delete_task", `{}`, types.CodeUnknownAction},
		{"malformed json", NameAddTask, `{"text":`, types.CodeInvalidArgument},
		{"wrong type", NameCompleteTask, `{"query":42}`, types.CodeInvalidArgument},
		{"missing text", NameAddTask, `{}`, types.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Invoke(ctx, tt.action, json.RawMessage(tt.args))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, Classify(err).Code)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.Equal(t, types.CodeParse, Classify(fmt.Errorf("load: %w", &store.ParseError{Path: "x", Err: errors.New("bad")})).Code)
	assert.Equal(t, types.CodeInvalidArgument, Classify(store.ErrEmptyText).Code)
	assert.Equal(t, types.CodeInternal, Classify(errors.New("boom")).Code)

	pre := types.NewActionError(types.CodeStorage, "disk full", nil)
	assert.Same(t, pre, Classify(pre))
}

func TestClassify_WireCodes(t *testing.T) {
	storageErr := Classify(&store.StorageError{Op: "write", Path: "tasks.json", Err: errors.New("disk full")})
	assert.Equal(t, "STORAGE_ERROR", storageErr.Code)
	parseErr := Classify(&store.ParseError{Path: "tasks.json", Err: errors.New("bad")})
	assert.Equal(t, "PARSE_ERROR", parseErr.Code)
	assert.Equal(t, "UNKNOWN_ACTION", Classify(fmt.Errorf("%w: %q", ErrUnknownAction, "x")).Code)
	assert.Equal(t, "INVALID_ARGUMENT", Classify(store.ErrEmptyText).Code)
}

func TestCatalogue(t *testing.T) {
	defs := Catalogue()
	require.Len(t, defs, 3)
	assert.Equal(t, []string{NameAddTask, NameListTasks, NameCompleteTask},
		[]string{defs[0].Name, defs[1].Name, defs[2].Name})

	defs[0].Parameters[0].Name = "mutated"
	again, ok := Lookup(NameAddTask)
	require.True(t, ok)
	assert.Equal(t, "text", again.Parameters[0].Name)
	assert.True(t, again.Parameters[0].Required)
	assert.False(t, again.Parameters[1].Required)

	complete, ok := Lookup(NameCompleteTask)
	require.True(t, ok)
	assert.Contains(t, complete.Description, "confirm")

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
