package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/josephgoksu/taskvoice/internal/actions"
	"github.com/josephgoksu/taskvoice/store"
	"github.com/josephgoksu/taskvoice/types"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSurface(t *testing.T) *actions.Surface {
	t.Helper()
	n := int64(0)
	clock := func() time.Time {
		n++
		return time.UnixMilli(1758358800000 + n)
	}
	s, err := store.NewFileTaskStore("tasks.json", store.WithFs(afero.NewMemMapFs()), store.WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return actions.NewSurface(s, nil)
}

func textAt(t *testing.T, res *mcpsdk.CallToolResultFor[any], i int) string {
	t.Helper()
	require.Greater(t, len(res.Content), i)
	tc, ok := res.Content[i].(*mcpsdk.TextContent)
	require.True(t, ok, "content %d is not text", i)
	return tc.Text
}

func TestToolHandlers_Scenario(t *testing.T) {
	ctx := context.Background()
	surface := newTestSurface(t)
	add := addTaskHandler(surface, nil)
	list := listTasksHandler(surface, nil)
	complete := completeTaskHandler(surface, nil)

	due := "2025-09-20"
	res, err := add(ctx, nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{
		Arguments: types.AddTaskParams{Text: "buy milk", Due: &due},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, textAt(t, res, 0), "Added **buy milk**")
	assert.Contains(t, textAt(t, res, 0), "due 2025-09-20")

	var added types.AddTaskResult
	require.NoError(t, json.Unmarshal([]byte(textAt(t, res, 1)), &added))
	assert.Equal(t, "buy milk", added.Text)

	_, err = add(ctx, nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{Arguments: types.AddTaskParams{Text: "walk dog"}})
	require.NoError(t, err)

	res, err = complete(ctx, nil, &mcpsdk.CallToolParamsFor[types.CompleteTaskParams]{Arguments: types.CompleteTaskParams{Query: "milk"}})
	require.NoError(t, err)
	assert.Contains(t, textAt(t, res, 0), "Completed **buy milk**")

	var done types.CompleteTaskResult
	require.NoError(t, json.Unmarshal([]byte(textAt(t, res, 1)), &done))
	assert.True(t, done.OK)
	assert.Equal(t, added.ID, done.Task.ID)

	res, err = list(ctx, nil, &mcpsdk.CallToolParamsFor[types.ListTasksParams]{})
	require.NoError(t, err)
	assert.Contains(t, textAt(t, res, 0), "walk dog")
	assert.NotContains(t, textAt(t, res, 0), "buy milk")
}

func TestToolHandlers_ErrorsAreToolResults(t *testing.T) {
	surface := newTestSurface(t)
	add := addTaskHandler(surface, nil)

	res, err := add(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.AddTaskParams]{Arguments: types.AddTaskParams{Text: " "}})
	require.NoError(t, err, "tool failures must not be protocol errors")
	assert.True(t, res.IsError)
	assert.Contains(t, textAt(t, res, 0), "Validation Error")
	assert.Contains(t, textAt(t, res, 0), "`text`")
}

func TestToolHandlers_CompleteMiss(t *testing.T) {
	surface := newTestSurface(t)
	complete := completeTaskHandler(surface, nil)

	res, err := complete(context.Background(), nil, &mcpsdk.CallToolParamsFor[types.CompleteTaskParams]{Arguments: types.CompleteTaskParams{Query: "bread"}})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "No matching task found.", textAt(t, res, 0))
	assert.JSONEq(t, `{"ok":false,"task":null}`, textAt(t, res, 1))
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer(newTestSurface(t), "test", nil))
}
