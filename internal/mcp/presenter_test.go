package mcp

import (
	"strings"
	"testing"

	"github.com/josephgoksu/taskvoice/models"
	"github.com/josephgoksu/taskvoice/types"
	"github.com/stretchr/testify/assert"
)

func TestFormatTaskList(t *testing.T) {
	assert.Equal(t, "No pending tasks.", FormatTaskList(nil))
	assert.Equal(t, "No pending tasks.", FormatTaskList(&types.ListTasksResult{Tasks: []models.Task{}}))

	due := "friday"
	out := FormatTaskList(&types.ListTasksResult{Tasks: []models.Task{
		{ID: 1, Text: "buy milk"},
		{ID: 2, Text: "walk dog", Due: &due},
	}})
	assert.True(t, strings.HasPrefix(out, "## Pending tasks (2)"))
	assert.Contains(t, out, "1. ⏳ buy milk `1`")
	assert.Contains(t, out, "2. ⏳ walk dog `2` (due friday)")
}

func TestFormatAddResult(t *testing.T) {
	assert.Equal(t, "No task was added.", FormatAddResult(nil))
	assert.Equal(t, "✅ Added **buy milk** (id `7`)", FormatAddResult(&types.AddTaskResult{ID: 7, Text: "buy milk"}))
}

func TestFormatCompleteResult(t *testing.T) {
	assert.Equal(t, "No matching task found.", FormatCompleteResult(&types.CompleteTaskResult{OK: false}))
	out := FormatCompleteResult(&types.CompleteTaskResult{OK: true, Task: &models.Task{ID: 3, Text: "walk dog", Done: true}})
	assert.Equal(t, "✅ Completed **walk dog** (id `3`)", out)
}

func TestFormatActionError(t *testing.T) {
	validation := types.NewActionError(types.CodeInvalidArgument, "task text is required", map[string]interface{}{"field": "text"})
	assert.Contains(t, FormatActionError(validation), "**Field**: `text`")

	storage := types.NewActionError(types.CodeStorage, "write tasks.json: disk full", nil)
	out := FormatActionError(storage)
	assert.Contains(t, out, "## ❌ Error")
	assert.Contains(t, out, "[STORAGE_ERROR]")

	assert.Contains(t, FormatActionError(nil), "unknown error")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
