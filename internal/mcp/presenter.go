// Package mcp exposes the task actions over the Model Context Protocol and
// renders tool results as short Markdown suited to LLM consumption.
package mcp

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/taskvoice/models"
	"github.com/josephgoksu/taskvoice/types"
)

// FormatAddResult confirms a newly stored task.
func FormatAddResult(result *types.AddTaskResult) string {
	if result == nil {
		return "No task was added."
	}
	msg := fmt.Sprintf("✅ Added **%s** (id `%d`)", result.Text, result.ID)
	if result.Due != nil {
		msg += fmt.Sprintf(", due %s", *result.Due)
	}
	return msg
}

// FormatTaskList renders open tasks as a numbered list.
func FormatTaskList(result *types.ListTasksResult) string {
	if result == nil || len(result.Tasks) == 0 {
		return "No pending tasks."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Pending tasks (%d)\n", len(result.Tasks)))
	for i, t := range result.Tasks {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, formatTaskLine(t)))
	}
	return strings.TrimSpace(sb.String())
}

// FormatCompleteResult reports the outcome of a completion.
func FormatCompleteResult(result *types.CompleteTaskResult) string {
	if result == nil || !result.OK || result.Task == nil {
		return "No matching task found."
	}
	return fmt.Sprintf("✅ Completed **%s** (id `%d`)", truncate(result.Task.Text, 120), result.Task.ID)
}

func formatTaskLine(t models.Task) string {
	line := fmt.Sprintf("%s %s `%d`", statusIcon(t.Done), truncate(t.Text, 120), t.ID)
	if t.Due != nil {
		line += fmt.Sprintf(" (due %s)", *t.Due)
	}
	return line
}

// === Error Formatters ===

// FormatError returns a standardized Markdown error message.
func FormatError(message string) string {
	return fmt.Sprintf("## ❌ Error\n\n**Details**: %s", message)
}

// FormatValidationError returns a Markdown error for validation failures.
func FormatValidationError(field, message string) string {
	return fmt.Sprintf("## ❌ Validation Error\n\n**Field**: `%s`\n**Details**: %s", field, message)
}

// FormatActionError picks the error layout matching the error code.
func FormatActionError(err *types.ActionError) string {
	if err == nil {
		return FormatError("unknown error")
	}
	if err.Code == types.CodeInvalidArgument {
		if field, ok := err.Details["field"].(string); ok && field != "" {
			return FormatValidationError(field, err.Message)
		}
	}
	return FormatError(fmt.Sprintf("[%s] %s", err.Code, err.Message))
}

func statusIcon(done bool) string {
	if done {
		return "✅"
	}
	return "⏳"
}

// truncate shortens a string to maxLen runes and adds ellipsis
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
