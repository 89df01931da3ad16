package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/josephgoksu/taskvoice/models"
)

// RenderTaskList writes open tasks as a numbered list with a header.
func RenderTaskList(w io.Writer, tasks []models.Task, width int) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, StyleSubtle.Render("No pending tasks."))
		return
	}

	fmt.Fprintln(w, StyleHeader.Render(fmt.Sprintf("📋 Pending tasks (%d)", len(tasks))))
	fmt.Fprintln(w, StyleSubtle.Render(strings.Repeat("─", 40)))
	for i, t := range tasks {
		fmt.Fprintf(w, "%2d. %s\n", i+1, TaskLine(t, width))
	}
}

// TaskLine formats one task: text, optional due and id.
func TaskLine(t models.Task, width int) string {
	// Leave room for the numbering, due and id columns.
	text := Truncate(t.Text, width-30)
	line := StyleText.Render(text)
	if t.Due != nil {
		line += " " + StyleDue.Render("(due "+*t.Due+")")
	}
	return line + " " + StyleSubtle.Render(t.IDString())
}

// Truncate truncates a string to maxLen characters, adding ellipsis if needed.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
