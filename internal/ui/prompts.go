package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/josephgoksu/taskvoice/models"
	"github.com/manifoldco/promptui"
)

// ErrNoTasks is returned when a selection is attempted with nothing to select.
var ErrNoTasks = errors.New("no pending tasks")

// ErrCancelled is returned when the user interrupts or declines a prompt.
var ErrCancelled = errors.New("operation cancelled")

// SelectTask asks the user to pick one of tasks.
func SelectTask(tasks []models.Task, label string) (models.Task, error) {
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasks
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Text | cyan }} (ID: {{ .ID }})`,
		Inactive: `  {{ .Text | faint }} (ID: {{ .ID }})`,
		Selected: `{{ "✔" | green }} {{ .Text | faint }} (ID: {{ .ID }})`,
	}

	searcher := func(input string, index int) bool {
		return tasks[index].Matches(models.NormalizeQuery(input)) ||
			strings.Contains(tasks[index].IDString(), strings.TrimSpace(input))
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
		Size:      10,
	}

	i, _, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return models.Task{}, ErrCancelled
		}
		return models.Task{}, err
	}
	return tasks[i], nil
}

// Confirm asks a yes/no question; anything but yes returns ErrCancelled.
func Confirm(label string) error {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return ErrCancelled
		}
		return fmt.Errorf("confirmation prompt: %w", err)
	}
	return nil
}

// ReadLine prompts for one line of free text.
func ReadLine(label string) (string, error) {
	prompt := promptui.Prompt{Label: label}
	line, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", ErrCancelled
		}
		return "", err
	}
	return line, nil
}
