/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import "github.com/josephgoksu/taskvoice/models"

// Action parameter and result types shared by every tool adapter.

// AddTaskParams for creating a new task
type AddTaskParams struct {
	Text string  `json:"text"`
	Due  *string `json:"due,omitempty"`
}

// AddTaskResult echoes the stored task fields
type AddTaskResult struct {
	ID   int64   `json:"id"`
	Text string  `json:"text"`
	Due  *string `json:"due"`
}

// ListTasksParams takes no arguments
type ListTasksParams struct{}

// ListTasksResult holds at most ListTasksLimit open tasks
type ListTasksResult struct {
	Tasks []models.Task `json:"tasks"`
}

// CompleteTaskParams selects a task by id or text fragment
type CompleteTaskParams struct {
	Query string `json:"query"`
}

// CompleteTaskResult reports whether a task matched. Task is null when OK is false.
type CompleteTaskResult struct {
	OK   bool         `json:"ok"`
	Task *models.Task `json:"task"`
}
