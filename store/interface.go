package store

import "github.com/josephgoksu/taskvoice/models"

// TaskStore defines the contract for task persistence.
// Every method runs synchronously and returns copies; callers never hold
// references into the store's own collection.
type TaskStore interface {
	// Add appends a new open task and persists the collection.
	// The text is trimmed; blank text yields ErrEmptyText.
	// It returns the id assigned to the new task.
	Add(text string, due *string) (int64, error)

	// ListOpen returns every task that is not done, in insertion order.
	ListOpen() ([]models.Task, error)

	// Complete marks the first task matching query as done and returns it.
	// A query matches a task by exact decimal id or by case-insensitive
	// substring of its text. Completed tasks stay eligible, so completing
	// twice returns the same task again. A nil task with a nil error means
	// nothing matched.
	Complete(query string) (*models.Task, error)

	// Close releases any resources held by the store, such as file locks or
	// database connections.
	Close() error
}
