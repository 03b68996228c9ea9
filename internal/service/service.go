// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for the remote task collection.
// All HTTP calls go through this interface.
// Commands and the TUI never talk to the transport directly.
type Service interface {
	// ListTasks returns the full collection in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task by id.
	GetTask(ctx context.Context, id TaskID) (Task, error)

	// CreateTask submits a new, not completed task.
	// Returns the server record carrying its assigned id.
	CreateTask(ctx context.Context, title string) (Task, error)

	// UpdateTask replaces title and completed for the task with the given id.
	// Returns the server record after the update.
	UpdateTask(ctx context.Context, id TaskID, title string, completed bool) (Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id TaskID) error
}
