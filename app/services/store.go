package services

import (
	"context"

	"gantt-go/app/models"
)

// Store is the task/link persistence the HTTP layer talks to.
type Store interface {
	// List returns every task ordered by sortorder, and every link.
	List(ctx context.Context) ([]models.Task, []models.Link, error)
	// CreateTask appends a task after all others and returns its id.
	CreateTask(ctx context.Context, in models.TaskInput) (int64, error)
	// UpdateTask rewrites the task's fields and, when target is not empty,
	// moves it next to the task the target descriptor names.
	UpdateTask(ctx context.Context, id int64, in models.TaskInput, target string) (models.ReorderOutcome, error)
	DeleteTask(ctx context.Context, id int64) error
	CreateLink(ctx context.Context, in models.LinkInput) (int64, error)
	DeleteLink(ctx context.Context, id int64) error
	Close() error
}
