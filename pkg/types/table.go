package types

import (
	"context"
	"errors"
)

// TaskTable provides row-level CRUD and an equality filter over tasks.
// Every mutation is a single atomic row operation.
type TaskTable interface {
	// List returns all tasks ordered by ID. Never nil.
	List(ctx context.Context) ([]*Task, error)

	// Create persists a new row and returns the stored task with its
	// assigned ID.
	Create(ctx context.Context, fields TaskFields) (*Task, error)

	// Fetch returns the task with the given ID.
	// Returns ErrNotFound if no task exists with that ID.
	Fetch(ctx context.Context, id int64) (*Task, error)

	// Update overwrites the supplied fields of the task and returns it.
	// Returns ErrNotFound if no task exists with that ID.
	Update(ctx context.Context, patch TaskPatch, id int64) (*Task, error)

	// Delete removes the task. Returns ErrNotFound if no task exists with
	// that ID.
	Delete(ctx context.Context, id int64) (bool, error)

	// FilterByStatus returns the tasks whose status equals status exactly.
	// Never nil.
	FilterByStatus(ctx context.Context, status string) ([]*Task, error)
}

// Table operation errors.
var (
	ErrNotFound  = errors.New("task not found")
	ErrInvalidID = errors.New("invalid task ID")
)
