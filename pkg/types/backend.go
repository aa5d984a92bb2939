package types

import (
	"context"
	"errors"
)

// Backend defines the lifecycle of a storage backend. Callers attach to a
// backend, obtain its TaskTable, and detach when done.
type Backend interface {
	// Attach connects the backend described by config. Creates the DataDir
	// or schema if it does not exist. Returns ErrAlreadyAttached if called
	// while already attached.
	Attach(ctx context.Context, config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Tasks returns ErrBackendDetached.
	Detach() error

	// Tasks returns the TaskTable for the attached backend.
	Tasks() (TaskTable, error)
}

// Backend lifecycle errors.
var (
	ErrBackendDetached = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)
