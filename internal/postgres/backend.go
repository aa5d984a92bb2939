// Package postgres implements the Postgres storage backend for taskboard
// on top of a pgx connection pool.
package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// Compile-time interface check.
var _ types.Backend = (*Backend)(nil)

// Backend implements types.Backend using Postgres.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	pool     *pgxpool.Pool
	tasks    *tasksTable
}

// NewBackend creates a new Postgres backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Tasks returns the tasks table accessor.
// Returns ErrBackendDetached if the backend is not attached.
func (b *Backend) Tasks() (types.TaskTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return b.tasks, nil
}

// Attach connects to Config.DSN and ensures the schema exists.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(ctx context.Context, config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendPostgres {
		return fmt.Errorf("postgres backend cannot serve %q: %w", config.Backend, types.ErrBackendUnknown)
	}

	pool, err := pgxpool.New(ctx, config.DSN)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("pinging postgres: %w", err)
	}
	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return err
	}

	b.pool = pool
	b.tasks = &tasksTable{pool: pool}
	b.attached = true
	return nil
}

// Detach closes the pool. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.pool.Close()
	b.pool = nil
	b.tasks = nil
	b.attached = false
	return nil
}

// EnsureSchema creates the tasks table and its index if they don't exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
    id          BIGSERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL,
    status      TEXT NOT NULL CHECK (status IN ('To Do', 'In Progress', 'Completed'))
)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks (status)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure task schema: %w", err)
		}
	}
	return nil
}
