// Package tasks is the access layer between the HTTP handlers and a
// types.TaskTable. It passes calls through unchanged except for the "All"
// status filter, which means no filter at all.
package tasks

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// Service wraps a TaskTable with intent-revealing operations.
type Service struct {
	table types.TaskTable
	log   *log.Helper
}

// NewService returns a Service backed by table.
func NewService(table types.TaskTable, logger log.Logger) *Service {
	return &Service{
		table: table,
		log:   log.NewHelper(log.With(logger, "component", "tasks")),
	}
}

// List returns every task.
func (s *Service) List(ctx context.Context) ([]*types.Task, error) {
	return s.table.List(ctx)
}

// Create persists a validated payload.
func (s *Service) Create(ctx context.Context, fields types.TaskFields) (*types.Task, error) {
	t, err := s.table.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Infow("msg", "task created", "task.id", t.ID)
	return t, nil
}

// Fetch returns one task or types.ErrNotFound.
func (s *Service) Fetch(ctx context.Context, id int64) (*types.Task, error) {
	return s.table.Fetch(ctx, id)
}

// Update applies a validated patch. types.ErrNotFound from the table is
// returned as-is.
func (s *Service) Update(ctx context.Context, id int64, patch types.TaskPatch) (*types.Task, error) {
	t, err := s.table.Update(ctx, patch, id)
	if err != nil {
		return nil, err
	}
	s.log.WithContext(ctx).Infow("msg", "task updated", "task.id", t.ID)
	return t, nil
}

// Remove deletes a task. types.ErrNotFound from the table is returned as-is.
func (s *Service) Remove(ctx context.Context, id int64) (bool, error) {
	ok, err := s.table.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	s.log.WithContext(ctx).Infow("msg", "task deleted", "task.id", id)
	return ok, nil
}

// FilterByStatus returns tasks with the given status. types.StatusAll
// returns the unfiltered list.
func (s *Service) FilterByStatus(ctx context.Context, status string) ([]*types.Task, error) {
	if status == types.StatusAll {
		return s.table.List(ctx)
	}
	return s.table.FilterByStatus(ctx, status)
}
