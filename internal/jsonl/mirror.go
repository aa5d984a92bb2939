package jsonl

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

var _ types.TaskTable = (*Mirror)(nil)

// Mirror wraps a TaskTable and rewrites a JSONL snapshot of every task after
// each successful mutation. Reads pass straight through. A mutation and the
// snapshot that follows it run under one lock, so the file never lags a
// later write.
type Mirror struct {
	types.TaskTable
	path string

	mu sync.Mutex
}

// NewMirror returns a Mirror that writes its snapshot to path.
func NewMirror(table types.TaskTable, path string) *Mirror {
	return &Mirror{TaskTable: table, path: path}
}

// Path returns the snapshot file path.
func (m *Mirror) Path() string {
	return m.path
}

func (m *Mirror) Create(ctx context.Context, fields types.TaskFields) (*types.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.TaskTable.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	return t, m.snapshotLocked(ctx)
}

func (m *Mirror) Update(ctx context.Context, patch types.TaskPatch, id int64) (*types.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.TaskTable.Update(ctx, patch, id)
	if err != nil {
		return nil, err
	}
	return t, m.snapshotLocked(ctx)
}

func (m *Mirror) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ok, err := m.TaskTable.Delete(ctx, id)
	if err != nil {
		return ok, err
	}
	return ok, m.snapshotLocked(ctx)
}

// Snapshot writes every task in the wrapped table to the snapshot file.
func (m *Mirror) Snapshot(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(ctx)
}

func (m *Mirror) snapshotLocked(ctx context.Context) error {
	tasks, err := m.TaskTable.List(ctx)
	if err != nil {
		return fmt.Errorf("listing tasks for %s: %w", FileName, err)
	}

	records := make([]json.RawMessage, 0, len(tasks))
	for _, t := range tasks {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshaling task %d: %w", t.ID, err)
		}
		records = append(records, data)
	}

	if err := Write(m.path, records); err != nil {
		return fmt.Errorf("persisting %s: %w", FileName, err)
	}
	return nil
}
