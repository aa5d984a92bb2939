package jsonl

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/internal/sqlite"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func newMirror(t *testing.T) *Mirror {
	t.Helper()
	dir := t.TempDir()

	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(context.Background(), types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })

	table, err := b.Tasks()
	require.NoError(t, err)
	return NewMirror(table, filepath.Join(dir, FileName))
}

func snapshot(t *testing.T, m *Mirror) []types.Task {
	t.Helper()
	records, err := Read(m.Path())
	require.NoError(t, err)

	tasks := make([]types.Task, 0, len(records))
	for _, rec := range records {
		var task types.Task
		require.NoError(t, json.Unmarshal(rec, &task))
		tasks = append(tasks, task)
	}
	return tasks
}

func TestMirror_TracksMutations(t *testing.T) {
	ctx := context.Background()
	m := newMirror(t)

	a, err := m.Create(ctx, types.TaskFields{Title: "a", Description: "d", Status: types.StatusToDo})
	require.NoError(t, err)
	b, err := m.Create(ctx, types.TaskFields{Title: "b", Description: "d", Status: types.StatusToDo})
	require.NoError(t, err)
	assert.Equal(t, []types.Task{*a, *b}, snapshot(t, m))

	status := types.StatusCompleted
	b, err = m.Update(ctx, types.TaskPatch{Status: &status}, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.Task{*a, *b}, snapshot(t, m))

	_, err = m.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.Task{*b}, snapshot(t, m))
}

func TestMirror_FailedMutationDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	m := newMirror(t)

	_, err := m.Delete(ctx, 99)
	require.ErrorIs(t, err, types.ErrNotFound)

	_, err = Read(m.Path())
	assert.Error(t, err, "no snapshot is written when nothing changed")
}

func TestMirror_ConcurrentMutationsLeaveCompleteSnapshot(t *testing.T) {
	ctx := context.Background()
	m := newMirror(t)

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := m.Create(ctx, types.TaskFields{Title: fmt.Sprintf("task %d", i), Description: "d", Status: types.StatusToDo})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	want, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, want, n)
	assert.Equal(t, want, snapshot(t, m))
}
