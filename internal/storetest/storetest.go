// Package storetest provides a contract test suite that every
// types.TaskTable implementation must pass.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// Factory returns an empty, ready-to-use TaskTable. The factory owns cleanup
// through t.Cleanup.
type Factory func(t *testing.T) types.TaskTable

// Run exercises the TaskTable contract against tables produced by newTable.
func Run(t *testing.T, newTable Factory) {
	tests := []struct {
		name  string
		check func(t *testing.T, table types.TaskTable)
	}{
		{"create assigns id and echoes fields", testCreate},
		{"fetch returns created task", testFetch},
		{"fetch missing returns ErrNotFound", testFetchMissing},
		{"non-positive id returns ErrInvalidID", testInvalidID},
		{"list on empty table is empty not nil", testListEmpty},
		{"list counts creates minus deletes", testListCardinality},
		{"update overwrites supplied fields only", testUpdatePartial},
		{"update with empty patch returns current task", testUpdateEmptyPatch},
		{"update missing returns ErrNotFound", testUpdateMissing},
		{"delete removes the row", testDelete},
		{"delete missing returns ErrNotFound", testDeleteMissing},
		{"filter by status is exact", testFilterByStatus},
		{"filter by All matches nothing", testFilterLiteralAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, newTable(t))
		})
	}
}

func fields(title, status string) types.TaskFields {
	return types.TaskFields{Title: title, Description: title + " description", Status: status}
}

func mustCreate(t *testing.T, table types.TaskTable, f types.TaskFields) *types.Task {
	t.Helper()
	task, err := table.Create(context.Background(), f)
	require.NoError(t, err)
	return task
}

func testCreate(t *testing.T, table types.TaskTable) {
	task := mustCreate(t, table, types.TaskFields{Title: "Buy milk", Description: "2%", Status: types.StatusToDo})

	assert.Positive(t, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2%", task.Description)
	assert.Equal(t, types.StatusToDo, task.Status)

	other := mustCreate(t, table, fields("other", types.StatusToDo))
	assert.NotEqual(t, task.ID, other.ID)
}

func testFetch(t *testing.T, table types.TaskTable) {
	created := mustCreate(t, table, fields("fetch me", types.StatusInProgress))

	got, err := table.Fetch(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func testFetchMissing(t *testing.T, table types.TaskTable) {
	_, err := table.Fetch(context.Background(), 4242)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func testInvalidID(t *testing.T, table types.TaskTable) {
	ctx := context.Background()

	_, err := table.Fetch(ctx, 0)
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = table.Update(ctx, types.TaskPatch{}, -1)
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = table.Delete(ctx, 0)
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func testListEmpty(t *testing.T, table types.TaskTable) {
	got, err := table.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func testListCardinality(t *testing.T, table types.TaskTable) {
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 6; i++ {
		ids = append(ids, mustCreate(t, table, fields("task", types.StatusToDo)).ID)
	}
	for _, id := range ids[:2] {
		ok, err := table.Delete(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
	}

	got, err := table.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].ID, got[i].ID, "list is ordered by id")
	}
}

func testUpdatePartial(t *testing.T, table types.TaskTable) {
	ctx := context.Background()
	created := mustCreate(t, table, types.TaskFields{Title: "Buy milk", Description: "2%", Status: types.StatusToDo})

	status := types.StatusCompleted
	updated, err := table.Update(ctx, types.TaskPatch{Status: &status}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, &types.Task{ID: created.ID, Title: "Buy milk", Description: "2%", Status: types.StatusCompleted}, updated)

	got, err := table.Fetch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	full := types.PatchFrom(types.TaskFields{Title: "Buy bread", Description: "rye", Status: types.StatusInProgress})
	updated, err = table.Update(ctx, full, created.ID)
	require.NoError(t, err)
	assert.Equal(t, &types.Task{ID: created.ID, Title: "Buy bread", Description: "rye", Status: types.StatusInProgress}, updated)
}

func testUpdateEmptyPatch(t *testing.T, table types.TaskTable) {
	created := mustCreate(t, table, fields("same", types.StatusToDo))

	got, err := table.Update(context.Background(), types.TaskPatch{}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = table.Update(context.Background(), types.TaskPatch{}, created.ID+100)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func testUpdateMissing(t *testing.T, table types.TaskTable) {
	title := "ghost"
	_, err := table.Update(context.Background(), types.TaskPatch{Title: &title}, 4242)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func testDelete(t *testing.T, table types.TaskTable) {
	ctx := context.Background()
	created := mustCreate(t, table, fields("delete me", types.StatusToDo))

	ok, err := table.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = table.Fetch(ctx, created.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = table.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func testDeleteMissing(t *testing.T, table types.TaskTable) {
	ok, err := table.Delete(context.Background(), 4242)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.False(t, ok)
}

func testFilterByStatus(t *testing.T, table types.TaskTable) {
	ctx := context.Background()
	counts := map[string]int{types.StatusToDo: 3, types.StatusInProgress: 2, types.StatusCompleted: 4}
	for status, n := range counts {
		for i := 0; i < n; i++ {
			mustCreate(t, table, fields("t", status))
		}
	}

	for status, n := range counts {
		got, err := table.FilterByStatus(ctx, status)
		require.NoError(t, err)
		assert.Len(t, got, n, "status %q", status)
		for _, task := range got {
			assert.Equal(t, status, task.Status)
		}
	}

	got, err := table.FilterByStatus(ctx, "to do")
	require.NoError(t, err)
	assert.Empty(t, got, "match is exact")
}

func testFilterLiteralAll(t *testing.T, table types.TaskTable) {
	mustCreate(t, table, fields("t", types.StatusToDo))

	got, err := table.FilterByStatus(context.Background(), types.StatusAll)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
