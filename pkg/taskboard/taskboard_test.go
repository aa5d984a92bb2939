package taskboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantErr error
	}{
		{"sqlite", types.BackendSQLite, nil},
		{"postgres", types.BackendPostgres, nil},
		{"empty", "", types.ErrBackendEmpty},
		{"unknown", "mysql", types.ErrBackendUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBackend(tt.backend)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, b)
		})
	}
}

func TestNewBackend_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	b, err := NewBackend(types.BackendSQLite)
	require.NoError(t, err)

	require.NoError(t, b.Attach(ctx, types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer b.Detach()

	table, err := b.Tasks()
	require.NoError(t, err)

	task, err := table.Create(ctx, types.TaskFields{Title: "t", Description: "d", Status: types.StatusToDo})
	require.NoError(t, err)
	assert.Positive(t, task.ID)
}
