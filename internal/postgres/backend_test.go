package postgres_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/mesh-intelligence/taskboard/internal/postgres"
	"github.com/mesh-intelligence/taskboard/internal/storetest"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// dockerAvailable checks whether the Docker daemon is reachable.
// testcontainers-go panics when Docker is not installed, so probe first.
func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

// startPostgres runs a PostgreSQL 16 container once per test and returns
// its connection string. Skips the test when Docker is unavailable.
func startPostgres(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL container in -short mode")
	}
	if !dockerAvailable() {
		t.Skip("Docker not available, skipping PostgreSQL integration tests")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("taskboard"),
		tcpostgres.WithUsername("taskboard"),
		tcpostgres.WithPassword("taskboard"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestBackend_ImplementsBackend(t *testing.T) {
	var _ types.Backend = (*postgres.Backend)(nil)
}

func TestBackend_AttachRejectsSQLiteConfig(t *testing.T) {
	err := postgres.NewBackend().Attach(context.Background(), types.Config{Backend: types.BackendSQLite})
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestBackend_TasksWhenDetached(t *testing.T) {
	b := postgres.NewBackend()
	_, err := b.Tasks()
	assert.ErrorIs(t, err, types.ErrBackendDetached)
	assert.NoError(t, b.Detach())
}

func TestTasksTable(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	storetest.Run(t, func(t *testing.T) types.TaskTable {
		b := postgres.NewBackend()
		require.NoError(t, b.Attach(ctx, types.Config{Backend: types.BackendPostgres, DSN: dsn}))
		t.Cleanup(func() { b.Detach() })

		table, err := b.Tasks()
		require.NoError(t, err)

		// Each subtest starts from an empty table; RESTART IDENTITY is not
		// used so ids stay unique across subtests.
		pool := mustPool(t, ctx, dsn)
		_, err = pool.Exec(ctx, `DELETE FROM tasks`)
		require.NoError(t, err)
		return table
	})
}
