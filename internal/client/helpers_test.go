package client

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/internal/logging"
	"github.com/mesh-intelligence/taskboard/internal/server"
	"github.com/mesh-intelligence/taskboard/internal/sqlite"
	"github.com/mesh-intelligence/taskboard/internal/tasks"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// startServer runs a real taskboard server on SQLite and returns a client
// for it.
func startServer(t *testing.T) *Client {
	t.Helper()

	backend := sqlite.NewBackend()
	err := backend.Attach(context.Background(), types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { backend.Detach() })

	table, err := backend.Tasks()
	require.NoError(t, err)

	srv := server.New(tasks.NewService(table, logging.Discard()), server.WithLogger(logging.Discard()))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return New(ts.URL, WithHTTPClient(ts.Client()))
}

func mustCreate(t *testing.T, c *Client, title, status string) *types.Task {
	t.Helper()
	task, err := c.Create(context.Background(), types.TaskFields{Title: title, Description: title + " details", Status: status})
	require.NoError(t, err)
	return task
}

// recordingNotifier keeps every message it is given.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

// switchableAPI forwards to a real client until fail is set, then returns
// err from every call.
type switchableAPI struct {
	API
	fail bool
	err  error
}

func (a *switchableAPI) List(ctx context.Context) ([]types.Task, error) {
	if a.fail {
		return nil, a.err
	}
	return a.API.List(ctx)
}

func (a *switchableAPI) Filter(ctx context.Context, status string) ([]types.Task, error) {
	if a.fail {
		return nil, a.err
	}
	return a.API.Filter(ctx, status)
}
