package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func TestClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := startServer(t)

	created := mustCreate(t, c, "Buy milk", types.StatusToDo)
	assert.Positive(t, created.ID)

	got, err := c.Show(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	status := types.StatusCompleted
	updated, err := c.Update(ctx, created.ID, types.TaskPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, updated.Status)
	assert.Equal(t, "Buy milk", updated.Title)

	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, c.Delete(ctx, created.ID))

	_, err = c.Show(ctx, created.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_FilterEscapesStatus(t *testing.T) {
	ctx := context.Background()
	c := startServer(t)
	mustCreate(t, c, "a", types.StatusInProgress)
	mustCreate(t, c, "b", types.StatusToDo)

	got, err := c.Filter(ctx, types.StatusInProgress)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Title)

	all, err := c.Filter(ctx, types.StatusAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestClient_ValidationError(t *testing.T) {
	c := startServer(t)

	_, err := c.Create(context.Background(), types.TaskFields{Title: "t", Status: "Nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrValidation)

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "description")
	assert.Contains(t, verr.Fields, "status")
}

func TestClient_ServerErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).List(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "internal server error", apiErr.Message)
	assert.False(t, errors.Is(err, types.ErrNotFound))
}
