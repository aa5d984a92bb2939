// Tests for the SQLite backend lifecycle.
package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	if err := b.Attach(ctx, config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	// Verify database file created
	dbPath := filepath.Join(tmpDir, DatabaseFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("%s not created", DatabaseFile)
	}

	// Verify double attach fails
	if err := b.Attach(ctx, config); err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	b.Detach()
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{"empty backend", types.Config{DataDir: t.TempDir()}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "mysql", DataDir: t.TempDir()}, types.ErrBackendUnknown},
		{"postgres config", types.Config{Backend: types.BackendPostgres, DSN: "postgres://x"}, types.ErrBackendUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBackend().Attach(ctx, tt.config)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	ctx := context.Background()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	if err := b.Attach(ctx, config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	// Verify idempotent
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	// Verify operations fail after detach
	if _, err := b.Tasks(); err != types.ErrBackendDetached {
		t.Errorf("expected ErrBackendDetached, got %v", err)
	}
}

func TestBackend_ReattachKeepsData(t *testing.T) {
	ctx := context.Background()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}

	b := NewBackend()
	if err := b.Attach(ctx, config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	table, _ := b.Tasks()
	kept, err := table.Create(ctx, types.TaskFields{Title: "keep", Description: "d", Status: types.StatusToDo})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	gone, err := table.Create(ctx, types.TaskFields{Title: "gone", Description: "d", Status: types.StatusToDo})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := table.Delete(ctx, gone.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	b.Detach()

	b2 := NewBackend()
	if err := b2.Attach(ctx, config); err != nil {
		t.Fatalf("re-Attach failed: %v", err)
	}
	defer b2.Detach()
	table, _ = b2.Tasks()

	got, err := table.Fetch(ctx, kept.ID)
	if err != nil {
		t.Fatalf("Fetch after reattach failed: %v", err)
	}
	if got.Title != "keep" {
		t.Errorf("expected title keep, got %q", got.Title)
	}

	// A deleted id is never reissued.
	next, err := table.Create(ctx, types.TaskFields{Title: "next", Description: "d", Status: types.StatusToDo})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if next.ID <= gone.ID {
		t.Errorf("expected new id above %d, got %d", gone.ID, next.ID)
	}
}
