// Package taskboard is the public entry point for embedding taskboard
// storage. It exposes the backend factory and the release version while
// keeping backend implementations internal.
package taskboard

import (
	"fmt"

	"github.com/mesh-intelligence/taskboard/internal/postgres"
	"github.com/mesh-intelligence/taskboard/internal/sqlite"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// Version is the taskboard release version.
const Version = "v0.3.0"

// NewBackend returns an unattached backend for the named engine. Call Attach
// with a Config to initialize it.
//
// Example:
//
//	backend, err := taskboard.NewBackend(types.BackendSQLite)
//	if err != nil { ... }
//	err = backend.Attach(ctx, types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".taskboard-db",
//	})
//	defer backend.Detach()
func NewBackend(name string) (types.Backend, error) {
	switch name {
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case types.BackendPostgres:
		return postgres.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, name)
	}
}
