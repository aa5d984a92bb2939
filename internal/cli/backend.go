package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/mesh-intelligence/taskboard/internal/jsonl"
	"github.com/mesh-intelligence/taskboard/internal/logging"
	"github.com/mesh-intelligence/taskboard/internal/paths"
	"github.com/mesh-intelligence/taskboard/pkg/taskboard"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// resolveDataDir applies --data-dir > config.yaml > TASKBOARD_DATA_DIR > default.
func (o *options) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(o.dataDir, o.cfg.GetString(cfgKeyDataDir))
}

// attachBackend attaches the configured backend and returns its task table,
// wrapped in a JSONL mirror when jsonl_mirror is set. The caller must
// Detach the backend.
func (o *options) attachBackend(ctx context.Context) (types.Backend, types.TaskTable, error) {
	dataDir, err := o.resolveDataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: o.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
		DSN:     o.cfg.GetString(cfgKeyDSN),
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, userError{fmt.Errorf("config: %w", err)}
	}

	backend, err := taskboard.NewBackend(cfg.Backend)
	if err != nil {
		return nil, nil, userError{fmt.Errorf("config: %w", err)}
	}
	if err := backend.Attach(ctx, cfg); err != nil {
		return nil, nil, fmt.Errorf("attach backend: %w", err)
	}

	table, err := backend.Tasks()
	if err != nil {
		backend.Detach()
		return nil, nil, fmt.Errorf("open tasks table: %w", err)
	}

	if o.cfg.GetBool(cfgKeyJSONLMirror) {
		mirror := jsonl.NewMirror(table, filepath.Join(dataDir, jsonl.FileName))
		if err := mirror.Snapshot(ctx); err != nil {
			backend.Detach()
			return nil, nil, err
		}
		table = mirror
	}
	return backend, table, nil
}

// logger returns a kratos logger at the configured level.
func (o *options) logger(w io.Writer) log.Logger {
	return logging.New(w, o.cfg.GetString(cfgKeyLogLevel))
}

// server returns the base URL client commands talk to.
func (o *options) server() string {
	if o.serverURL != "" {
		return o.serverURL
	}
	return o.cfg.GetString(cfgKeyServerURL)
}
