// This file implements the tasks table accessor for the SQLite backend.
// Each mutation runs in one transaction that writes the row and reads it back.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// Compile-time interface check: tasksTable must implement TaskTable.
var _ types.TaskTable = (*tasksTable)(nil)

const selectTask = "SELECT id, title, description, status FROM tasks"

// tasksTable implements types.TaskTable over the tasks table.
type tasksTable struct {
	db *sql.DB
}

// List returns every task ordered by id.
func (tt *tasksTable) List(ctx context.Context) ([]*types.Task, error) {
	return tt.query(ctx, selectTask+" ORDER BY id ASC")
}

// Create inserts a row and returns the stored task including its new id.
func (tt *tasksTable) Create(ctx context.Context, fields types.TaskFields) (*types.Task, error) {
	tx, err := tt.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO tasks (title, description, status) VALUES (?, ?, ?)",
		fields.Title, fields.Description, fields.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted id: %w", err)
	}

	task, err := hydrateTask(tx.QueryRowContext(ctx, selectTask+" WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("reading created task %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing task: %w", err)
	}
	return task, nil
}

// Fetch returns the task with the given id or ErrNotFound.
func (tt *tasksTable) Fetch(ctx context.Context, id int64) (*types.Task, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	task, err := hydrateTask(tt.db.QueryRowContext(ctx, selectTask+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	return task, nil
}

// Update overwrites the supplied fields. An empty patch still verifies that
// the task exists.
func (tt *tasksTable) Update(ctx context.Context, patch types.TaskPatch, id int64) (*types.Task, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	var sets []string
	var args []any
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}

	tx, err := tt.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if len(sets) > 0 {
		args = append(args, id)
		res, err := tx.ExecContext(ctx,
			"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?",
			args...,
		)
		if err != nil {
			return nil, fmt.Errorf("updating task %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("reading rows affected: %w", err)
		}
		if n == 0 {
			return nil, types.ErrNotFound
		}
	}

	task, err := hydrateTask(tx.QueryRowContext(ctx, selectTask+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("reading updated task %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing task update: %w", err)
	}
	return task, nil
}

// Delete removes the row with the given id or returns ErrNotFound.
func (tt *tasksTable) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, types.ErrInvalidID
	}

	res, err := tt.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting task %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return false, types.ErrNotFound
	}
	return true, nil
}

// FilterByStatus returns tasks whose status equals status exactly.
func (tt *tasksTable) FilterByStatus(ctx context.Context, status string) ([]*types.Task, error) {
	return tt.query(ctx, selectTask+" WHERE status = ? ORDER BY id ASC", status)
}

// query runs a multi-row select and hydrates each row. Returns an empty
// slice, not nil, when nothing matches.
func (tt *tasksTable) query(ctx context.Context, query string, args ...any) ([]*types.Task, error) {
	rows, err := tt.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	defer rows.Close()

	results := []*types.Task{}
	for rows.Next() {
		task, err := hydrateTask(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating task: %w", err)
		}
		results = append(results, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return results, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateTask converts a single SQLite row into a *types.Task.
func hydrateTask(row rowScanner) (*types.Task, error) {
	var t types.Task
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status); err != nil {
		return nil, err
	}
	return &t, nil
}
