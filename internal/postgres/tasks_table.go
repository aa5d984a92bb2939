package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

var _ types.TaskTable = (*tasksTable)(nil)

const taskColumns = "id, title, description, status"

type tasksTable struct {
	pool *pgxpool.Pool
}

func (tt *tasksTable) List(ctx context.Context) ([]*types.Task, error) {
	rows, err := tt.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return collectTasks(rows)
}

func (tt *tasksTable) Create(ctx context.Context, fields types.TaskFields) (*types.Task, error) {
	row := tt.pool.QueryRow(ctx,
		`INSERT INTO tasks (title, description, status) VALUES ($1, $2, $3) RETURNING `+taskColumns,
		fields.Title, fields.Description, fields.Status,
	)
	t, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (tt *tasksTable) Fetch(ctx context.Context, id int64) (*types.Task, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	row := tt.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

// Update builds a dynamic SET clause from the supplied fields. An empty
// patch degrades to Fetch.
func (tt *tasksTable) Update(ctx context.Context, patch types.TaskPatch, id int64) (*types.Task, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	if patch.IsEmpty() {
		return tt.Fetch(ctx, id)
	}

	var sets []string
	args := []any{id}
	add := func(column string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("title", patch.Title)
	add("description", patch.Description)
	add("status", patch.Status)

	row := tt.pool.QueryRow(ctx,
		`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = $1 RETURNING `+taskColumns,
		args...,
	)
	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}
	return t, nil
}

func (tt *tasksTable) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, types.ErrInvalidID
	}

	tag, err := tt.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete task %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return false, types.ErrNotFound
	}
	return true, nil
}

func (tt *tasksTable) FilterByStatus(ctx context.Context, status string) ([]*types.Task, error) {
	rows, err := tt.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE status = $1 ORDER BY id ASC`, status)
	if err != nil {
		return nil, fmt.Errorf("filter tasks: %w", err)
	}
	return collectTasks(rows)
}

func scanTask(row pgx.Row) (*types.Task, error) {
	var t types.Task
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTasks(rows pgx.Rows) ([]*types.Task, error) {
	defer rows.Close()

	tasks := []*types.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
