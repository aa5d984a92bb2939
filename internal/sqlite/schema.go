// Package sqlite implements the SQLite backend for the taskboard storage system.
// This file holds the schema DDL executed on Attach.
package sqlite

// Schema DDL for the tasks table. AUTOINCREMENT keeps deleted IDs from being
// reissued.
const (
	createTasks = `CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('To Do', 'In Progress', 'Completed'))
);`

	idxTasksStatus = `CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`
)

// schemaDDL lists all statements in execution order.
var schemaDDL = []string{
	createTasks,
	idxTasksStatus,
}
