package types

import "strings"

// Task statuses. StatusAll is a filter value only and is never persisted.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusAll        = "All"
)

// Statuses lists the persisted status values in display order.
var Statuses = []string{StatusToDo, StatusInProgress, StatusCompleted}

// validStatuses is the set of recognized status values.
var validStatuses = map[string]bool{
	StatusToDo:       true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// ValidStatus reports whether s is one of the persisted status values.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Task represents a unit of tracked work.
type Task struct {
	ID          int64  `json:"id"`          // Server-assigned, immutable.
	Title       string `json:"title"`       // Non-empty.
	Description string `json:"description"` // Non-empty.
	Status      string `json:"status"`      // One of the Status constants.
}

// TaskFields carries the writable fields of a new task.
type TaskFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Trimmed returns f with surrounding whitespace removed from every field.
func (f TaskFields) Trimmed() TaskFields {
	return TaskFields{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Status:      strings.TrimSpace(f.Status),
	}
}

// TaskPatch carries a partial update. A nil field is left unchanged.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// IsEmpty reports whether the patch supplies no fields.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Apply overwrites the supplied fields on t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// Trimmed returns p with surrounding whitespace removed from every supplied
// field. Absent fields stay nil.
func (p TaskPatch) Trimmed() TaskPatch {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	return TaskPatch{Title: trim(p.Title), Description: trim(p.Description), Status: trim(p.Status)}
}

// PatchFrom returns a patch that replaces all three writable fields.
func PatchFrom(f TaskFields) TaskPatch {
	return TaskPatch{Title: &f.Title, Description: &f.Description, Status: &f.Status}
}
