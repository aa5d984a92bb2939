package client

import (
	"context"
	"errors"
	"sync"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// ErrDeleteSettled is returned when a PendingDelete is used after it was
// confirmed or cancelled.
var ErrDeleteSettled = errors.New("delete already confirmed or cancelled")

// errorsKeyRequest holds the message of a create failure that carried no
// field errors.
const errorsKeyRequest = "request"

// Snapshot is a copy of the Store state handed to observers.
type Snapshot struct {
	Tasks  []types.Task
	Draft  types.TaskFields
	Errors map[string][]string
	Status string
}

// Store holds a local task list and reconciles it with each server response.
// Network calls run without the lock; only reconciliation holds it.
type Store struct {
	api       API
	notifier  Notifier
	confirmer Confirmer

	mu        sync.Mutex
	tasks     []types.Task
	draft     types.TaskFields
	errors    map[string][]string
	status    string
	observers []func(Snapshot)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithNotifier sets where user-facing messages go.
func WithNotifier(n Notifier) StoreOption {
	return func(s *Store) { s.notifier = n }
}

// WithConfirmer sets how DeleteTask asks for confirmation.
func WithConfirmer(c Confirmer) StoreOption {
	return func(s *Store) { s.confirmer = c }
}

// NewStore returns an empty store. The draft status starts at "To Do" and the
// filter at "All".
func NewStore(api API, opts ...StoreOption) *Store {
	s := &Store{
		api:       api,
		notifier:  nopNotifier{},
		confirmer: neverConfirm,
		tasks:     []types.Task{},
		draft:     types.TaskFields{Status: types.StatusToDo},
		errors:    map[string][]string{},
		status:    types.StatusAll,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// OnChange registers fn to run after every state change.
func (s *Store) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Tasks returns a copy of the local list.
func (s *Store) Tasks() []types.Task {
	return s.Snapshot().Tasks
}

// Draft returns the task being composed.
func (s *Store) Draft() types.TaskFields {
	return s.Snapshot().Draft
}

// Errors returns the last create failure, keyed by field.
func (s *Store) Errors() map[string][]string {
	return s.Snapshot().Errors
}

// Status returns the selected filter status.
func (s *Store) Status() string {
	return s.Snapshot().Status
}

// SetTitle sets the draft title.
func (s *Store) SetTitle(title string) {
	s.mutate(func() { s.draft.Title = title })
}

// SetDescription sets the draft description.
func (s *Store) SetDescription(desc string) {
	s.mutate(func() { s.draft.Description = desc })
}

// SetDraftStatus sets the draft status.
func (s *Store) SetDraftStatus(status string) {
	s.mutate(func() { s.draft.Status = status })
}

// SetStatus selects the status FilterTask sends.
func (s *Store) SetStatus(status string) {
	s.mutate(func() { s.status = status })
}

// ResetTask clears the draft title and description. The status is kept.
func (s *Store) ResetTask() {
	s.mutate(s.resetDraftLocked)
}

// FetchTasks replaces the local list with the server's.
func (s *Store) FetchTasks(ctx context.Context) error {
	list, err := s.api.List(ctx)
	if err != nil {
		return err
	}
	s.mutate(func() { s.tasks = nonNil(list) })
	return nil
}

// FilterTask asks the server for tasks with the selected status and replaces
// the local list with the answer.
func (s *Store) FilterTask(ctx context.Context) error {
	status := s.Status()
	list, err := s.api.Filter(ctx, status)
	if err != nil {
		return err
	}
	s.mutate(func() { s.tasks = nonNil(list) })
	return nil
}

// CreateTask sends the draft. On success the task is appended and the draft
// title and description are cleared. On failure the error map is stored and
// the list is left alone.
func (s *Store) CreateTask(ctx context.Context) (*types.Task, error) {
	draft := s.Draft()

	task, err := s.api.Create(ctx, draft)
	if err != nil {
		var verr *types.ValidationError
		fields := map[string][]string{errorsKeyRequest: {err.Error()}}
		msg := err.Error()
		if errors.As(err, &verr) {
			fields = copyErrors(verr.Fields)
			msg = MsgCreateRejected
		}
		s.mutate(func() { s.errors = fields })
		s.notifier.Error(msg)
		return nil, err
	}

	s.mutate(func() {
		s.tasks = append(s.tasks, *task)
		s.resetDraftLocked()
		s.errors = map[string][]string{}
	})
	s.notifier.Success(MsgCreated)
	return task, nil
}

// UpdateTask sends a partial update and replaces the local task with the
// same id, appending it when absent. The draft is reset on success.
func (s *Store) UpdateTask(ctx context.Context, id int64, patch types.TaskPatch) (*types.Task, error) {
	task, err := s.api.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.mutate(func() {
		replaced := false
		for i := range s.tasks {
			if s.tasks[i].ID == task.ID {
				s.tasks[i] = *task
				replaced = true
				break
			}
		}
		if !replaced {
			s.tasks = append(s.tasks, *task)
		}
		s.resetDraftLocked()
	})
	s.notifier.Success(MsgUpdated)
	return task, nil
}

// DeleteTask asks the Confirmer and deletes on a yes. It reports whether the
// task was deleted.
func (s *Store) DeleteTask(ctx context.Context, id int64) (bool, error) {
	pending := s.RequestDelete(id)

	ok, err := s.confirmer.Confirm(ctx, ConfirmDeleteTitle, ConfirmDeleteText)
	if err != nil {
		pending.Cancel()
		return false, err
	}
	if !ok {
		pending.Cancel()
		return false, nil
	}
	if err := pending.Confirm(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// PendingDelete is a delete waiting on the user's decision.
type PendingDelete struct {
	store *Store
	id    int64

	mu      sync.Mutex
	settled bool
}

// RequestDelete starts the two-step delete for id. Nothing is sent until
// Confirm is called.
func (s *Store) RequestDelete(id int64) *PendingDelete {
	return &PendingDelete{store: s, id: id}
}

// ID returns the task id awaiting deletion.
func (p *PendingDelete) ID() int64 {
	return p.id
}

// Confirm sends the delete and removes the task from the local list.
func (p *PendingDelete) Confirm(ctx context.Context) error {
	if !p.settle() {
		return ErrDeleteSettled
	}

	s := p.store
	if err := s.api.Delete(ctx, p.id); err != nil {
		return err
	}

	s.mutate(func() {
		kept := s.tasks[:0:0]
		for _, t := range s.tasks {
			if t.ID != p.id {
				kept = append(kept, t)
			}
		}
		s.tasks = kept
	})
	s.notifier.Success(MsgDeleted)
	return nil
}

// Cancel abandons the delete. Later calls to Confirm fail.
func (p *PendingDelete) Cancel() {
	p.settle()
}

func (p *PendingDelete) settle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.settled {
		return false
	}
	p.settled = true
	return true
}

// mutate applies fn under the lock and then notifies observers.
func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	observers := append([]func(Snapshot){}, s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
}

func (s *Store) resetDraftLocked() {
	s.draft.Title = ""
	s.draft.Description = ""
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Tasks:  append([]types.Task{}, s.tasks...),
		Draft:  s.draft,
		Errors: copyErrors(s.errors),
		Status: s.status,
	}
}

func copyErrors(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func nonNil(list []types.Task) []types.Task {
	if list == nil {
		return []types.Task{}
	}
	return list
}
