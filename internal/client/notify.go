package client

import "context"

// User-facing messages emitted by the Store.
const (
	MsgCreated        = "Task created successfully!"
	MsgCreateRejected = "Please fill up all the fields"
	MsgDeleted        = "Your task has been deleted."
	MsgUpdated        = "Your task has been updated."

	ConfirmDeleteTitle = "Are you sure?"
	ConfirmDeleteText  = "You won't be able to revert this!"
)

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(ctx context.Context, title, text string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, title, text string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, title, text string) (bool, error) {
	return f(ctx, title, text)
}

// AlwaysConfirm answers yes without asking.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string, string) (bool, error) {
	return true, nil
})

// neverConfirm answers no. It is the Store default so nothing is deleted
// without an explicit Confirmer.
var neverConfirm = ConfirmFunc(func(context.Context, string, string) (bool, error) {
	return false, nil
})

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
