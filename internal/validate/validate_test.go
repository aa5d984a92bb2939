package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *types.ValidationError
	require.True(t, errors.As(err, &verr), "expected *types.ValidationError, got %v", err)
	return verr.Fields
}

func TestCreate(t *testing.T) {
	valid := types.TaskFields{Title: "Buy milk", Description: "2%", Status: types.StatusToDo}

	tests := []struct {
		name   string
		mutate func(f *types.TaskFields)
		want   map[string][]string
	}{
		{
			name:   "valid payload",
			mutate: func(f *types.TaskFields) {},
		},
		{
			name:   "missing title",
			mutate: func(f *types.TaskFields) { f.Title = "" },
			want:   map[string][]string{"title": {"The title field is required."}},
		},
		{
			name:   "missing description",
			mutate: func(f *types.TaskFields) { f.Description = "" },
			want:   map[string][]string{"description": {"The description field is required."}},
		},
		{
			name:   "missing status",
			mutate: func(f *types.TaskFields) { f.Status = "" },
			want:   map[string][]string{"status": {"The status field is required."}},
		},
		{
			name:   "whitespace-only title",
			mutate: func(f *types.TaskFields) { f.Title = "   " },
			want:   map[string][]string{"title": {"The title field is required."}},
		},
		{
			name:   "whitespace-only description and status",
			mutate: func(f *types.TaskFields) { f.Description = "\t\n"; f.Status = " " },
			want: map[string][]string{
				"description": {"The description field is required."},
				"status":      {"The status field is required."},
			},
		},
		{
			name:   "status outside enumeration",
			mutate: func(f *types.TaskFields) { f.Status = "Test" },
			want:   map[string][]string{"status": {"The selected status is invalid."}},
		},
		{
			name:   "All is not a status",
			mutate: func(f *types.TaskFields) { f.Status = types.StatusAll },
			want:   map[string][]string{"status": {"The selected status is invalid."}},
		},
		{
			name:   "everything missing",
			mutate: func(f *types.TaskFields) { *f = types.TaskFields{} },
			want: map[string][]string{
				"title":       {"The title field is required."},
				"description": {"The description field is required."},
				"status":      {"The status field is required."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			err := Create(f)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, types.ErrValidation)
			assert.Equal(t, tt.want, fieldErrors(t, err))
		})
	}
}

func TestUpdate(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name  string
		patch types.TaskPatch
		want  map[string][]string
	}{
		{
			name:  "empty patch passes",
			patch: types.TaskPatch{},
		},
		{
			name:  "status only",
			patch: types.TaskPatch{Status: str(types.StatusCompleted)},
		},
		{
			name:  "supplied empty title fails",
			patch: types.TaskPatch{Title: str("")},
			want:  map[string][]string{"title": {"The title field is required."}},
		},
		{
			name:  "supplied whitespace-only description fails",
			patch: types.TaskPatch{Description: str("  \t")},
			want:  map[string][]string{"description": {"The description field is required."}},
		},
		{
			name:  "supplied invalid status fails",
			patch: types.TaskPatch{Title: str("ok"), Status: str("Done")},
			want:  map[string][]string{"status": {"The selected status is invalid."}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Update(tt.patch)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, fieldErrors(t, err))
		})
	}
}
