// Package validate holds the field rules applied to task create and update
// payloads before anything reaches storage.
package validate

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// Field names as they appear in JSON payloads and error maps.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
)

// rule checks a present value and returns a message, or "" when it passes.
type rule func(field, value string) string

func required(field, value string) string {
	if strings.TrimSpace(value) == "" {
		return fmt.Sprintf("The %s field is required.", field)
	}
	return ""
}

func inStatuses(field, value string) string {
	if value != "" && !types.ValidStatus(value) {
		return fmt.Sprintf("The selected %s is invalid.", field)
	}
	return ""
}

// rules lists the constraints per field in the order errors are reported.
var rules = []struct {
	field string
	rules []rule
}{
	{FieldTitle, []rule{required}},
	{FieldDescription, []rule{required}},
	{FieldStatus, []rule{required, inStatuses}},
}

// Create checks a full payload. Every field is required.
func Create(f types.TaskFields) error {
	values := map[string]*string{
		FieldTitle:       &f.Title,
		FieldDescription: &f.Description,
		FieldStatus:      &f.Status,
	}
	return check(values)
}

// Update checks a partial payload. Absent fields are skipped; supplied fields
// obey the same rules as on create.
func Update(p types.TaskPatch) error {
	values := map[string]*string{
		FieldTitle:       p.Title,
		FieldDescription: p.Description,
		FieldStatus:      p.Status,
	}
	return check(values)
}

// check returns a *types.ValidationError when any supplied value fails, or
// nil. The first failing rule per field wins.
func check(values map[string]*string) error {
	verr := types.NewValidationError()
	for _, fr := range rules {
		v := values[fr.field]
		if v == nil {
			continue
		}
		for _, r := range fr.rules {
			if msg := r(fr.field, *v); msg != "" {
				verr.Add(fr.field, msg)
				break
			}
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}
