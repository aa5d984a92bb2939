package jsonl

import (
	"encoding/json"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// ReadTasks reads a JSONL import file into TaskFields. Lines that are not
// valid JSON are skipped; an "id" field, if present, is ignored because ids
// are always assigned by the store. Lines that are valid JSON but do not
// decode into a task object are reported in skipped by record index.
func ReadTasks(path string) (fields []types.TaskFields, skipped []int, err error) {
	records, err := Read(path)
	if err != nil {
		return nil, nil, err
	}

	for i, rec := range records {
		var f types.TaskFields
		if err := json.Unmarshal(rec, &f); err != nil {
			skipped = append(skipped, i)
			continue
		}
		fields = append(fields, f)
	}
	return fields, skipped, nil
}
