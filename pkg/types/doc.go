// Package types defines the Task entity, the TaskTable and Backend interfaces,
// the validation error shape, and the standard errors shared by the taskboard
// storage backends, server, and client.
package types
