// Package logging builds the kratos logger shared by the server, the access
// layer, and the CLI.
package logging

import (
	"io"

	"github.com/go-kratos/kratos/v2/log"
)

// ServiceName is attached to every log line.
const ServiceName = "taskboard"

// New returns a logger writing key/value lines to w, dropping records below
// level. Unknown level names fall back to info.
func New(w io.Writer, level string) log.Logger {
	filtered := log.NewFilter(log.NewStdLogger(w), log.FilterLevel(ParseLevel(level)))
	return log.With(filtered,
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.name", ServiceName,
	)
}

// ParseLevel maps a config value to a kratos level.
func ParseLevel(level string) log.Level {
	if level == "" {
		return log.LevelInfo
	}
	return log.ParseLevel(level)
}

// Discard returns a logger that drops everything. Used by tests and by
// client commands that print their own output.
func Discard() log.Logger {
	return log.NewStdLogger(io.Discard)
}
