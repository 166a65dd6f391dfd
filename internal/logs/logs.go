// Package logs builds the driver's logger.
package logs

import (
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
)

// New returns a logger writing text records to w and, when jsonOut is not
// nil, the same records as JSON lines to jsonOut.
func New(w io.Writer, jsonOut io.Writer, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{slog.NewTextHandler(w, opts)}
	if jsonOut != nil {
		handlers = append(handlers, slog.NewJSONHandler(jsonOut, opts))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}
