// Package devlog builds the CLI logger. Builds tagged dev also forward every
// record to a local log collector listening on a unix socket.
package devlog

import (
	"io"
	"log/slog"
)

// AppName identifies this tool's records in the collector.
const AppName = "vfsgraph"

// New returns a text logger writing to w at level, wrapped for the current build.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(Wrap(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
