//go:build !dev

package devlog

import "log/slog"

// Wrap returns next unchanged outside dev builds.
func Wrap(next slog.Handler) slog.Handler {
	return next
}
