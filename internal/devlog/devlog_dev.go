//go:build dev

package devlog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"
)

const defaultSocket = "/tmp/mcplogd.sock"

type entry struct {
	App       string         `json:"app"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Wrap tees every record handled by next to the collector socket.
func Wrap(next slog.Handler) slog.Handler {
	return &socketHandler{next: next, socket: defaultSocket}
}

type socketHandler struct {
	next   slog.Handler
	socket string
	attrs  []slog.Attr
}

func (h *socketHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *socketHandler) Handle(ctx context.Context, record slog.Record) error {
	metadata := make(map[string]any, len(h.attrs)+record.NumAttrs())
	for _, attr := range h.attrs {
		metadata[attr.Key] = attr.Value.Any()
	}
	record.Attrs(func(attr slog.Attr) bool {
		metadata[attr.Key] = attr.Value.Any()
		return true
	})
	send(h.socket, entry{
		App:       AppName,
		Level:     strings.ToLower(record.Level.String()),
		Message:   record.Message,
		Timestamp: record.Time.UTC().Format(time.RFC3339Nano),
		Metadata:  metadata,
	})

	return h.next.Handle(ctx, record)
}

func (h *socketHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &socketHandler{
		next:   h.next.WithAttrs(attrs),
		socket: h.socket,
		attrs:  append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *socketHandler) WithGroup(name string) slog.Handler {
	return &socketHandler{next: h.next.WithGroup(name), socket: h.socket, attrs: h.attrs}
}

// send drops the entry when no collector is listening.
func send(socket string, e entry) {
	conn, err := net.Dial("unix", socket)
	if err != nil {
		return
	}
	defer conn.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	fmt.Fprintf(conn, "%s\n", data)
}
