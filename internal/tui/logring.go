package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// maxLogs bounds the footer log.
const maxLogs = 10

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   slog.Level
}

// logRing keeps the most recent log entries. It is shared by the Model
// copies Bubble Tea makes and written from worker goroutines.
type logRing struct {
	mu      sync.Mutex
	entries []LogEntry
}

func (r *logRing) add(e LogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	if len(r.entries) > maxLogs {
		r.entries = r.entries[len(r.entries)-maxLogs:]
	}
}

func (r *logRing) snapshot() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// ringHandler is a slog.Handler that renders records into a logRing.
type ringHandler struct {
	ring  *logRing
	level slog.Leveler
	attrs []slog.Attr
}

func newRingHandler(ring *logRing, level slog.Leveler) *ringHandler {
	return &ringHandler{ring: ring, level: level}
}

func (h *ringHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ringHandler) Handle(_ context.Context, rec slog.Record) error {
	var b strings.Builder
	b.WriteString(rec.Message)
	write := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	rec.Attrs(write)
	h.ring.add(LogEntry{Message: b.String(), Level: rec.Level})
	return nil
}

func (h *ringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

// Groups only prefix keys in a text log; the footer has no room for them.
func (h *ringHandler) WithGroup(string) slog.Handler {
	return h
}
