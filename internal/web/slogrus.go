package web

import (
	"context"
	"log/slog"

	"github.com/sirupsen/logrus"
)

var _ slog.Handler = &LogrusHandler{}

// LogrusHandler is a slog.Handler that forwards records to a logrus logger.
// The rendering engine logs through a context-carried *slog.Logger; this is
// what lands those records in the application log.
type LogrusHandler struct {
	entry  *logrus.Entry
	groups []string
}

// NewLogrusHandler returns a LogrusHandler forwarding to the passed logger.
func NewLogrusHandler(log *logrus.Logger) *LogrusHandler {
	return &LogrusHandler{entry: logrus.NewEntry(log)}
}

func slogLevel(level slog.Level) logrus.Level {
	switch {
	case level >= slog.LevelError:
		return logrus.ErrorLevel
	case level >= slog.LevelWarn:
		return logrus.WarnLevel
	case level >= slog.LevelInfo:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

func (h *LogrusHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.entry.Logger.IsLevelEnabled(slogLevel(level))
}

func (h *LogrusHandler) Handle(_ context.Context, record slog.Record) error {
	entry := h.entry
	record.Attrs(func(attr slog.Attr) bool {
		entry = entry.WithField(h.fieldName(attr.Key), attr.Value.Any())
		return true
	})
	entry.Log(slogLevel(record.Level), record.Message)
	return nil
}

func (h *LogrusHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	entry := h.entry
	for _, attr := range attrs {
		entry = entry.WithField(h.fieldName(attr.Key), attr.Value.Any())
	}
	return &LogrusHandler{entry: entry, groups: h.groups}
}

func (h *LogrusHandler) WithGroup(name string) slog.Handler {
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)
	return &LogrusHandler{entry: h.entry, groups: groups}
}

func (h *LogrusHandler) fieldName(key string) string {
	name := key
	for pos := len(h.groups) - 1; pos >= 0; pos-- {
		name = h.groups[pos] + "." + name
	}
	return name
}
