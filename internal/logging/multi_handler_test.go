package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	level    slog.Level
	messages []string
	err      error
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	h.messages = append(h.messages, record.Message)
	return h.err
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func record(level slog.Level, msg string) slog.Record {
	return slog.NewRecord(time.Now(), level, msg, 0)
}

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	all := &recordingHandler{level: slog.LevelInfo}
	errOnly := &recordingHandler{level: slog.LevelError}
	m := NewMultiHandler(all, errOnly)

	ctx := context.Background()
	require.NoError(t, m.Handle(ctx, record(slog.LevelInfo, "info message")))
	require.NoError(t, m.Handle(ctx, record(slog.LevelError, "error message")))

	assert.Equal(t, []string{"info message", "error message"}, all.messages)
	assert.Equal(t, []string{"error message"}, errOnly.messages)
}

func TestMultiHandlerDeliversPastFailingSink(t *testing.T) {
	broken := &recordingHandler{level: slog.LevelInfo, err: errors.New("sink down")}
	healthy := &recordingHandler{level: slog.LevelInfo}
	m := NewMultiHandler(broken, healthy)

	err := m.Handle(context.Background(), record(slog.LevelInfo, "message"))
	assert.Error(t, err)
	assert.Equal(t, []string{"message"}, healthy.messages)
}

func TestMultiHandlerEnabled(t *testing.T) {
	m := NewMultiHandler(
		&recordingHandler{level: slog.LevelWarn},
		&recordingHandler{level: slog.LevelError},
	)
	ctx := context.Background()

	assert.False(t, m.Enabled(ctx, slog.LevelInfo))
	assert.True(t, m.Enabled(ctx, slog.LevelWarn))
	assert.True(t, m.Enabled(ctx, slog.LevelError))
}
