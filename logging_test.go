package opts

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLoggerRecordsShows(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	engine := New(testEnvironment(), WithSlog(logger))

	require.NoError(t, engine.Show(context.Background(), ShowRequest{Option: "status"}, &BufferSink{}))
	require.Error(t, engine.Show(context.Background(), ShowRequest{Option: "nosuch"}, &BufferSink{}))
	require.NoError(t, engine.Show(context.Background(), ShowRequest{Filter: "user"}, &BufferSink{}))

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], `"msg":"show-options"`)
	assert.Contains(t, lines[0], `"scope":"session/main"`)
	assert.Contains(t, lines[0], `"option":"status"`)
	assert.Contains(t, lines[1], `"msg":"show-options failed"`)
	assert.Contains(t, lines[1], `"kind":"unknown_option"`)
	assert.Contains(t, lines[2], `"msg":"filter evaluated"`)
	assert.Contains(t, lines[4], `"mode":"all"`)
	assert.Contains(t, lines[4], `"lines":1`)
}

func TestShowLoggerFunc(t *testing.T) {
	var events []ShowLogEvent
	engine := New(testEnvironment(), WithShowLogger(ShowLoggerFunc(func(event ShowLogEvent) {
		events = append(events, event)
	})))

	require.NoError(t, engine.Show(context.Background(), ShowRequest{Scope: ScopeRequest{Kind: ScopeServer}}, &BufferSink{}))
	require.Len(t, events, 1)
	assert.Equal(t, "all", events[0].Mode)
	assert.Equal(t, 5, events[0].Lines)
	assert.Equal(t, "server", events[0].Scope.Identifier())
	assert.NoError(t, events[0].Err)
}

func TestNilLoggersFallBackToNoop(t *testing.T) {
	engine := New(testEnvironment(), WithShowLogger(nil), WithEvaluatorLogger(nil))
	assert.NotPanics(t, func() {
		_ = engine.Show(context.Background(), ShowRequest{Filter: "true"}, &BufferSink{})
	})

	var nilFunc ShowLoggerFunc
	assert.NotPanics(t, func() { nilFunc.LogShow(ShowLogEvent{}) })
}
