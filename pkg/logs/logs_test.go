package logs

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	}}

	logger := slog.New(h).With("component", "test")
	logger.Info("booked")
	logger.Error("failed")

	assert.Contains(t, debugBuf.String(), "booked")
	assert.Contains(t, debugBuf.String(), "failed")
	assert.NotContains(t, errorBuf.String(), "booked")
	assert.Contains(t, errorBuf.String(), "component=test")

	require.True(t, h.Enabled(context.Background(), slog.LevelDebug))
}
