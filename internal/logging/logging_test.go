package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := With(context.Background(), logger)
	assert.Same(t, logger, From(ctx))

	ctx = WithAttrs(ctx, "scene", "abc")
	From(ctx).Info("hello")
	assert.Contains(t, buf.String(), "scene=abc")

	assert.NotNil(t, From(nil))
	assert.NotNil(t, From(context.Background()))
}

func TestSetupInstallsGlobal(t *testing.T) {
	logger, closeFn, err := Setup(&Config{Level: slog.LevelDebug, Dir: t.TempDir()})
	require.NoError(t, err)
	defer closeFn()

	assert.Same(t, logger, L())
}
