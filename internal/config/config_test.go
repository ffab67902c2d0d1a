package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/element"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultPort, cfg.Network.Port)
	assert.True(t, cfg.Network.MDNSEnabled())
	assert.Equal(t, "./sketchboard.db", cfg.Database.Path)
	assert.Equal(t, element.DefaultStyle(), cfg.Style)

	lc, err := cfg.LoggingConfig()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lc.Level)
	assert.True(t, lc.Compress)
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
style:
  stroke_color: "#e03131"
  roundness: sharp
  font_size: 28
network:
  port: 9000
  mdns: false
logging:
  level: debug
  compress: false
`), 0o644))

	cfg, got, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "#e03131", cfg.Style.StrokeColor)
	assert.Equal(t, element.RoundnessSharp, cfg.Style.Roundness)
	assert.Equal(t, 28.0, cfg.Style.FontSize)
	assert.Equal(t, element.DefaultStyle().BackgroundColor, cfg.Style.BackgroundColor)
	assert.Equal(t, element.DefaultStyle().Roughness, cfg.Style.Roughness)
	require.NotNil(t, cfg.Style.EndArrowhead)
	assert.Equal(t, 9000, cfg.Network.Port)
	assert.False(t, cfg.Network.MDNSEnabled())

	lc, err := cfg.LoggingConfig()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lc.Level)
	assert.False(t, lc.Compress)
}

func TestLoadFromPathErrors(t *testing.T) {
	dir := t.TempDir()
	_, _, err := LoadFromPath(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("logging:\n  level: loud\n"), 0o644))
	_, _, err = LoadFromPath(bad)
	assert.Error(t, err)
}

func TestLoadUsesEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network:\n  port: 7000\n"), 0o644))
	t.Setenv(EnvConfigPath, path)

	cfg, got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, 7000, cfg.Network.Port)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Network.Name = "studio"
	require.NoError(t, cfg.Save(path))

	loaded, _, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "studio", loaded.Network.Name)
	assert.Equal(t, cfg.Style, loaded.Style)
}
