package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/config"
	"SketchBoard/internal/element"
	"SketchBoard/internal/state"
	"SketchBoard/internal/store"
	"SketchBoard/internal/store/sqlite"
)

func TestListScenes(t *testing.T) {
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "board.db"))
	require.NoError(t, err)
	defer repo.Close()

	scene := state.NewScene(nil)
	scene.SetAppState(func(a *state.AppState) { a.Name = "retro" })
	scene.AddElements(element.NewRectangle(nil, element.Options{}))
	ctx := context.Background()
	require.NoError(t, repo.SaveScene(ctx, store.Capture("s1", scene)))

	var out bytes.Buffer
	require.NoError(t, listScenes(ctx, repo, &out))
	assert.Contains(t, out.String(), "s1\tretro\t1 elements")

	require.NoError(t, repo.DeleteScene(ctx, "s1"))
	out.Reset()
	require.NoError(t, listScenes(ctx, repo, &out))
	assert.Empty(t, out.String())
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketchboard", "config.yaml")
	require.NoError(t, initConfig(path))

	cfg, _, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, element.DefaultStyle(), cfg.Style)

	_, err = os.Stat(path)
	require.NoError(t, err)
	assert.Error(t, initConfig(path), "existing config is not overwritten")
}
