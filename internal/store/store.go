// Package store defines scene persistence.
package store

import (
	"context"
	"errors"
	"time"

	"SketchBoard/internal/element"
	"SketchBoard/internal/state"
)

// ErrNotFound is returned when a scene id is not stored.
var ErrNotFound = errors.New("scene not found")

// Store persists whole scenes.
type Store interface {
	SaveScene(ctx context.Context, scene *Scene) error
	LoadScene(ctx context.Context, id string) (*Scene, error)
	ListScenes(ctx context.Context) ([]SceneInfo, error)
	DeleteScene(ctx context.Context, id string) error

	// Close releases resources
	Close() error
}

// Scene is a stored scene. Elements keep their order and their deletion flags.
type Scene struct {
	ID       string
	Name     string
	AppState state.AppState
	Elements []element.Element
	Files    []state.BinaryFile
	Updated  time.Time
}

// SceneInfo summarizes a stored scene for listings.
type SceneInfo struct {
	ID       string
	Name     string
	Elements int
	Updated  time.Time
}

// Capture copies the live state of s into a storable Scene.
func Capture(id string, s *state.Scene) *Scene {
	app := s.AppState()
	files := s.Files()
	out := &Scene{
		ID:       id,
		Name:     app.Name,
		AppState: app,
		Elements: s.Snapshot(),
		Files:    make([]state.BinaryFile, 0, len(files)),
		Updated:  time.Now(),
	}
	for _, f := range files {
		out.Files = append(out.Files, f)
	}
	return out
}

// Restore loads sc into s, replacing its elements and editor state.
func (sc *Scene) Restore(s *state.Scene) {
	app := sc.AppState.Clone()
	s.UpdateScene(state.SceneUpdate{
		Elements: element.CloneAll(sc.Elements),
		AppState: &app,
	})
	s.AddFiles(sc.Files...)
}
