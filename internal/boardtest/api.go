// Package boardtest drives a scene the way board tests do: build elements
// from the scene's current style, change the selection, drop files and run
// actions.
package boardtest

import (
	"fmt"

	"SketchBoard/internal/action"
	"SketchBoard/internal/codec"
	"SketchBoard/internal/element"
	"SketchBoard/internal/files"
	"SketchBoard/internal/state"
)

// API wraps one scene and its action manager.
type API struct {
	Scene   *state.Scene
	Actions *action.Manager
	// Fixtures is the directory relative file paths resolve against.
	Fixtures string
}

// New creates an API over a fresh scene. A nil style means element.DefaultStyle.
func New(style *element.Style) *API {
	return Wrap(state.NewScene(style))
}

// Wrap creates an API over an existing scene.
func Wrap(s *state.Scene) *API {
	return &API{Scene: s, Actions: action.NewManager(s)}
}

// UpdateScene applies u to the scene.
func (a *API) UpdateScene(u state.SceneUpdate) {
	a.Scene.UpdateScene(u)
}

// SetAppState edits the editor state.
func (a *API) SetAppState(update func(*state.AppState)) {
	a.Scene.SetAppState(update)
}

// SetElements replaces the scene's elements.
func (a *API) SetElements(els ...element.Element) {
	a.Scene.SetElements(els)
}

// SetSelectedElements makes els the selection.
func (a *API) SetSelectedElements(els ...element.Element) {
	a.Scene.SetSelectedElements(els...)
}

// UpdateElement mutates el in place, bumping its version.
func UpdateElement[T element.Element](el T, update func(T)) T {
	return element.Mutate(el, update)
}

// GetSelectedElements returns the selection.
func (a *API) GetSelectedElements(includeBoundText, includeElementsInFrames bool) []element.Element {
	return a.Scene.SelectedElements(state.SelectionOptions{
		IncludeBoundText:        includeBoundText,
		IncludeElementsInFrames: includeElementsInFrames,
	})
}

// GetSelectedElement returns the only selected element, or a
// *state.PreconditionError.
func (a *API) GetSelectedElement() (element.Element, error) {
	return a.Scene.SelectedElement()
}

// GetUndoStack returns the undo history.
func (a *API) GetUndoStack() []state.HistoryEntry {
	return a.Scene.UndoStack()
}

// GetRedoStack returns the redo history.
func (a *API) GetRedoStack() []state.HistoryEntry {
	return a.Scene.RedoStack()
}

// GetSnapshot returns deep copies of the scene's elements.
func (a *API) GetSnapshot() []element.Element {
	return a.Scene.Snapshot()
}

// ClearSelection empties the selection and checks that it is empty.
func (a *API) ClearSelection() error {
	a.Scene.ClearSelection()
	if n := len(a.GetSelectedElements(false, false)); n != 0 {
		return &state.PreconditionError{Subject: "selected elements after clearing", Expected: 0, Got: n}
	}
	return nil
}

// CreateElement builds an element styled by the scene's current style. It
// does not add the element to the scene.
func (a *API) CreateElement(kind element.Kind, opts element.Options) (element.Element, error) {
	return element.New(kind, a.Scene.Style(), opts)
}

// ReadFile reads a fixture.
func (a *API) ReadFile(path string) ([]byte, error) {
	return files.ReadFile(a.Fixtures, path)
}

// LoadFile reads a fixture with its MIME type.
func (a *API) LoadFile(path string) (*files.File, error) {
	return files.LoadFile(a.Fixtures, path)
}

// Drop releases f over the canvas origin.
func (a *API) Drop(f *files.File) ([]element.Element, error) {
	return codec.Drop(a.Scene, codec.DropEvent{Files: []*files.File{f}})
}

// ExecuteAction runs a registered action by name.
func (a *API) ExecuteAction(name string) error {
	if err := a.Actions.ExecuteByName(name); err != nil {
		return fmt.Errorf("boardtest: %w", err)
	}
	return nil
}
