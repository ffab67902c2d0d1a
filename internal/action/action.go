// Package action runs named edits against a scene.
package action

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"SketchBoard/internal/element"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
)

var (
	// ErrUnknownAction is returned for names no action is registered under.
	ErrUnknownAction = errors.New("unknown action")
	// ErrNotApplicable is returned when an action's predicate rejects the scene.
	ErrNotApplicable = errors.New("action not applicable")
)

// Result is what an action wants written back to the scene.
// A nil Elements or AppState leaves that part untouched.
type Result struct {
	Elements []element.Element
	AppState *state.AppState
	// Capture records the change in history.
	Capture bool
}

// Action is a named scene edit. Perform receives deep copies and may modify
// them freely.
type Action struct {
	Name string
	// Predicate, when set, must accept the scene for Perform to run.
	Predicate func(els []element.Element, app state.AppState) bool
	Perform   func(els []element.Element, app state.AppState) (Result, error)
}

// Manager holds the registered actions of one scene.
type Manager struct {
	scene *state.Scene

	mu      sync.RWMutex
	actions map[string]Action
}

// NewManager creates a manager with the built-in actions registered.
func NewManager(scene *state.Scene) *Manager {
	m := &Manager{scene: scene, actions: make(map[string]Action)}
	for _, a := range Builtins() {
		m.Register(a)
	}
	return m
}

// Register adds or replaces an action.
func (m *Manager) Register(a Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions[a.Name] = a
}

// Action looks up a registered action.
func (m *Manager) Action(name string) (Action, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.actions[name]
	return a, ok
}

// Names lists the registered actions in alphabetical order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.actions))
	for name := range m.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecuteByName runs the action registered under name.
func (m *Manager) ExecuteByName(name string) error {
	a, ok := m.Action(name)
	if !ok {
		return fmt.Errorf("execute %q: %w", name, ErrUnknownAction)
	}
	return m.Execute(a)
}

// Execute runs a against the scene and applies its result.
func (m *Manager) Execute(a Action) error {
	els := m.scene.Snapshot()
	app := m.scene.AppState()

	if a.Predicate != nil && !a.Predicate(els, app) {
		return fmt.Errorf("execute %q: %w", a.Name, ErrNotApplicable)
	}
	res, err := a.Perform(els, app)
	if err != nil {
		return fmt.Errorf("execute %q: %w", a.Name, err)
	}

	m.scene.UpdateScene(state.SceneUpdate{
		Elements: res.Elements,
		AppState: res.AppState,
		Capture:  res.Capture,
	})
	logging.L().Debug("action executed", "action", a.Name, "capture", res.Capture)
	return nil
}
