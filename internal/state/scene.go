package state

import (
	"fmt"
	"sync"
	"time"

	"SketchBoard/internal/element"
	"SketchBoard/internal/logging"
)

// maxHistory bounds each of the undo and redo stacks.
const maxHistory = 100

// Scene is the in-memory document: the ordered element list, the editor
// state, binary files and history. It is safe for concurrent use.
type Scene struct {
	mu       sync.RWMutex
	elements []element.Element
	appState AppState
	files    map[string]BinaryFile
	undo     []HistoryEntry
	redo     []HistoryEntry
	clock    Clock

	// OnChange, when set, is called after each captured change with copies
	// of the elements that changed. Set it before the scene is shared.
	OnChange func(changed []element.Element)
}

// NewScene creates an empty scene. A nil style means element.DefaultStyle.
func NewScene(style *element.Style) *Scene {
	app := DefaultAppState()
	if style != nil {
		app.Style = style.Copy()
	}
	return &Scene{
		elements: make([]element.Element, 0),
		appState: app,
		files:    make(map[string]BinaryFile),
	}
}

// Style returns a snapshot of the ambient style for the element factory.
func (s *Scene) Style() *element.Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	style := s.appState.Style.Copy()
	return &style
}

// AppState returns a copy of the editor state.
func (s *Scene) AppState() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appState.Clone()
}

// SetAppState edits the editor state in place. It is not recorded in history.
func (s *Scene) SetAppState(update func(*AppState)) {
	s.mu.Lock()
	update(&s.appState)
	s.mu.Unlock()
}

// Elements returns the live elements in scene order, deleted ones included.
func (s *Scene) Elements() []element.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]element.Element(nil), s.elements...)
}

// NonDeletedElements returns the live elements that are not soft-deleted.
func (s *Scene) NonDeletedElements() []element.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nonDeleted(s.elements)
}

// Snapshot returns deep copies of every element.
func (s *Scene) Snapshot() []element.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return element.CloneAll(s.elements)
}

// ElementByID returns the live element with the given id.
func (s *Scene) ElementByID(id string) (element.Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.elements[i], true
	}
	return nil, false
}

// Revision returns the scene's clock value. It advances on every change.
func (s *Scene) Revision() uint64 {
	return s.clock.Now()
}

// SetElements replaces the element list without recording history.
func (s *Scene) SetElements(els []element.Element) {
	s.mu.Lock()
	s.elements = append(make([]element.Element, 0, len(els)), els...)
	s.clock.Tick()
	s.mu.Unlock()
}

// AddElements appends elements, replacing any with the same id in place.
func (s *Scene) AddElements(els ...element.Element) {
	if len(els) == 0 {
		return
	}
	s.mu.Lock()
	s.captureLocked()
	for _, el := range els {
		if i := s.indexOf(el.Common().ID); i >= 0 {
			s.elements[i] = el
			continue
		}
		s.elements = append(s.elements, el)
	}
	s.clock.Tick()
	s.mu.Unlock()

	s.notify(els)
}

// UpdateScene applies u. With u.Capture set the previous state can be undone.
func (s *Scene) UpdateScene(u SceneUpdate) {
	s.mu.Lock()
	if u.Capture {
		s.captureLocked()
	}
	if u.Elements != nil {
		s.elements = append(make([]element.Element, 0, len(u.Elements)), u.Elements...)
	}
	if u.AppState != nil {
		s.appState = u.AppState.Clone()
	}
	s.clock.Tick()
	s.mu.Unlock()

	if u.Capture && u.Elements != nil {
		s.notify(u.Elements)
	}
}

// UpdateElement mutates the element with the given id through element.Mutate
// and records the previous state in history.
func (s *Scene) UpdateElement(id string, update func(element.Element)) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	s.captureLocked()
	el := element.Mutate(s.elements[i], update)
	s.clock.Tick()
	s.mu.Unlock()

	s.notify([]element.Element{el})
	return nil
}

// AddFiles registers binary files, keyed by their id.
func (s *Scene) AddFiles(files ...BinaryFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UnixMilli()
	for _, f := range files {
		if f.Created == 0 {
			f.Created = now
		}
		s.files[f.ID] = f
	}
}

// Files returns a copy of the registered binary files.
func (s *Scene) Files() map[string]BinaryFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]BinaryFile, len(s.files))
	for id, f := range s.files {
		out[id] = f
	}
	return out
}

// File returns one binary file by id.
func (s *Scene) File(id string) (BinaryFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[id]
	return f, ok
}

func (s *Scene) indexOf(id string) int {
	for i, el := range s.elements {
		if el.Common().ID == id {
			return i
		}
	}
	return -1
}

func (s *Scene) notify(changed []element.Element) {
	if s.OnChange == nil {
		return
	}
	s.OnChange(element.CloneAll(changed))
}

func nonDeleted(els []element.Element) []element.Element {
	out := make([]element.Element, 0, len(els))
	for _, el := range els {
		if !el.Common().IsDeleted {
			out = append(out, el)
		}
	}
	return out
}

// Undo restores the state before the last captured change.
func (s *Scene) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return false
	}
	entry := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = pushBounded(s.redo, s.currentLocked())
	s.restoreLocked(entry)
	logging.L().Debug("scene undo", "undo", len(s.undo), "redo", len(s.redo))
	return true
}

// Redo re-applies the last undone change.
func (s *Scene) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return false
	}
	entry := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = pushBounded(s.undo, s.currentLocked())
	s.restoreLocked(entry)
	logging.L().Debug("scene redo", "undo", len(s.undo), "redo", len(s.redo))
	return true
}

// UndoStack returns a copy of the undo stack, oldest first.
func (s *Scene) UndoStack() []HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]HistoryEntry(nil), s.undo...)
}

// RedoStack returns a copy of the redo stack, oldest first.
func (s *Scene) RedoStack() []HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]HistoryEntry(nil), s.redo...)
}

func (s *Scene) currentLocked() HistoryEntry {
	return HistoryEntry{
		Elements: element.CloneAll(s.elements),
		AppState: s.appState.Clone(),
	}
}

// captureLocked pushes the current state on the undo stack and drops the redo stack.
func (s *Scene) captureLocked() {
	s.undo = pushBounded(s.undo, s.currentLocked())
	s.redo = nil
}

func (s *Scene) restoreLocked(entry HistoryEntry) {
	s.elements = element.CloneAll(entry.Elements)
	s.appState = entry.AppState.Clone()
	s.clock.Tick()
}

func pushBounded(stack []HistoryEntry, entry HistoryEntry) []HistoryEntry {
	stack = append(stack, entry)
	if len(stack) > maxHistory {
		stack = stack[len(stack)-maxHistory:]
	}
	return stack
}
