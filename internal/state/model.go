package state

import (
	"encoding/json"
	"fmt"
	"maps"

	"SketchBoard/internal/element"
)

// AppState is the per-session editor state. The embedded Style is the
// ambient "current item" styling the element factory reads.
type AppState struct {
	element.Style

	Name                string          `json:"name"`
	ViewBackgroundColor string          `json:"viewBackgroundColor"`
	SelectedElementIDs  map[string]bool `json:"selectedElementIds"`
	SelectedGroupIDs    map[string]bool `json:"selectedGroupIds"`
	EditingGroupID      *string         `json:"editingGroupId"`
	ScrollX             float64         `json:"scrollX"`
	ScrollY             float64         `json:"scrollY"`
	Zoom                float64         `json:"zoom"`
}

// DefaultAppState returns the state of a fresh session.
func DefaultAppState() AppState {
	return AppState{
		Style:               element.DefaultStyle(),
		ViewBackgroundColor: "#ffffff",
		SelectedElementIDs:  map[string]bool{},
		SelectedGroupIDs:    map[string]bool{},
		Zoom:                1,
	}
}

// UnmarshalJSON decodes over DefaultAppState, so fields a document omits
// keep their defaults.
func (a *AppState) UnmarshalJSON(data []byte) error {
	type plain AppState
	out := plain(DefaultAppState())
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("decode app state: %w", err)
	}
	*a = AppState(out)
	return nil
}

// Clone returns a copy that shares no maps or pointers with a.
func (a AppState) Clone() AppState {
	out := a
	out.Style = a.Style.Copy()
	out.SelectedElementIDs = maps.Clone(a.SelectedElementIDs)
	if out.SelectedElementIDs == nil {
		out.SelectedElementIDs = map[string]bool{}
	}
	out.SelectedGroupIDs = maps.Clone(a.SelectedGroupIDs)
	if out.SelectedGroupIDs == nil {
		out.SelectedGroupIDs = map[string]bool{}
	}
	if a.EditingGroupID != nil {
		id := *a.EditingGroupID
		out.EditingGroupID = &id
	}
	return out
}

// BinaryFile is the payload behind an image element.
type BinaryFile struct {
	ID            string `json:"id"`
	MIMEType      string `json:"mimeType"`
	DataURL       string `json:"dataURL"`
	Created       int64  `json:"created"`
	LastRetrieved int64  `json:"lastRetrieved,omitempty"`
}

// SceneUpdate replaces parts of a scene in one step.
// Nil fields are left untouched.
type SceneUpdate struct {
	Elements []element.Element
	AppState *AppState
	// Capture records the previous state on the undo stack.
	Capture bool
}

// HistoryEntry is one undo or redo step.
type HistoryEntry struct {
	Elements []element.Element
	AppState AppState
}
