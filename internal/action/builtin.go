package action

import (
	"slices"

	"github.com/google/uuid"

	"SketchBoard/internal/element"
	"SketchBoard/internal/state"
)

// Built-in action names.
const (
	SelectAll              = "selectAll"
	DeleteSelectedElements = "deleteSelectedElements"
	Group                  = "group"
	Ungroup                = "ungroup"
	ToggleElementLock      = "toggleElementLock"
	ClearCanvas            = "clearCanvas"
)

// Builtins returns the actions every manager starts with.
func Builtins() []Action {
	return []Action{
		{Name: SelectAll, Perform: selectAll},
		{Name: DeleteSelectedElements, Predicate: hasSelection, Perform: deleteSelected},
		{Name: Group, Predicate: canGroup, Perform: group},
		{Name: Ungroup, Predicate: canUngroup, Perform: ungroup},
		{Name: ToggleElementLock, Predicate: hasSelection, Perform: toggleLock},
		{Name: ClearCanvas, Perform: clearCanvas},
	}
}

func selected(els []element.Element, app state.AppState) []element.Element {
	var out []element.Element
	for _, el := range els {
		b := el.Common()
		if !b.IsDeleted && app.SelectedElementIDs[b.ID] {
			out = append(out, el)
		}
	}
	return out
}

func hasSelection(els []element.Element, app state.AppState) bool {
	return len(selected(els, app)) > 0
}

func selectAll(els []element.Element, app state.AppState) (Result, error) {
	app.SelectedElementIDs = map[string]bool{}
	app.SelectedGroupIDs = map[string]bool{}
	for _, el := range els {
		b := el.Common()
		if b.IsDeleted || b.Locked || element.IsBoundText(el) {
			continue
		}
		app.SelectedElementIDs[b.ID] = true
		if n := len(b.GroupIDs); n > 0 {
			app.SelectedGroupIDs[b.GroupIDs[n-1]] = true
		}
	}
	return Result{AppState: &app}, nil
}

// deleteSelected soft-deletes the selection together with text bound to it
// and the children of selected frames.
func deleteSelected(els []element.Element, app state.AppState) (Result, error) {
	doomed := make(map[string]bool)
	for _, el := range selected(els, app) {
		doomed[el.Common().ID] = true
	}
	for _, el := range els {
		b := el.Common()
		if b.IsDeleted || doomed[b.ID] {
			continue
		}
		if t, ok := el.(*element.Text); ok && element.IsBoundText(el) && doomed[*t.ContainerID] {
			doomed[b.ID] = true
		}
		if b.FrameID != nil && doomed[*b.FrameID] {
			doomed[b.ID] = true
		}
	}
	for _, el := range els {
		if doomed[el.Common().ID] {
			element.Delete(el)
		}
	}

	app.SelectedElementIDs = map[string]bool{}
	app.SelectedGroupIDs = map[string]bool{}
	app.EditingGroupID = nil
	return Result{Elements: els, AppState: &app, Capture: true}, nil
}

func canGroup(els []element.Element, app state.AppState) bool {
	sel := selected(els, app)
	if len(sel) < 2 {
		return false
	}
	// A selection that is already one whole group stays as it is.
	first := sel[0].Common().GroupIDs
	if len(first) == 0 {
		return true
	}
	outer := first[len(first)-1]
	for _, el := range sel[1:] {
		ids := el.Common().GroupIDs
		if len(ids) == 0 || ids[len(ids)-1] != outer {
			return true
		}
	}
	return false
}

func group(els []element.Element, app state.AppState) (Result, error) {
	gid := uuid.NewString()
	for _, el := range selected(els, app) {
		element.Mutate(el, func(e element.Element) {
			b := e.Common()
			b.GroupIDs = append(b.GroupIDs, gid)
		})
	}
	app.SelectedGroupIDs = map[string]bool{gid: true}
	return Result{Elements: els, AppState: &app, Capture: true}, nil
}

func canUngroup(els []element.Element, app state.AppState) bool {
	for _, el := range selected(els, app) {
		if len(el.Common().GroupIDs) > 0 {
			return true
		}
	}
	return false
}

// ungroup removes the outermost group of each selected element.
func ungroup(els []element.Element, app state.AppState) (Result, error) {
	for _, el := range selected(els, app) {
		ids := el.Common().GroupIDs
		if len(ids) == 0 {
			continue
		}
		element.Mutate(el, func(e element.Element) {
			b := e.Common()
			b.GroupIDs = slices.Clone(ids[:len(ids)-1])
		})
	}
	app.SelectedGroupIDs = map[string]bool{}
	app.EditingGroupID = nil
	return Result{Elements: els, AppState: &app, Capture: true}, nil
}

// toggleLock locks the selection unless all of it is already locked.
// Locking clears the selection.
func toggleLock(els []element.Element, app state.AppState) (Result, error) {
	sel := selected(els, app)
	lock := slices.ContainsFunc(sel, func(el element.Element) bool { return !el.Common().Locked })
	for _, el := range sel {
		element.Mutate(el, func(e element.Element) { e.Common().Locked = lock })
	}
	if lock {
		app.SelectedElementIDs = map[string]bool{}
		app.SelectedGroupIDs = map[string]bool{}
	}
	return Result{Elements: els, AppState: &app, Capture: true}, nil
}

func clearCanvas(els []element.Element, app state.AppState) (Result, error) {
	for _, el := range els {
		if !el.Common().IsDeleted {
			element.Delete(el)
		}
	}
	app.SelectedElementIDs = map[string]bool{}
	app.SelectedGroupIDs = map[string]bool{}
	app.EditingGroupID = nil
	return Result{Elements: els, AppState: &app, Capture: true}, nil
}
