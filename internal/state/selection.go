package state

import "SketchBoard/internal/element"

// SelectionOptions widens SelectedElements beyond the directly selected ids.
type SelectionOptions struct {
	// IncludeBoundText adds text elements bound to a selected container.
	IncludeBoundText bool
	// IncludeElementsInFrames adds the children of selected frames.
	IncludeElementsInFrames bool
}

// SetSelectedElements makes els the whole selection.
func (s *Scene) SetSelectedElements(els ...element.Element) {
	ids := make(map[string]bool, len(els))
	for _, el := range els {
		ids[el.Common().ID] = true
	}
	s.mu.Lock()
	s.appState.SelectedElementIDs = ids
	s.mu.Unlock()
}

// SelectedElements returns the selected, non-deleted elements in scene order.
func (s *Scene) SelectedElements(opts SelectionOptions) []element.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()

	selected := s.appState.SelectedElementIDs
	var out []element.Element
	for _, el := range s.elements {
		b := el.Common()
		if b.IsDeleted {
			continue
		}
		switch {
		case selected[b.ID]:
			out = append(out, el)
		case opts.IncludeBoundText && element.IsBoundText(el) && selected[*el.(*element.Text).ContainerID]:
			out = append(out, el)
		case opts.IncludeElementsInFrames && b.FrameID != nil && selected[*b.FrameID]:
			out = append(out, el)
		}
	}
	return out
}

// SelectedElement returns the only selected element. Any other selection
// size is a *PreconditionError.
func (s *Scene) SelectedElement() (element.Element, error) {
	selected := s.SelectedElements(SelectionOptions{})
	if len(selected) != 1 {
		return nil, &PreconditionError{Subject: "selected element", Expected: 1, Got: len(selected)}
	}
	return selected[0], nil
}

// ClearSelection deselects all elements and groups.
func (s *Scene) ClearSelection() {
	s.mu.Lock()
	s.appState.SelectedElementIDs = map[string]bool{}
	s.appState.SelectedGroupIDs = map[string]bool{}
	s.appState.EditingGroupID = nil
	s.mu.Unlock()
}
