package state

import "SketchBoard/internal/element"

// ElementsInFrame returns the non-deleted elements whose frameId is frameID.
func (s *Scene) ElementsInFrame(frameID string) []element.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []element.Element
	for _, el := range s.elements {
		b := el.Common()
		if !b.IsDeleted && b.FrameID != nil && *b.FrameID == frameID {
			out = append(out, el)
		}
	}
	return out
}

// ContainingFrame returns the last non-deleted frame whose bounds fully
// contain el's bounds.
func (s *Scene) ContainingFrame(el element.Element) (element.Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containingFrame(s.elements, el)
}

// Overlapping returns the non-deleted elements whose bounds overlap area.
func (s *Scene) Overlapping(area element.Rect) []element.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []element.Element
	for _, el := range s.elements {
		if !el.Common().IsDeleted && element.Bounds(el).Overlaps(area) {
			out = append(out, el)
		}
	}
	return out
}

// AssignFrames sets frameId on every element fully inside a frame and
// clears it on elements that left their frame. Frames themselves are
// never nested. It returns the elements whose membership changed.
func (s *Scene) AssignFrames() []element.Element {
	s.mu.Lock()
	var changed []element.Element
	for _, el := range s.elements {
		b := el.Common()
		if b.IsDeleted || b.Type.IsFrameLike() {
			continue
		}
		var want *string
		if frame, ok := containingFrame(s.elements, el); ok {
			id := frame.Common().ID
			want = &id
		}
		if sameFrame(b.FrameID, want) {
			continue
		}
		element.Mutate(el, func(e element.Element) { e.Common().FrameID = want })
		changed = append(changed, el)
	}
	if len(changed) > 0 {
		s.clock.Tick()
	}
	s.mu.Unlock()

	if len(changed) > 0 {
		s.notify(changed)
	}
	return changed
}

func containingFrame(els []element.Element, el element.Element) (element.Element, bool) {
	box := element.Bounds(el)
	var found element.Element
	for _, candidate := range els {
		cb := candidate.Common()
		if cb.IsDeleted || !cb.Type.IsFrameLike() || cb.ID == el.Common().ID {
			continue
		}
		if element.Bounds(candidate).Contains(box) {
			found = candidate
		}
	}
	return found, found != nil
}

func sameFrame(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
