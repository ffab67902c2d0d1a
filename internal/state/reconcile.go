package state

import (
	"SketchBoard/internal/element"
	"SketchBoard/internal/logging"
)

// Reconcile merges elements received from a peer. For each id the element
// with the higher version wins; on a version tie the lower versionNonce
// wins. Unknown ids are appended. It returns copies of the elements that
// were taken from remote.
func (s *Scene) Reconcile(remote []element.Element) []element.Element {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []element.Element
	for _, r := range remote {
		id := r.Common().ID
		i := s.indexOf(id)
		if i < 0 {
			s.elements = append(s.elements, element.Clone(r))
			changed = append(changed, element.Clone(r))
			logging.L().Debug("reconcile: remote element added", "id", id, "type", r.Kind())
			continue
		}
		if discardRemote(s.elements[i], r) {
			continue
		}
		s.elements[i] = element.Clone(r)
		changed = append(changed, element.Clone(r))
		logging.L().Debug("reconcile: remote element won", "id", id, "version", r.Common().Version)
	}
	if len(changed) > 0 {
		s.clock.Tick()
	}
	return changed
}

// Merge reconciles every element of other into s.
func (s *Scene) Merge(other *Scene) []element.Element {
	return s.Reconcile(other.Snapshot())
}

// ObserveRevision advances the scene clock to a revision seen from a peer.
func (s *Scene) ObserveRevision(rev uint64) {
	s.clock.Observe(rev)
}

func discardRemote(local, remote element.Element) bool {
	l, r := local.Common(), remote.Common()
	if l.Version != r.Version {
		return l.Version > r.Version
	}
	return l.VersionNonce <= r.VersionNonce
}
