package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/element"
)

func versioned(id string, x float64, version, nonce int) element.Element {
	r := element.NewRectangle(nil, element.Options{ID: id, X: element.Ptr(x)})
	r.Version = version
	r.VersionNonce = nonce
	return r
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name    string
		local   element.Element
		remote  element.Element
		wantX   float64
		changed int
	}{
		{"higher remote version wins", versioned("a", 1, 1, 5), versioned("a", 2, 2, 5), 2, 1},
		{"lower remote version loses", versioned("a", 1, 3, 5), versioned("a", 2, 2, 5), 1, 0},
		{"tie goes to lower nonce", versioned("a", 1, 2, 9), versioned("a", 2, 2, 3), 2, 1},
		{"tie keeps local on higher remote nonce", versioned("a", 1, 2, 3), versioned("a", 2, 2, 9), 1, 0},
		{"identical nonce keeps local", versioned("a", 1, 2, 3), versioned("a", 2, 2, 3), 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene(nil)
			s.SetElements([]element.Element{tt.local})

			changed := s.Reconcile([]element.Element{tt.remote})
			assert.Len(t, changed, tt.changed)

			el, ok := s.ElementByID("a")
			require.True(t, ok)
			assert.Equal(t, tt.wantX, el.Common().X)
		})
	}
}

func TestReconcileAppendsUnknownAndCopies(t *testing.T) {
	s := NewScene(nil)
	remote := versioned("new", 7, 1, 1)

	changed := s.Reconcile([]element.Element{remote})
	require.Len(t, changed, 1)

	remote.Common().X = 100
	el, ok := s.ElementByID("new")
	require.True(t, ok)
	assert.Equal(t, 7.0, el.Common().X)
}

func TestMerge(t *testing.T) {
	a := NewScene(nil)
	b := NewScene(nil)
	a.SetElements([]element.Element{versioned("x", 1, 1, 1)})
	b.SetElements([]element.Element{versioned("x", 2, 4, 1), versioned("y", 0, 1, 1)})

	changed := a.Merge(b)
	assert.Len(t, changed, 2)
	assert.Len(t, a.Elements(), 2)
	x, _ := a.ElementByID("x")
	assert.Equal(t, 2.0, x.Common().X)
}
