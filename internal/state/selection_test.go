package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/element"
)

func TestSelectedElements(t *testing.T) {
	s := NewScene(nil)
	rect := element.NewRectangle(nil, element.Options{ID: "rect"})
	label := element.NewText(nil, element.Options{ID: "label"}, element.TextOptions{ContainerID: element.Ptr("rect")})
	frame := element.NewFrame(nil, element.Options{ID: "frame"}, element.FrameOptions{})
	child := element.NewEllipse(nil, element.Options{ID: "child", FrameID: element.Ptr("frame")})
	gone := element.NewDiamond(nil, element.Options{ID: "gone", IsDeleted: true})
	s.AddElements(rect, label, frame, child, gone)

	s.SetSelectedElements(rect, frame, gone)

	ids := func(els []element.Element) []string {
		var out []string
		for _, el := range els {
			out = append(out, el.Common().ID)
		}
		return out
	}

	assert.Equal(t, []string{"rect", "frame"}, ids(s.SelectedElements(SelectionOptions{})))
	assert.Equal(t, []string{"rect", "label", "frame"},
		ids(s.SelectedElements(SelectionOptions{IncludeBoundText: true})))
	assert.Equal(t, []string{"rect", "frame", "child"},
		ids(s.SelectedElements(SelectionOptions{IncludeElementsInFrames: true})))
}

func TestSelectedElement(t *testing.T) {
	s := NewScene(nil)
	a := element.NewRectangle(nil, element.Options{})
	b := element.NewRectangle(nil, element.Options{})
	s.AddElements(a, b)

	_, err := s.SelectedElement()
	var pre *PreconditionError
	require.True(t, errors.As(err, &pre))
	assert.Equal(t, 0, pre.Got)
	assert.EqualError(t, err, "expected 1 selected element; got 0")

	s.SetSelectedElements(a, b)
	_, err = s.SelectedElement()
	assert.EqualError(t, err, "expected 1 selected element; got 2")

	s.SetSelectedElements(b)
	el, err := s.SelectedElement()
	require.NoError(t, err)
	assert.Same(t, b, el)

	s.ClearSelection()
	assert.Empty(t, s.SelectedElements(SelectionOptions{}))
}

func TestSelectionIsNotHistory(t *testing.T) {
	s := NewScene(nil)
	rect := element.NewRectangle(nil, element.Options{})
	s.AddElements(rect)
	s.SetSelectedElements(rect)
	assert.Len(t, s.UndoStack(), 1)
}
