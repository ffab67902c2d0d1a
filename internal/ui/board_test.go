package ui

import (
	"bytes"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/action"
	"SketchBoard/internal/element"
	"SketchBoard/internal/state"
)

func newTestBoard(t *testing.T) *BoardWidget {
	t.Helper()
	test.NewTempApp(t)
	scene := state.NewScene(nil)
	b := NewBoardWidget(scene, action.NewManager(scene))
	b.Resize(fyne.NewSize(400, 400))
	return b
}

func press(pos fyne.Position) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: pos},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(b *BoardWidget, from, to fyne.Position) {
	b.MouseDown(press(from))
	b.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: to},
		Dragged:    fyne.NewDelta(to.X-from.X, to.Y-from.Y),
	})
	b.MouseUp(press(to))
}

func TestDrawRectangle(t *testing.T) {
	b := newTestBoard(t)
	b.SetTool(ToolRectangle)

	drag(b, fyne.NewPos(50, 40), fyne.NewPos(10, 100))

	els := b.Scene().NonDeletedElements()
	require.Len(t, els, 1)
	rect, ok := els[0].(*element.Shape)
	require.True(t, ok)
	assert.Equal(t, element.KindRectangle, rect.Kind())
	assert.Equal(t, 10.0, rect.X)
	assert.Equal(t, 40.0, rect.Y)
	assert.Equal(t, 40.0, rect.Width)
	assert.Equal(t, 60.0, rect.Height)
	assert.Len(t, b.Scene().UndoStack(), 1)
}

func TestDrawFreehand(t *testing.T) {
	b := newTestBoard(t)

	b.MouseDown(press(fyne.NewPos(10, 10)))
	for _, p := range []fyne.Position{{X: 20, Y: 15}, {X: 30, Y: 40}} {
		b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: p}})
	}
	b.MouseUp(press(fyne.NewPos(30, 40)))

	els := b.Scene().NonDeletedElements()
	require.Len(t, els, 1)
	fd, ok := els[0].(*element.FreeDraw)
	require.True(t, ok)
	assert.Equal(t, []element.Point{{}, {X: 10, Y: 5}, {X: 20, Y: 30}}, fd.Points)
	assert.Equal(t, 20.0, fd.Width)
	assert.Equal(t, 30.0, fd.Height)
}

func TestDrawArrowUsesStyleArrowheads(t *testing.T) {
	b := newTestBoard(t)
	b.SetTool(ToolArrow)

	drag(b, fyne.NewPos(0, 0), fyne.NewPos(80, 20))

	els := b.Scene().NonDeletedElements()
	require.Len(t, els, 1)
	arrow, ok := els[0].(*element.Arrow)
	require.True(t, ok)
	require.NotNil(t, arrow.EndArrowhead)
	assert.Equal(t, element.ArrowheadArrow, *arrow.EndArrowhead)
	assert.Equal(t, element.Point{X: 80, Y: 20}, arrow.Points[1])
}

func TestPanToolMovesView(t *testing.T) {
	b := newTestBoard(t)
	b.SetTool(ToolPan)

	drag(b, fyne.NewPos(0, 0), fyne.NewPos(30, 10))
	assert.Empty(t, b.Scene().Elements())

	b.SetTool(ToolRectangle)
	drag(b, fyne.NewPos(30, 10), fyne.NewPos(60, 40))
	els := b.Scene().NonDeletedElements()
	require.Len(t, els, 1)
	assert.Equal(t, 0.0, els[0].Common().X)
	assert.Equal(t, 0.0, els[0].Common().Y)
}

func TestUndoRedo(t *testing.T) {
	b := newTestBoard(t)
	b.SetTool(ToolEllipse)
	drag(b, fyne.NewPos(0, 0), fyne.NewPos(20, 20))
	require.Len(t, b.Scene().NonDeletedElements(), 1)

	b.Undo()
	assert.Empty(t, b.Scene().NonDeletedElements())
	b.Redo()
	assert.Len(t, b.Scene().NonDeletedElements(), 1)
}

func TestExecuteClearCanvas(t *testing.T) {
	b := newTestBoard(t)
	b.SetTool(ToolDiamond)
	drag(b, fyne.NewPos(0, 0), fyne.NewPos(20, 20))

	b.Execute(action.ClearCanvas)
	assert.Empty(t, b.Scene().NonDeletedElements())
	assert.Len(t, b.Scene().Elements(), 1)
}

func TestRendererDrawsElements(t *testing.T) {
	b := newTestBoard(t)
	b.SetTool(ToolRectangle)
	drag(b, fyne.NewPos(0, 0), fyne.NewPos(20, 20))

	r := test.WidgetRenderer(b)
	objects := r.Objects()
	require.GreaterOrEqual(t, len(objects), 2)
	_, isRect := objects[0].(*canvas.Rectangle)
	assert.True(t, isRect, "first object is the background")

	b.Execute(action.SelectAll)
	assert.Greater(t, len(r.Objects()), len(objects), "selection adds an outline")
}

func TestSaveAndLoad(t *testing.T) {
	b := newTestBoard(t)
	b.SetTool(ToolRectangle)
	drag(b, fyne.NewPos(0, 0), fyne.NewPos(20, 20))

	var buf bytes.Buffer
	require.NoError(t, b.SaveTo(&buf, "json"))

	other := newTestBoard(t)
	require.NoError(t, other.LoadFrom(&buf, "json"))
	els := other.Scene().NonDeletedElements()
	require.Len(t, els, 1)
	assert.Equal(t, b.Scene().NonDeletedElements()[0].Common().ID, els[0].Common().ID)
}

func TestExportPDF(t *testing.T) {
	b := newTestBoard(t)
	b.SetTool(ToolRectangle)
	drag(b, fyne.NewPos(0, 0), fyne.NewPos(20, 20))

	var buf bytes.Buffer
	require.NoError(t, b.ExportPDF(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestEditStyle(t *testing.T) {
	b := newTestBoard(t)
	editStyle(b, func(s *element.Style) { s.StrokeColor = "#e03131" })
	b.SetTool(ToolRectangle)
	drag(b, fyne.NewPos(0, 0), fyne.NewPos(20, 20))

	els := b.Scene().NonDeletedElements()
	require.Len(t, els, 1)
	assert.Equal(t, "#e03131", els[0].Common().StrokeColor)
}

func TestSaveAndLoadYAML(t *testing.T) {
	b := newTestBoard(t)
	b.SetTool(ToolEllipse)
	drag(b, fyne.NewPos(0, 0), fyne.NewPos(20, 20))

	var buf bytes.Buffer
	require.NoError(t, b.SaveTo(&buf, "yaml"))
	assert.Contains(t, buf.String(), "type: excalidraw")

	other := newTestBoard(t)
	require.NoError(t, other.LoadFrom(&buf, "yml"))
	assert.Len(t, other.Scene().NonDeletedElements(), 1)

	assert.Error(t, b.SaveTo(&buf, "svg"))
}

func TestImportMergesIntoScene(t *testing.T) {
	src := newTestBoard(t)
	src.SetTool(ToolRectangle)
	drag(src, fyne.NewPos(0, 0), fyne.NewPos(20, 20))
	var buf bytes.Buffer
	require.NoError(t, src.SaveTo(&buf, "json"))

	b := newTestBoard(t)
	b.SetTool(ToolEllipse)
	drag(b, fyne.NewPos(50, 50), fyne.NewPos(80, 80))

	var published []element.Element
	b.Scene().OnChange = func(changed []element.Element) { published = append(published, changed...) }

	require.NoError(t, b.ImportFrom(&buf, "json"))
	assert.Len(t, b.Scene().NonDeletedElements(), 2)
	require.Len(t, published, 1)
	assert.Equal(t, element.KindRectangle, published[0].Kind())
}

func TestSelectToolPicksOverlapping(t *testing.T) {
	b := newTestBoard(t)
	b.SetTool(ToolRectangle)
	drag(b, fyne.NewPos(0, 0), fyne.NewPos(20, 20))
	drag(b, fyne.NewPos(200, 200), fyne.NewPos(220, 220))

	b.SetTool(ToolSelect)
	drag(b, fyne.NewPos(10, 10), fyne.NewPos(50, 50))

	selected := b.Scene().SelectedElements(state.SelectionOptions{})
	require.Len(t, selected, 1)
	assert.Equal(t, 0.0, selected[0].Common().X)
	assert.Len(t, b.Scene().NonDeletedElements(), 2, "selecting draws nothing")
}

func TestFrameToolAssignsMembers(t *testing.T) {
	b := newTestBoard(t)
	b.SetTool(ToolFrame)
	drag(b, fyne.NewPos(0, 0), fyne.NewPos(200, 200))
	b.SetTool(ToolRectangle)
	drag(b, fyne.NewPos(10, 10), fyne.NewPos(50, 50))

	var frameID string
	for _, el := range b.Scene().NonDeletedElements() {
		if el.Kind() == element.KindFrame {
			frameID = el.Common().ID
		}
	}
	require.NotEmpty(t, frameID)
	members := b.Scene().ElementsInFrame(frameID)
	require.Len(t, members, 1)
	assert.Equal(t, element.KindRectangle, members[0].Kind())
}
