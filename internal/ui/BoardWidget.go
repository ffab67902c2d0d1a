package ui

import (
	"fmt"
	"image/color"
	"io"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/action"
	"SketchBoard/internal/codec"
	"SketchBoard/internal/element"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
)

// Tool is what a primary-button drag creates.
type Tool string

const (
	ToolFreeDraw  Tool = "freedraw"
	ToolRectangle Tool = "rectangle"
	ToolEllipse   Tool = "ellipse"
	ToolDiamond   Tool = "diamond"
	ToolLine      Tool = "line"
	ToolArrow     Tool = "arrow"
	ToolFrame     Tool = "frame"
	ToolSelect    Tool = "select"
	ToolPan       Tool = "pan"
)

// BoardWidget draws a scene and lets the user add elements to it.
type BoardWidget struct {
	widget.BaseWidget

	scene   *state.Scene
	actions *action.Manager

	mu         sync.RWMutex
	tool       Tool
	panX, panY float32
	drawing    bool
	start      fyne.Position
	current    fyne.Position
	draft      element.Element

	statusBar *widget.Label
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)

// NewBoardWidget creates a board over scene.
func NewBoardWidget(scene *state.Scene, actions *action.Manager) *BoardWidget {
	b := &BoardWidget{
		scene:     scene,
		actions:   actions,
		tool:      ToolFreeDraw,
		statusBar: widget.NewLabel("Ready"),
	}
	b.ExtendBaseWidget(b)
	return b
}

// Scene returns the scene the board draws.
func (b *BoardWidget) Scene() *state.Scene { return b.scene }

// StatusBar is the label the board reports into.
func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

// SetTool switches what the next drag creates.
func (b *BoardWidget) SetTool(t Tool) {
	b.mu.Lock()
	b.tool = t
	b.mu.Unlock()
}

// Tool returns the active tool.
func (b *BoardWidget) Tool() Tool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tool
}

// RemoteChanged redraws after elements arrived from a peer. It is safe to
// call from any goroutine.
func (b *BoardWidget) RemoteChanged([]element.Element) {
	fyne.Do(b.Refresh)
}

// SetStatus updates the status bar from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() { b.statusBar.SetText(text) })
}

// Execute runs a scene action and redraws.
func (b *BoardWidget) Execute(name string) {
	if err := b.actions.ExecuteByName(name); err != nil {
		logging.L().Debug("action skipped", "action", name, "error", err)
		return
	}
	b.Refresh()
}

// Undo reverts the last captured change.
func (b *BoardWidget) Undo() {
	if b.scene.Undo() {
		b.Refresh()
	}
}

// Redo re-applies the last undone change.
func (b *BoardWidget) Redo() {
	if b.scene.Redo() {
		b.Refresh()
	}
}

// SaveTo writes the scene as a document in format ("json", "excalidraw",
// "yaml" or "yml").
func (b *BoardWidget) SaveTo(w io.Writer, format string) error {
	_, exp, err := codec.ForFormat(format)
	if err != nil {
		return err
	}
	doc := codec.NewDocument(b.scene)
	if err := exp.Export(doc, w); err != nil {
		return err
	}
	b.SetStatus(fmt.Sprintf("Saved %d elements", len(doc.Elements)))
	return nil
}

// LoadFrom replaces the scene with a document in format.
func (b *BoardWidget) LoadFrom(r io.Reader, format string) error {
	doc, err := parseDocument(r, format)
	if err != nil {
		return err
	}
	doc.Apply(b.scene)
	b.Refresh()
	b.SetStatus(fmt.Sprintf("Loaded %d elements", len(doc.Elements)))
	return nil
}

// ImportFrom merges a document into the scene. Elements the scene already
// holds in a newer version are kept.
func (b *BoardWidget) ImportFrom(r io.Reader, format string) error {
	doc, err := parseDocument(r, format)
	if err != nil {
		return err
	}
	incoming := state.NewScene(nil)
	doc.Apply(incoming)

	changed := b.scene.Merge(incoming)
	files := make([]state.BinaryFile, 0, len(doc.Files))
	for _, f := range doc.Files {
		files = append(files, f)
	}
	b.scene.AddFiles(files...)
	if publish := b.scene.OnChange; publish != nil && len(changed) > 0 {
		publish(element.CloneAll(changed))
	}
	b.Refresh()
	b.SetStatus(fmt.Sprintf("Imported %d elements", len(changed)))
	return nil
}

func parseDocument(r io.Reader, format string) (*codec.Document, error) {
	imp, _, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}
	return imp.Parse(r)
}

// toScene converts a widget position into scene coordinates.
func (b *BoardWidget) toScene(p fyne.Position) fyne.Position {
	return fyne.NewPos(p.X-b.panX, p.Y-b.panY)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mu.Lock()
	if b.tool != ToolPan {
		b.drawing = true
		b.start = b.toScene(e.Position)
		b.current = b.start
		b.draft = nil
	}
	b.mu.Unlock()
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mu.Lock()
	draft := b.draft
	selecting := b.drawing && b.tool == ToolSelect
	area := rectBetween(b.start, b.current)
	b.drawing = false
	b.draft = nil
	b.mu.Unlock()

	switch {
	case selecting:
		picked := b.scene.Overlapping(area)
		b.scene.SetSelectedElements(picked...)
		b.SetStatus(fmt.Sprintf("Selected %d elements", len(picked)))
	case draft != nil:
		b.scene.AddElements(draft)
		b.scene.AssignFrames()
		b.reportFrame(draft)
	}
	b.Refresh()
}

// reportFrame puts frame membership of a freshly drawn element in the
// status bar.
func (b *BoardWidget) reportFrame(el element.Element) {
	if el.Kind().IsFrameLike() {
		b.SetStatus(fmt.Sprintf("Frame holds %d elements", len(b.scene.ElementsInFrame(el.Common().ID))))
		return
	}
	if frame, ok := b.scene.ContainingFrame(el); ok {
		name := "frame"
		if f, isFrame := frame.(*element.Frame); isFrame && f.Name != nil {
			name = *f.Name
		}
		b.SetStatus("Added to " + name)
	}
}

func rectBetween(a, c fyne.Position) element.Rect {
	x0, y0 := float64(min(a.X, c.X)), float64(min(a.Y, c.Y))
	return element.Rect{
		X:      x0,
		Y:      y0,
		Width:  float64(max(a.X, c.X)) - x0,
		Height: float64(max(a.Y, c.Y)) - y0,
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.mu.Lock()
	if !b.drawing {
		b.panX += e.Dragged.DX
		b.panY += e.Dragged.DY
		b.mu.Unlock()
		b.Refresh()
		return
	}
	pos := b.toScene(e.Position)
	b.current = pos
	if b.tool != ToolSelect {
		b.draft = b.extendDraft(pos)
	}
	b.mu.Unlock()
	b.Refresh()
}

// extendDraft grows the element being drawn to reach pos. Callers hold b.mu.
func (b *BoardWidget) extendDraft(pos fyne.Position) element.Element {
	style := b.scene.Style()
	x0, y0 := float64(b.start.X), float64(b.start.Y)
	x1, y1 := float64(pos.X), float64(pos.Y)

	switch b.tool {
	case ToolFreeDraw:
		fd, ok := b.draft.(*element.FreeDraw)
		if !ok {
			fd = element.NewFreeDraw(style, element.Options{X: &x0, Y: &y0}, element.FreeDrawOptions{
				Points: []element.Point{{}},
			})
		}
		fd.Points = append(fd.Points, element.Point{X: x1 - fd.X, Y: y1 - fd.Y})
		r := element.Bounds(fd)
		fd.Width, fd.Height = r.Width, r.Height
		return fd
	case ToolLine, ToolArrow:
		opts := element.Options{X: &x0, Y: &y0}
		path := element.LinearOptions{
			Points:       []element.Point{{}, {X: x1 - x0, Y: y1 - y0}},
			EndArrowhead: style.EndArrowhead,
		}
		if b.tool == ToolLine {
			path.EndArrowhead = nil
			return element.NewLine(style, opts, path)
		}
		path.StartArrowhead = style.StartArrowhead
		return element.NewArrow(style, opts, element.ArrowOptions{LinearOptions: path})
	default:
		x, y := min(x0, x1), min(y0, y1)
		w, h := max(x0, x1)-x, max(y0, y1)-y
		el, err := element.New(element.Kind(b.tool), style, element.Options{X: &x, Y: &y, Width: &w, Height: &h})
		if err != nil {
			logging.L().Warn("cannot draw with tool", "tool", b.tool, "error", err)
			return nil
		}
		return el
	}
}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.mu.Lock()
	b.panX += e.Scrolled.DX
	b.panY += e.Scrolled.DY
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
func (b *BoardWidget) DragEnd()                       {}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	b := r.board
	app := b.scene.AppState()
	if bg, ok := element.ParseColor(app.ViewBackgroundColor); ok {
		r.background.FillColor = bg
	}

	els := b.scene.NonDeletedElements()
	b.mu.RLock()
	if b.drawing && b.draft != nil {
		els = append(els, b.draft)
	}
	pan := fyne.NewPos(b.panX, b.panY)
	b.mu.RUnlock()

	objects := []fyne.CanvasObject{r.background}
	for _, el := range els {
		objects = append(objects, drawElement(el, pan, b.scene)...)
	}
	for _, el := range els {
		if app.SelectedElementIDs[el.Common().ID] {
			objects = append(objects, selectionOutline(el, pan))
		}
	}
	return objects
}

func (r *boardWidgetRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}
