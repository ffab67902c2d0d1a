package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/action"
	"SketchBoard/internal/element"
	"SketchBoard/internal/state"
)

// Palette is the stroke and background colors offered by the toolbar.
var Palette = []string{"#1e1e1e", "#e03131", "#2f9e44", "#1971c2", "#f08c00"}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// editStyle changes the ambient style new elements are built with.
func editStyle(board *BoardWidget, edit func(*element.Style)) {
	board.Scene().SetAppState(func(a *state.AppState) { edit(&a.Style) })
}

func swatches(onTapped func(color.Color)) *fyne.Container {
	box := container.NewHBox()
	for _, hex := range Palette {
		c, _ := element.ParseColor(hex)
		box.Add(newColorSwatch(c, onTapped))
	}
	return box
}

// NewToolbar builds the tool, style and history controls for board.
func NewToolbar(board *BoardWidget) fyne.CanvasObject {
	tool := func(t Tool) func() { return func() { board.SetTool(t) } }
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), tool(ToolFreeDraw)),
		widget.NewToolbarAction(theme.CheckButtonIcon(), tool(ToolRectangle)),
		widget.NewToolbarAction(theme.RadioButtonIcon(), tool(ToolEllipse)),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), tool(ToolDiamond)),
		widget.NewToolbarAction(theme.ContentRemoveIcon(), tool(ToolLine)),
		widget.NewToolbarAction(theme.NavigateNextIcon(), tool(ToolArrow)),
		widget.NewToolbarAction(theme.GridIcon(), tool(ToolFrame)),
		widget.NewToolbarAction(theme.VisibilityIcon(), tool(ToolSelect)),
		widget.NewToolbarAction(theme.ZoomFitIcon(), tool(ToolPan)),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), board.Undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), board.Redo),
		widget.NewToolbarAction(theme.MenuIcon(), func() { board.Execute(action.SelectAll) }),
		widget.NewToolbarAction(theme.ContentCutIcon(), func() { board.Execute(action.DeleteSelectedElements) }),
		widget.NewToolbarAction(theme.DeleteIcon(), func() { board.Execute(action.ClearCanvas) }),
	)

	strokeColors := swatches(func(c color.Color) {
		editStyle(board, func(s *element.Style) { s.StrokeColor = element.ColorHex(c) })
	})
	fillColors := swatches(func(c color.Color) {
		editStyle(board, func(s *element.Style) { s.BackgroundColor = element.ColorHex(c) })
	})
	noFill := widget.NewButton("None", func() {
		editStyle(board, func(s *element.Style) { s.BackgroundColor = "transparent" })
	})

	current := board.Scene().Style()
	strokeSlider := widget.NewSlider(1.0, 16.0)
	strokeSlider.SetValue(current.StrokeWidth)
	strokeSlider.OnChanged = func(val float64) {
		editStyle(board, func(s *element.Style) { s.StrokeWidth = val })
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), strokeSlider)

	rounded := widget.NewCheck("Rounded", func(on bool) {
		editStyle(board, func(s *element.Style) {
			s.Roundness = element.RoundnessSharp
			if on {
				s.Roundness = element.RoundnessRound
			}
		})
	})
	rounded.SetChecked(current.Roundness == element.RoundnessRound)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Stroke:"),
		strokeColors,
		widget.NewLabel("Fill:"),
		fillColors,
		noFill,
		widget.NewSeparator(),
		widget.NewLabel("Width:"),
		sliderContainer,
		rounded,
		layout.NewSpacer(),
	)
}
