package ui

import (
	"bytes"
	"image/color"
	"math"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"SketchBoard/internal/element"
	"SketchBoard/internal/files"
	"SketchBoard/internal/state"
)

var (
	selectionColor = color.NRGBA{R: 0x69, G: 0x65, B: 0xdb, A: 0xff}
	frameColor     = color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 0xff}
)

// paint resolves an element color with its opacity applied. Unset and
// transparent colors come back as color.Transparent.
func paint(s string, opacity int) color.Color {
	c, ok := element.ParseColor(s)
	if !ok {
		return color.Transparent
	}
	c.A = uint8(int(c.A) * opacity / 100)
	return c
}

// drawElement builds the canvas objects for el, offset by pan. Rotation
// is not drawn.
func drawElement(el element.Element, pan fyne.Position, scene *state.Scene) []fyne.CanvasObject {
	b := el.Common()
	stroke := paint(b.StrokeColor, b.Opacity)
	fill := paint(b.BackgroundColor, b.Opacity)
	width := float32(b.StrokeWidth)
	origin := fyne.NewPos(float32(b.X)+pan.X, float32(b.Y)+pan.Y)
	size := fyne.NewSize(float32(b.Width), float32(b.Height))

	switch e := el.(type) {
	case *element.Shape:
		switch e.Type {
		case element.KindEllipse:
			c := canvas.NewCircle(fill)
			c.StrokeColor, c.StrokeWidth = stroke, width
			c.Position1 = origin
			c.Position2 = origin.Add(fyne.NewPos(size.Width, size.Height))
			return []fyne.CanvasObject{c}
		case element.KindDiamond:
			w, h := size.Width, size.Height
			pts := []fyne.Position{
				origin.Add(fyne.NewPos(w/2, 0)),
				origin.Add(fyne.NewPos(w, h/2)),
				origin.Add(fyne.NewPos(w/2, h)),
				origin.Add(fyne.NewPos(0, h/2)),
				origin.Add(fyne.NewPos(w/2, 0)),
			}
			return polyline(pts, stroke, width)
		default:
			r := canvas.NewRectangle(fill)
			r.StrokeColor, r.StrokeWidth = stroke, width
			if e.Roundness != nil {
				r.CornerRadius = float32(math.Min(32, 0.25*math.Min(e.Width, e.Height)))
			}
			r.Move(origin)
			r.Resize(size)
			return []fyne.CanvasObject{r}
		}
	case *element.Text:
		return drawText(e, origin, stroke)
	case *element.Line:
		return polyline(offset(origin, e.Points), stroke, width)
	case *element.Arrow:
		objs := polyline(offset(origin, e.Points), stroke, width)
		n := len(e.Points)
		if n >= 2 && e.EndArrowhead != nil {
			objs = append(objs, arrowhead(origin, e.Points[n-2], e.Points[n-1], stroke, width)...)
		}
		if n >= 2 && e.StartArrowhead != nil {
			objs = append(objs, arrowhead(origin, e.Points[1], e.Points[0], stroke, width)...)
		}
		return objs
	case *element.FreeDraw:
		return polyline(offset(origin, e.Points), stroke, width)
	case *element.Frame:
		r := canvas.NewRectangle(color.Transparent)
		r.StrokeColor, r.StrokeWidth = frameColor, 1
		r.Move(origin)
		r.Resize(size)
		objs := []fyne.CanvasObject{r}
		if e.Name != nil && *e.Name != "" {
			label := canvas.NewText(*e.Name, frameColor)
			label.TextSize = 12
			label.Move(origin.Subtract(fyne.NewPos(0, 16)))
			objs = append(objs, label)
		}
		return objs
	case *element.Image:
		if e.FileID != nil {
			if f, ok := scene.File(*e.FileID); ok {
				if _, data, err := files.DecodeDataURL(f.DataURL); err == nil {
					img := canvas.NewImageFromReader(bytes.NewReader(data), f.ID)
					img.FillMode = canvas.ImageFillStretch
					img.Move(origin)
					img.Resize(size)
					return []fyne.CanvasObject{img}
				}
			}
		}
		return placeholder(origin, size)
	case *element.Embeddable:
		return placeholder(origin, size)
	}
	return nil
}

func drawText(e *element.Text, origin fyne.Position, c color.Color) []fyne.CanvasObject {
	lineHeight := float32(e.FontSize * e.LineHeight)
	var objs []fyne.CanvasObject
	for i, line := range strings.Split(e.Text, "\n") {
		t := canvas.NewText(line, c)
		t.TextSize = float32(e.FontSize)
		t.TextStyle.Monospace = e.FontFamily == element.FontCascadia
		x := origin.X
		switch e.TextAlign {
		case element.AlignCenter:
			x += (float32(e.Width) - t.MinSize().Width) / 2
		case element.AlignRight:
			x += float32(e.Width) - t.MinSize().Width
		}
		t.Move(fyne.NewPos(x, origin.Y+lineHeight*float32(i)))
		objs = append(objs, t)
	}
	return objs
}

func offset(origin fyne.Position, pts []element.Point) []fyne.Position {
	out := make([]fyne.Position, len(pts))
	for i, p := range pts {
		out[i] = origin.Add(fyne.NewPos(float32(p.X), float32(p.Y)))
	}
	return out
}

func polyline(pts []fyne.Position, c color.Color, width float32) []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(pts))
	for i := 1; i < len(pts); i++ {
		segment := canvas.NewLine(c)
		segment.StrokeWidth = width
		segment.Position1 = pts[i-1]
		segment.Position2 = pts[i]
		objs = append(objs, segment)
	}
	return objs
}

func arrowhead(origin fyne.Position, from, tip element.Point, c color.Color, width float32) []fyne.CanvasObject {
	angle := math.Atan2(tip.Y-from.Y, tip.X-from.X)
	const size, spread = 15.0, math.Pi / 7
	t := origin.Add(fyne.NewPos(float32(tip.X), float32(tip.Y)))
	var objs []fyne.CanvasObject
	for _, side := range []float64{-spread, spread} {
		end := t.Subtract(fyne.NewPos(float32(size*math.Cos(angle+side)), float32(size*math.Sin(angle+side))))
		objs = append(objs, polyline([]fyne.Position{t, end}, c, width)...)
	}
	return objs
}

func placeholder(origin fyne.Position, size fyne.Size) []fyne.CanvasObject {
	r := canvas.NewRectangle(color.NRGBA{R: 0xf1, G: 0xf3, B: 0xf5, A: 0xff})
	r.StrokeColor, r.StrokeWidth = frameColor, 1
	r.Move(origin)
	r.Resize(size)
	return []fyne.CanvasObject{r}
}

func selectionOutline(el element.Element, pan fyne.Position) fyne.CanvasObject {
	box := element.Bounds(el).Pad(4)
	r := canvas.NewRectangle(color.Transparent)
	r.StrokeColor, r.StrokeWidth = selectionColor, 1
	r.Move(fyne.NewPos(float32(box.X)+pan.X, float32(box.Y)+pan.Y))
	r.Resize(fyne.NewSize(float32(box.Width), float32(box.Height)))
	return r
}
