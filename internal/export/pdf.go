// Package export renders scenes to documents outside the board.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"SketchBoard/internal/element"
)

// PDFOptions controls page setup.
type PDFOptions struct {
	// Orientation is "P" or "L". Empty picks the one that fits the scene best.
	Orientation string
	// PageSize is a gofpdf size name such as "A4" or "Letter".
	PageSize string
	// Margin in millimetres around the scene.
	Margin float64
	// Title is printed in the top margin when set.
	Title string
}

// DefaultPDFOptions returns A4 with a 10mm margin.
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{PageSize: "A4", Margin: 10}
}

// page maps scene coordinates onto the PDF page.
type page struct {
	pdf    *gofpdf.Fpdf
	origin element.Rect
	scale  float64
	offX   float64
	offY   float64
	tr     func(string) string
}

func (p *page) x(v float64) float64 { return p.offX + (v-p.origin.X)*p.scale }
func (p *page) y(v float64) float64 { return p.offY + (v-p.origin.Y)*p.scale }
func (p *page) d(v float64) float64 { return v * p.scale }

// PDF draws the non-deleted elements on one page, scaled to fit.
func PDF(w io.Writer, elements []element.Element, opts PDFOptions) error {
	if opts.PageSize == "" {
		opts.PageSize = "A4"
	}
	live := make([]element.Element, 0, len(elements))
	for _, el := range elements {
		if !el.Common().IsDeleted {
			live = append(live, el)
		}
	}
	bounds, ok := element.CommonBounds(live)
	if !ok {
		bounds = element.Rect{Width: 1, Height: 1}
	}

	orientation := opts.Orientation
	if orientation == "" {
		orientation = "P"
		if bounds.Width > bounds.Height {
			orientation = "L"
		}
	}

	pdf := gofpdf.New(orientation, "mm", opts.PageSize, "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	pageW, pageH := pdf.GetPageSize()
	top := opts.Margin
	if opts.Title != "" {
		top += 8
	}
	availW := math.Max(pageW-2*opts.Margin, 1)
	availH := math.Max(pageH-top-opts.Margin, 1)
	scale := math.Min(availW/math.Max(bounds.Width, 1), availH/math.Max(bounds.Height, 1))

	p := &page{
		pdf:    pdf,
		origin: bounds,
		scale:  scale,
		offX:   opts.Margin + (availW-bounds.Width*scale)/2,
		offY:   top + (availH-bounds.Height*scale)/2,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}

	if opts.Title != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(opts.Margin, opts.Margin+4, p.tr(opts.Title))
	}

	for _, el := range live {
		p.draw(el)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func (p *page) draw(el element.Element) {
	b := el.Common()
	p.pdf.SetAlpha(float64(b.Opacity)/100, "Normal")
	defer p.pdf.SetAlpha(1, "Normal")

	if b.Angle != 0 {
		cx, cy := b.X+b.Width/2, b.Y+b.Height/2
		p.pdf.TransformBegin()
		p.pdf.TransformRotate(-b.Angle*180/math.Pi, p.x(cx), p.y(cy))
		defer p.pdf.TransformEnd()
	}

	stroke := p.stroke(b)
	fill := p.fill(b)
	style := "D"
	if fill {
		style = "FD"
	}
	if !stroke {
		style = strings.TrimSuffix(style, "D")
	}
	defer p.pdf.SetDashPattern(nil, 0)

	switch e := el.(type) {
	case *element.Shape:
		p.shape(e, style)
	case *element.Text:
		p.text(e)
	case *element.Arrow:
		p.polyline(e.X, e.Y, e.Points)
		p.arrowheads(e)
	case *element.Line:
		p.polyline(e.X, e.Y, e.Points)
	case *element.FreeDraw:
		p.polyline(e.X, e.Y, e.Points)
	case *element.Frame:
		p.pdf.SetDashPattern([]float64{2, 1}, 0)
		p.pdf.Rect(p.x(e.X), p.y(e.Y), p.d(e.Width), p.d(e.Height), "D")
		if e.Name != nil && *e.Name != "" {
			p.pdf.SetFont("Helvetica", "", 8)
			p.pdf.Text(p.x(e.X), p.y(e.Y)-1, p.tr(*e.Name))
		}
	case *element.Image:
		p.placeholder(b, "image")
	case *element.Embeddable:
		p.placeholder(b, string(e.Type))
	}
}

// stroke applies the element's stroke and reports whether it is visible.
func (p *page) stroke(b *element.Base) bool {
	c, ok := element.ParseColor(b.StrokeColor)
	if !ok {
		return false
	}
	p.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	p.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	p.pdf.SetLineWidth(math.Max(p.d(b.StrokeWidth), 0.1))
	switch b.StrokeStyle {
	case element.StrokeDashed:
		p.pdf.SetDashPattern([]float64{p.d(8), p.d(8)}, 0)
	case element.StrokeDotted:
		p.pdf.SetDashPattern([]float64{p.d(1.5), p.d(6)}, 0)
	}
	return true
}

func (p *page) fill(b *element.Base) bool {
	c, ok := element.ParseColor(b.BackgroundColor)
	if !ok {
		return false
	}
	p.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	return true
}

func (p *page) shape(e *element.Shape, style string) {
	if style == "" {
		return
	}
	x, y, w, h := p.x(e.X), p.y(e.Y), p.d(e.Width), p.d(e.Height)
	switch e.Type {
	case element.KindEllipse:
		p.pdf.Ellipse(x+w/2, y+h/2, w/2, h/2, 0, style)
	case element.KindDiamond:
		p.pdf.Polygon([]gofpdf.PointType{
			{X: x + w/2, Y: y},
			{X: x + w, Y: y + h/2},
			{X: x + w/2, Y: y + h},
			{X: x, Y: y + h/2},
		}, style)
	default:
		p.pdf.Rect(x, y, w, h, style)
	}
}

func (p *page) polyline(x, y float64, pts []element.Point) {
	for i := 1; i < len(pts); i++ {
		p.pdf.Line(
			p.x(x+pts[i-1].X), p.y(y+pts[i-1].Y),
			p.x(x+pts[i].X), p.y(y+pts[i].Y),
		)
	}
}

func (p *page) arrowheads(a *element.Arrow) {
	n := len(a.Points)
	if n < 2 {
		return
	}
	if a.EndArrowhead != nil {
		p.head(a.X, a.Y, a.Points[n-2], a.Points[n-1])
	}
	if a.StartArrowhead != nil {
		p.head(a.X, a.Y, a.Points[1], a.Points[0])
	}
}

// head draws two barbs at tip pointing away from "from".
func (p *page) head(x, y float64, from, tip element.Point) {
	angle := math.Atan2(tip.Y-from.Y, tip.X-from.X)
	const size, spread = 15.0, math.Pi / 7
	tx, ty := p.x(x+tip.X), p.y(y+tip.Y)
	for _, side := range []float64{-spread, spread} {
		bx := x + tip.X - size*math.Cos(angle+side)
		by := y + tip.Y - size*math.Sin(angle+side)
		p.pdf.Line(tx, ty, p.x(bx), p.y(by))
	}
}

func (p *page) text(e *element.Text) {
	// Scene units become mm on the page; 1pt is 0.352778mm.
	pt := p.d(e.FontSize) / 0.352778
	p.pdf.SetFont("Helvetica", "", math.Max(pt, 1))
	lineH := p.d(e.FontSize * e.LineHeight)
	for i, line := range strings.Split(e.Text, "\n") {
		lx := p.x(e.X)
		switch e.TextAlign {
		case element.AlignCenter:
			lx = p.x(e.X+e.Width/2) - p.pdf.GetStringWidth(p.tr(line))/2
		case element.AlignRight:
			lx = p.x(e.X+e.Width) - p.pdf.GetStringWidth(p.tr(line))
		}
		p.pdf.Text(lx, p.y(e.Y)+lineH*float64(i)+lineH*0.8, p.tr(line))
	}
}

func (p *page) placeholder(b *element.Base, label string) {
	p.pdf.SetDrawColor(160, 160, 160)
	p.pdf.SetLineWidth(0.2)
	x, y, w, h := p.x(b.X), p.y(b.Y), p.d(b.Width), p.d(b.Height)
	p.pdf.Rect(x, y, w, h, "D")
	p.pdf.Line(x, y, x+w, y+h)
	p.pdf.Line(x+w, y, x, y+h)
	p.pdf.SetFont("Helvetica", "I", 7)
	p.pdf.SetTextColor(120, 120, 120)
	p.pdf.Text(x+1, y+3, label)
}
