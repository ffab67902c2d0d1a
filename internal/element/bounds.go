package element

import "math"

// Rect is an axis-aligned area on the canvas.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// MaxX is the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY is the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Overlaps reports whether r and o share any area, edges included.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.MaxX() < o.X || o.MaxX() < r.X ||
		r.MaxY() < o.Y || o.MaxY() < r.Y)
}

// ContainsPoint reports whether (x, y) lies within r.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.X && x <= r.MaxX() && y >= r.Y && y <= r.MaxY()
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return r.ContainsPoint(o.X, o.Y) && r.ContainsPoint(o.MaxX(), o.MaxY())
}

// Union returns the smallest rect covering r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.MaxX(), o.MaxX())
	maxY := math.Max(r.MaxY(), o.MaxY())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Pad grows r by p on every side.
func (r Rect) Pad(p float64) Rect {
	return Rect{X: r.X - p, Y: r.Y - p, Width: r.Width + 2*p, Height: r.Height + 2*p}
}

// Bounds returns the axis-aligned box around el, taking rotation into account.
// Linear and freedraw elements are measured from their points.
func Bounds(el Element) Rect {
	b := el.Common()

	var local Rect
	switch e := el.(type) {
	case *Line:
		local = pointsRect(e.Points)
	case *Arrow:
		local = pointsRect(e.Points)
	case *FreeDraw:
		local = pointsRect(e.Points)
	default:
		local = Rect{Width: b.Width, Height: b.Height}
	}
	box := Rect{X: b.X + local.X, Y: b.Y + local.Y, Width: local.Width, Height: local.Height}
	if b.Angle == 0 {
		return box
	}

	cx := box.X + box.Width/2
	cy := box.Y + box.Height/2
	sin, cos := math.Sincos(b.Angle)
	corners := [4][2]float64{
		{box.X, box.Y},
		{box.MaxX(), box.Y},
		{box.MaxX(), box.MaxY()},
		{box.X, box.MaxY()},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		dx, dy := c[0]-cx, c[1]-cy
		x := cx + dx*cos - dy*sin
		y := cy + dx*sin + dy*cos
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// CommonBounds returns the union of the bounds of els. ok is false when els is empty.
func CommonBounds(els []Element) (r Rect, ok bool) {
	for _, el := range els {
		if !ok {
			r, ok = Bounds(el), true
			continue
		}
		r = r.Union(Bounds(el))
	}
	return r, ok
}

func pointsRect(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
