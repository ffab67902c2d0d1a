package element

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

const (
	defaultSize = 100
	defaultText = "test"
)

// DefaultPoints is the path given to lines and arrows built without points.
func DefaultPoints() []Point {
	return []Point{{X: 0, Y: 0}, {X: 100, Y: 100}}
}

// New builds an element of the given kind. Fields missing from opts come
// from fixed defaults or from style; a nil style means DefaultStyle.
// Unknown kinds fail with *ExhaustivenessError.
func New(kind Kind, style *Style, opts Options) (Element, error) {
	if !kind.Valid() {
		return nil, &ExhaustivenessError{Kind: kind}
	}
	extra, err := resolveExtra(kind, opts.Extra)
	if err != nil {
		return nil, err
	}
	opts.Extra = extra

	s := style.snapshot()
	switch kind {
	case KindRectangle, KindDiamond, KindEllipse:
		return newShape(kind, s, opts), nil
	case KindEmbeddable, KindIframe:
		return newEmbeddable(kind, s, opts), nil
	case KindText:
		extra, _ := opts.Extra.(TextOptions)
		return newText(s, opts, extra), nil
	case KindFreeDraw:
		extra, _ := opts.Extra.(FreeDrawOptions)
		return newFreeDraw(s, opts, extra), nil
	case KindArrow:
		var extra ArrowOptions
		switch e := opts.Extra.(type) {
		case ArrowOptions:
			extra = e
		case LinearOptions:
			extra.LinearOptions = e
		}
		return newArrow(s, opts, extra), nil
	case KindLine:
		extra, _ := opts.Extra.(LinearOptions)
		return newLine(s, opts, extra), nil
	case KindImage:
		extra, _ := opts.Extra.(ImageOptions)
		return newImage(s, opts, extra), nil
	case KindFrame, KindMagicFrame:
		extra, _ := opts.Extra.(FrameOptions)
		return newFrame(kind, s, opts, extra), nil
	default:
		return nil, &ExhaustivenessError{Kind: kind}
	}
}

// NewRectangle builds a rectangle.
func NewRectangle(style *Style, opts Options) *Shape {
	return newShape(KindRectangle, style.snapshot(), opts)
}

// NewDiamond builds a diamond.
func NewDiamond(style *Style, opts Options) *Shape {
	return newShape(KindDiamond, style.snapshot(), opts)
}

// NewEllipse builds an ellipse.
func NewEllipse(style *Style, opts Options) *Shape {
	return newShape(KindEllipse, style.snapshot(), opts)
}

// NewEmbeddable builds an embeddable.
func NewEmbeddable(style *Style, opts Options) *Embeddable {
	return newEmbeddable(KindEmbeddable, style.snapshot(), opts)
}

// NewIframe builds an iframe embeddable.
func NewIframe(style *Style, opts Options) *Embeddable {
	return newEmbeddable(KindIframe, style.snapshot(), opts)
}

// NewText builds a text element sized to opts, or 100x100 when unset.
func NewText(style *Style, opts Options, text TextOptions) *Text {
	return newText(style.snapshot(), opts, text)
}

// NewLine builds a line. Missing points default to DefaultPoints.
func NewLine(style *Style, opts Options, line LinearOptions) *Line {
	return newLine(style.snapshot(), opts, line)
}

// NewArrow builds an arrow. Missing points default to DefaultPoints.
func NewArrow(style *Style, opts Options, arrow ArrowOptions) *Arrow {
	return newArrow(style.snapshot(), opts, arrow)
}

// NewFreeDraw builds a freedraw stroke.
func NewFreeDraw(style *Style, opts Options, stroke FreeDrawOptions) *FreeDraw {
	return newFreeDraw(style.snapshot(), opts, stroke)
}

// NewImage builds an image element; status defaults to saved.
func NewImage(style *Style, opts Options, image ImageOptions) *Image {
	return newImage(style.snapshot(), opts, image)
}

// NewFrame builds a frame.
func NewFrame(style *Style, opts Options, frame FrameOptions) *Frame {
	return newFrame(KindFrame, style.snapshot(), opts, frame)
}

// NewMagicFrame builds a magic frame.
func NewMagicFrame(style *Style, opts Options, frame FrameOptions) *Frame {
	return newFrame(KindMagicFrame, style.snapshot(), opts, frame)
}

// newBase fills the shared attributes. Width and height always come from
// opts or the defaults, whatever the kind.
func newBase(kind Kind, s Style, opts Options) Base {
	x := valueOr(opts.X, 0)
	y := valueOr(opts.Y, x)
	width := valueOr(opts.Width, defaultSize)
	height := valueOr(opts.Height, width)

	rounded := s.Roundness == RoundnessRound
	if opts.Rounded != nil {
		rounded = *opts.Rounded
	}
	var roundness *Roundness
	if rounded {
		roundness = &Roundness{Type: RoundnessAdaptive}
		if kind.IsLinear() {
			roundness.Type = RoundnessProportional
		}
	}

	var bound []BoundElement
	if opts.BoundElements != nil {
		bound = append([]BoundElement{}, opts.BoundElements...)
	}

	return Base{
		ID:              uuid.NewString(),
		Type:            kind,
		X:               x,
		Y:               y,
		Width:           width,
		Height:          height,
		Angle:           valueOr(opts.Angle, 0),
		StrokeColor:     valueOr(opts.StrokeColor, s.StrokeColor),
		BackgroundColor: valueOr(opts.BackgroundColor, s.BackgroundColor),
		FillStyle:       valueOr(opts.FillStyle, s.FillStyle),
		StrokeWidth:     valueOr(opts.StrokeWidth, s.StrokeWidth),
		StrokeStyle:     valueOr(opts.StrokeStyle, s.StrokeStyle),
		Roundness:       roundness,
		Roughness:       valueOr(opts.Roughness, s.Roughness),
		Opacity:         valueOr(opts.Opacity, s.Opacity),
		Seed:            randomInteger(),
		Version:         1,
		VersionNonce:    randomInteger(),
		Index:           cloneString(opts.Index),
		IsDeleted:       false,
		GroupIDs:        []string{},
		FrameID:         cloneString(opts.FrameID),
		BoundElements:   bound,
		Updated:         time.Now().UnixMilli(),
		Locked:          opts.Locked,
	}
}

// finish applies the explicit overrides that win over anything a
// kind-specific constructor produced.
func finish(b *Base, opts Options) {
	if opts.ID != "" {
		b.ID = opts.ID
	}
	if opts.IsDeleted {
		b.IsDeleted = true
	}
	if opts.GroupIDs != nil {
		b.GroupIDs = append([]string{}, opts.GroupIDs...)
	}
}

func newShape(kind Kind, s Style, opts Options) *Shape {
	el := &Shape{Base: newBase(kind, s, opts)}
	finish(&el.Base, opts)
	return el
}

func newEmbeddable(kind Kind, s Style, opts Options) *Embeddable {
	el := &Embeddable{Base: newBase(kind, s, opts)}
	finish(&el.Base, opts)
	return el
}

func newText(s Style, opts Options, t TextOptions) *Text {
	base := newBase(KindText, s, opts)

	content := t.Text
	if content == "" {
		content = defaultText
	}
	fontSize := valueOr(t.FontSize, s.FontSize)
	family := valueOr(t.FontFamily, s.FontFamily)
	lineHeight := valueOr(t.LineHeight, LineHeight(family))
	align := valueOr(t.TextAlign, s.TextAlign)
	valign := valueOr(t.VerticalAlign, DefaultVerticalAlign)

	m := MeasureText(content, fontSize, lineHeight)
	switch align {
	case AlignCenter:
		base.X -= m.Width / 2
	case AlignRight:
		base.X -= m.Width
	}
	if valign == VAlignMiddle {
		base.Y -= m.Height / 2
	}

	el := &Text{
		Base:          base,
		FontSize:      fontSize,
		FontFamily:    family,
		Text:          normalizeText(content),
		TextAlign:     align,
		VerticalAlign: valign,
		ContainerID:   cloneString(t.ContainerID),
		OriginalText:  content,
		AutoResize:    true,
		LineHeight:    lineHeight,
	}
	// Pin the requested size over the measured one so callers get exact dimensions.
	el.Width = valueOr(opts.Width, defaultSize)
	el.Height = valueOr(opts.Height, el.Width)
	finish(&el.Base, opts)
	return el
}

func newLinearPath(kind Kind, s Style, opts Options, l LinearOptions) Linear {
	points := DefaultPoints()
	if l.Points != nil {
		points = append([]Point{}, l.Points...)
	}
	return Linear{
		Base:           newBase(kind, s, opts),
		Points:         points,
		StartArrowhead: cloneArrowhead(l.StartArrowhead),
		EndArrowhead:   cloneArrowhead(l.EndArrowhead),
	}
}

func newLine(s Style, opts Options, l LinearOptions) *Line {
	el := &Line{Linear: newLinearPath(KindLine, s, opts, l)}
	finish(&el.Base, opts)
	return el
}

func newArrow(s Style, opts Options, a ArrowOptions) *Arrow {
	el := &Arrow{
		Linear:  newLinearPath(KindArrow, s, opts, a.LinearOptions),
		Elbowed: a.Elbowed,
	}
	el.StartBinding = cloneBinding(a.StartBinding)
	el.EndBinding = cloneBinding(a.EndBinding)
	finish(&el.Base, opts)
	return el
}

func newFreeDraw(s Style, opts Options, f FreeDrawOptions) *FreeDraw {
	el := &FreeDraw{
		Base:             newBase(KindFreeDraw, s, opts),
		Points:           append([]Point{}, f.Points...),
		Pressures:        append([]float64{}, f.Pressures...),
		SimulatePressure: valueOr(f.SimulatePressure, true),
	}
	finish(&el.Base, opts)
	return el
}

func newImage(s Style, opts Options, i ImageOptions) *Image {
	status := i.Status
	if status == "" {
		status = ImageSaved
	}
	el := &Image{
		Base:   newBase(KindImage, s, opts),
		FileID: cloneString(i.FileID),
		Status: status,
		Scale:  valueOr(i.Scale, [2]float64{1, 1}),
	}
	finish(&el.Base, opts)
	return el
}

func newFrame(kind Kind, s Style, opts Options, f FrameOptions) *Frame {
	el := &Frame{
		Base: newBase(kind, s, opts),
		Name: cloneString(f.Name),
	}
	finish(&el.Base, opts)
	return el
}

func randomInteger() int {
	return rand.IntN(1 << 31)
}
