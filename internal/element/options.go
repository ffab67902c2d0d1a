package element

import "fmt"

// Options overrides factory defaults. A nil pointer or empty value means "not supplied".
type Options struct {
	ID        string
	X         *float64
	Y         *float64
	Width     *float64
	Height    *float64
	Angle     *float64
	IsDeleted bool
	GroupIDs  []string
	FrameID   *string
	Index     *string
	Locked    bool

	StrokeColor     *string
	BackgroundColor *string
	FillStyle       *FillStyle
	StrokeWidth     *float64
	StrokeStyle     *StrokeStyle
	Roughness       *int
	Opacity         *int
	BoundElements   []BoundElement

	// Rounded forces rounded (true) or sharp (false) corners. When nil the
	// style's Roundness mode decides.
	Rounded *bool

	// Extra carries options that only apply to some kinds.
	Extra KindOptions
}

// KindOptions is implemented by the kind-specific option structs.
type KindOptions interface {
	appliesTo(k Kind) bool
}

// TextOptions applies to text elements.
type TextOptions struct {
	Text          string
	FontSize      *float64
	FontFamily    *FontFamily
	TextAlign     *TextAlign
	VerticalAlign *VerticalAlign
	ContainerID   *string
	LineHeight    *float64
}

// LinearOptions applies to lines and arrows.
type LinearOptions struct {
	Points         []Point
	StartArrowhead *Arrowhead
	EndArrowhead   *Arrowhead
}

// ArrowOptions applies to arrows only.
type ArrowOptions struct {
	LinearOptions
	StartBinding *Binding
	EndBinding   *Binding
	Elbowed      bool
}

// FreeDrawOptions applies to freedraw elements.
type FreeDrawOptions struct {
	Points           []Point
	Pressures        []float64
	SimulatePressure *bool
}

// ImageOptions applies to image elements.
type ImageOptions struct {
	FileID *string
	Status ImageStatus
	Scale  *[2]float64
}

// FrameOptions applies to frames and magic frames.
type FrameOptions struct {
	Name *string
}

func (TextOptions) appliesTo(k Kind) bool     { return k == KindText }
func (LinearOptions) appliesTo(k Kind) bool   { return k.IsLinear() }
func (ArrowOptions) appliesTo(k Kind) bool    { return k == KindArrow }
func (FreeDrawOptions) appliesTo(k Kind) bool { return k == KindFreeDraw }
func (ImageOptions) appliesTo(k Kind) bool    { return k == KindImage }
func (FrameOptions) appliesTo(k Kind) bool    { return k.IsFrameLike() }

// resolveExtra checks that extra suits kind. Pointer forms are accepted
// and dereferenced; a nil pointer is a mismatch.
func resolveExtra(kind Kind, extra KindOptions) (KindOptions, error) {
	given := extra
	ok := true
	switch e := extra.(type) {
	case *TextOptions:
		extra, ok = deref(e)
	case *LinearOptions:
		extra, ok = deref(e)
	case *ArrowOptions:
		extra, ok = deref(e)
	case *FreeDrawOptions:
		extra, ok = deref(e)
	case *ImageOptions:
		extra, ok = deref(e)
	case *FrameOptions:
		extra, ok = deref(e)
	}
	if !ok {
		return nil, fmt.Errorf("%w: nil %T for %s", ErrOptionsMismatch, given, kind)
	}
	if extra != nil && !extra.appliesTo(kind) {
		return nil, fmt.Errorf("%w: %T for %s", ErrOptionsMismatch, given, kind)
	}
	return extra, nil
}

func deref[T KindOptions](p *T) (KindOptions, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Ptr returns a pointer to v, for filling optional fields inline.
func Ptr[T any](v T) *T {
	return &v
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
