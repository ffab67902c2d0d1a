package element

// FillStyle controls how an element's background is painted.
type FillStyle string

const (
	FillHachure    FillStyle = "hachure"
	FillCrossHatch FillStyle = "cross-hatch"
	FillSolid      FillStyle = "solid"
	FillZigzag     FillStyle = "zigzag"
)

// StrokeStyle controls the outline dash pattern.
type StrokeStyle string

const (
	StrokeSolid  StrokeStyle = "solid"
	StrokeDashed StrokeStyle = "dashed"
	StrokeDotted StrokeStyle = "dotted"
)

// TextAlign is the horizontal alignment of a text element.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// VerticalAlign is the vertical alignment of a text element.
type VerticalAlign string

const (
	VAlignTop    VerticalAlign = "top"
	VAlignMiddle VerticalAlign = "middle"
	VAlignBottom VerticalAlign = "bottom"
)

// DefaultVerticalAlign is used when a text element does not ask for one.
const DefaultVerticalAlign = VAlignTop

// FontFamily identifies a font by its numeric id.
type FontFamily int

const (
	FontVirgil         FontFamily = 1
	FontHelvetica      FontFamily = 2
	FontCascadia       FontFamily = 3
	FontExcalifont     FontFamily = 5
	FontNunito         FontFamily = 6
	FontLilitaOne      FontFamily = 7
	FontComicShanns    FontFamily = 8
	FontLiberationSans FontFamily = 9
)

// RoundnessMode is the ambient corner mode used when an element does not override it.
type RoundnessMode string

const (
	RoundnessRound RoundnessMode = "round"
	RoundnessSharp RoundnessMode = "sharp"
)

// Arrowhead is the decoration drawn at an arrow endpoint.
type Arrowhead string

const (
	ArrowheadArrow    Arrowhead = "arrow"
	ArrowheadBar      Arrowhead = "bar"
	ArrowheadDot      Arrowhead = "dot"
	ArrowheadCircle   Arrowhead = "circle"
	ArrowheadTriangle Arrowhead = "triangle"
	ArrowheadDiamond  Arrowhead = "diamond"
)

// Style is the "current item" styling that fills fields an element does not set itself.
// The factory copies it on entry, so later edits never reach elements already built.
type Style struct {
	StrokeColor     string        `json:"currentItemStrokeColor" yaml:"stroke_color"`
	BackgroundColor string        `json:"currentItemBackgroundColor" yaml:"background_color"`
	FillStyle       FillStyle     `json:"currentItemFillStyle" yaml:"fill_style"`
	StrokeWidth     float64       `json:"currentItemStrokeWidth" yaml:"stroke_width"`
	StrokeStyle     StrokeStyle   `json:"currentItemStrokeStyle" yaml:"stroke_style"`
	Roughness       int           `json:"currentItemRoughness" yaml:"roughness"`
	Opacity         int           `json:"currentItemOpacity" yaml:"opacity"`
	FontFamily      FontFamily    `json:"currentItemFontFamily" yaml:"font_family"`
	FontSize        float64       `json:"currentItemFontSize" yaml:"font_size"`
	TextAlign       TextAlign     `json:"currentItemTextAlign" yaml:"text_align"`
	Roundness       RoundnessMode `json:"currentItemRoundness" yaml:"roundness"`
	StartArrowhead  *Arrowhead    `json:"currentItemStartArrowhead" yaml:"start_arrowhead,omitempty"`
	EndArrowhead    *Arrowhead    `json:"currentItemEndArrowhead" yaml:"end_arrowhead,omitempty"`
}

// DefaultStyle returns the fallback style used when no session style is available.
func DefaultStyle() Style {
	end := ArrowheadArrow
	return Style{
		StrokeColor:     "#1e1e1e",
		BackgroundColor: "transparent",
		FillStyle:       FillSolid,
		StrokeWidth:     2,
		StrokeStyle:     StrokeSolid,
		Roughness:       1,
		Opacity:         100,
		FontFamily:      FontExcalifont,
		FontSize:        20,
		TextAlign:       AlignLeft,
		Roundness:       RoundnessRound,
		EndArrowhead:    &end,
	}
}

// snapshot copies the style, or returns DefaultStyle for a nil receiver.
func (s *Style) snapshot() Style {
	if s == nil {
		return DefaultStyle()
	}
	return s.Copy()
}

// Copy returns a copy that shares no pointers with s.
func (s Style) Copy() Style {
	out := s
	if s.StartArrowhead != nil {
		v := *s.StartArrowhead
		out.StartArrowhead = &v
	}
	if s.EndArrowhead != nil {
		v := *s.EndArrowhead
		out.EndArrowhead = &v
	}
	return out
}
