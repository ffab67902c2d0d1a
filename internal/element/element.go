package element

import (
	"encoding/json"
	"fmt"
)

// Point is a position relative to its element's origin. It encodes as [x, y].
type Point struct {
	X, Y float64
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("decode point: %w", err)
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// RoundnessType selects how corner radii are computed.
type RoundnessType int

const (
	RoundnessLegacy       RoundnessType = 1
	RoundnessProportional RoundnessType = 2
	RoundnessAdaptive     RoundnessType = 3
)

// Roundness marks an element as having rounded corners.
type Roundness struct {
	Type  RoundnessType `json:"type"`
	Value *float64      `json:"value,omitempty"`
}

// BoundElement references an arrow or a text label attached to an element.
type BoundElement struct {
	ID   string `json:"id"`
	Type Kind   `json:"type"`
}

// Binding anchors an arrow endpoint to another element.
type Binding struct {
	ElementID  string      `json:"elementId"`
	Focus      float64     `json:"focus"`
	Gap        float64     `json:"gap"`
	FixedPoint *[2]float64 `json:"fixedPoint,omitempty"`
}

// ImageStatus tracks whether an image's binary data has been persisted.
type ImageStatus string

const (
	ImagePending ImageStatus = "pending"
	ImageSaved   ImageStatus = "saved"
	ImageError   ImageStatus = "error"
)

// Base holds the attributes shared by every element kind.
type Base struct {
	ID              string         `json:"id"`
	Type            Kind           `json:"type"`
	X               float64        `json:"x"`
	Y               float64        `json:"y"`
	Width           float64        `json:"width"`
	Height          float64        `json:"height"`
	Angle           float64        `json:"angle"`
	StrokeColor     string         `json:"strokeColor"`
	BackgroundColor string         `json:"backgroundColor"`
	FillStyle       FillStyle      `json:"fillStyle"`
	StrokeWidth     float64        `json:"strokeWidth"`
	StrokeStyle     StrokeStyle    `json:"strokeStyle"`
	Roundness       *Roundness     `json:"roundness"`
	Roughness       int            `json:"roughness"`
	Opacity         int            `json:"opacity"`
	Seed            int            `json:"seed"`
	Version         int            `json:"version"`
	VersionNonce    int            `json:"versionNonce"`
	Index           *string        `json:"index"`
	IsDeleted       bool           `json:"isDeleted"`
	GroupIDs        []string       `json:"groupIds"`
	FrameID         *string        `json:"frameId"`
	BoundElements   []BoundElement `json:"boundElements"`
	Updated         int64          `json:"updated"`
	Link            *string        `json:"link"`
	Locked          bool           `json:"locked"`
}

// Common gives access to the shared attributes. Every concrete element inherits it.
func (b *Base) Common() *Base { return b }

// Kind returns the element's discriminant.
func (b *Base) Kind() Kind { return b.Type }

func (b Base) cloneBase() Base {
	out := b
	if b.Roundness != nil {
		r := *b.Roundness
		if r.Value != nil {
			v := *r.Value
			r.Value = &v
		}
		out.Roundness = &r
	}
	out.Index = cloneString(b.Index)
	out.FrameID = cloneString(b.FrameID)
	out.Link = cloneString(b.Link)
	if b.GroupIDs != nil {
		out.GroupIDs = append([]string{}, b.GroupIDs...)
	}
	if b.BoundElements != nil {
		out.BoundElements = append([]BoundElement{}, b.BoundElements...)
	}
	return out
}

// Element is implemented only by the concrete element types of this package.
type Element interface {
	Common() *Base
	Kind() Kind
	clone() Element
}

// Shape is a rectangle, diamond or ellipse.
type Shape struct {
	Base
}

// Embeddable is an embeddable or iframe element.
type Embeddable struct {
	Base
}

// Text is a text element, free-standing or bound to a container.
type Text struct {
	Base
	FontSize      float64       `json:"fontSize"`
	FontFamily    FontFamily    `json:"fontFamily"`
	Text          string        `json:"text"`
	TextAlign     TextAlign     `json:"textAlign"`
	VerticalAlign VerticalAlign `json:"verticalAlign"`
	ContainerID   *string       `json:"containerId"`
	OriginalText  string        `json:"originalText"`
	AutoResize    bool          `json:"autoResize"`
	LineHeight    float64       `json:"lineHeight"`
}

// Linear holds the point path shared by lines and arrows.
type Linear struct {
	Base
	Points             []Point    `json:"points"`
	LastCommittedPoint *Point     `json:"lastCommittedPoint"`
	StartArrowhead     *Arrowhead `json:"startArrowhead"`
	EndArrowhead       *Arrowhead `json:"endArrowhead"`
}

// Path returns the linear part of a line or arrow.
func (l *Linear) Path() *Linear { return l }

func (l Linear) cloneLinear() Linear {
	out := l
	out.Base = l.Base.cloneBase()
	out.Points = append([]Point(nil), l.Points...)
	if l.LastCommittedPoint != nil {
		p := *l.LastCommittedPoint
		out.LastCommittedPoint = &p
	}
	out.StartArrowhead = cloneArrowhead(l.StartArrowhead)
	out.EndArrowhead = cloneArrowhead(l.EndArrowhead)
	return out
}

// Line is a polyline.
type Line struct {
	Linear
}

// Arrow is a polyline that can be bound to elements at either end.
type Arrow struct {
	Linear
	StartBinding *Binding `json:"startBinding"`
	EndBinding   *Binding `json:"endBinding"`
	Elbowed      bool     `json:"elbowed"`
}

// FreeDraw is a hand-drawn stroke.
type FreeDraw struct {
	Base
	Points             []Point   `json:"points"`
	Pressures          []float64 `json:"pressures"`
	SimulatePressure   bool      `json:"simulatePressure"`
	LastCommittedPoint *Point    `json:"lastCommittedPoint"`
}

// Image displays a binary file referenced by FileID.
type Image struct {
	Base
	FileID *string     `json:"fileId"`
	Status ImageStatus `json:"status"`
	Scale  [2]float64  `json:"scale"`
}

// Frame groups elements visually. It backs both frame and magicframe.
type Frame struct {
	Base
	Name *string `json:"name"`
}

func (e *Shape) clone() Element {
	return &Shape{Base: e.Base.cloneBase()}
}

func (e *Embeddable) clone() Element {
	return &Embeddable{Base: e.Base.cloneBase()}
}

func (e *Text) clone() Element {
	out := *e
	out.Base = e.Base.cloneBase()
	out.ContainerID = cloneString(e.ContainerID)
	return &out
}

func (e *Line) clone() Element {
	return &Line{Linear: e.Linear.cloneLinear()}
}

func (e *Arrow) clone() Element {
	out := *e
	out.Linear = e.Linear.cloneLinear()
	out.StartBinding = cloneBinding(e.StartBinding)
	out.EndBinding = cloneBinding(e.EndBinding)
	return &out
}

func (e *FreeDraw) clone() Element {
	out := *e
	out.Base = e.Base.cloneBase()
	out.Points = append([]Point(nil), e.Points...)
	out.Pressures = append([]float64(nil), e.Pressures...)
	if e.LastCommittedPoint != nil {
		p := *e.LastCommittedPoint
		out.LastCommittedPoint = &p
	}
	return &out
}

func (e *Image) clone() Element {
	out := *e
	out.Base = e.Base.cloneBase()
	out.FileID = cloneString(e.FileID)
	return &out
}

func (e *Frame) clone() Element {
	out := *e
	out.Base = e.Base.cloneBase()
	out.Name = cloneString(e.Name)
	return &out
}

// Clone returns a deep copy of el.
func Clone[T Element](el T) T {
	return el.clone().(T)
}

// CloneAll deep-copies a slice of elements.
func CloneAll(els []Element) []Element {
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = el.clone()
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneArrowhead(a *Arrowhead) *Arrowhead {
	if a == nil {
		return nil
	}
	v := *a
	return &v
}

func cloneBinding(b *Binding) *Binding {
	if b == nil {
		return nil
	}
	out := *b
	if b.FixedPoint != nil {
		fp := *b.FixedPoint
		out.FixedPoint = &fp
	}
	return &out
}
