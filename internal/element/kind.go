package element

// Kind is the discriminant of a drawable element.
type Kind string

const (
	KindRectangle  Kind = "rectangle"
	KindDiamond    Kind = "diamond"
	KindEllipse    Kind = "ellipse"
	KindText       Kind = "text"
	KindLine       Kind = "line"
	KindArrow      Kind = "arrow"
	KindFreeDraw   Kind = "freedraw"
	KindImage      Kind = "image"
	KindFrame      Kind = "frame"
	KindMagicFrame Kind = "magicframe"
	KindEmbeddable Kind = "embeddable"
	KindIframe     Kind = "iframe"
)

// Kinds lists every kind the factory can build, in a stable order.
var Kinds = []Kind{
	KindRectangle,
	KindDiamond,
	KindEllipse,
	KindText,
	KindLine,
	KindArrow,
	KindFreeDraw,
	KindImage,
	KindFrame,
	KindMagicFrame,
	KindEmbeddable,
	KindIframe,
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsLinear reports whether elements of this kind are point sequences.
func (k Kind) IsLinear() bool {
	return k == KindLine || k == KindArrow
}

// IsFrameLike reports whether elements of this kind can contain other elements.
func (k Kind) IsFrameLike() bool {
	return k == KindFrame || k == KindMagicFrame
}

// ParseKind converts a type tag into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", &ExhaustivenessError{Kind: k}
	}
	return k, nil
}
