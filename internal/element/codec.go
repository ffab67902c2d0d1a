package element

import (
	"encoding/json"
	"fmt"
)

// Marshal encodes a single element in its wire form.
func Marshal(el Element) ([]byte, error) {
	return json.Marshal(el)
}

// Unmarshal decodes one element, choosing the concrete type from its "type" field.
func Unmarshal(data []byte) (Element, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode element type: %w", err)
	}

	el, err := zero(head.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, el); err != nil {
		return nil, fmt.Errorf("decode %s element: %w", head.Type, err)
	}
	return el, nil
}

// List is a slice of elements that encodes as a JSON array of element objects.
type List []Element

func (l *List) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode element list: %w", err)
	}
	out := make(List, 0, len(raw))
	for i, r := range raw {
		el, err := Unmarshal(r)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, el)
	}
	*l = out
	return nil
}

func zero(kind Kind) (Element, error) {
	switch kind {
	case KindRectangle, KindDiamond, KindEllipse:
		return &Shape{}, nil
	case KindEmbeddable, KindIframe:
		return &Embeddable{}, nil
	case KindText:
		return &Text{}, nil
	case KindLine:
		return &Line{}, nil
	case KindArrow:
		return &Arrow{}, nil
	case KindFreeDraw:
		return &FreeDraw{}, nil
	case KindImage:
		return &Image{}, nil
	case KindFrame, KindMagicFrame:
		return &Frame{}, nil
	default:
		return nil, &ExhaustivenessError{Kind: kind}
	}
}
