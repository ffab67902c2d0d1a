package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLCodec writes the same document as the JSON codec in YAML. Field names
// follow the JSON document.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports a scene document from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*Document, error) {
	var tree any
	if err := yaml.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return NewJSONCodec().Parse(bytes.NewReader(data))
}

// Export writes a scene document as YAML
func (c *YAMLCodec) Export(doc *Document, w io.Writer) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(tree); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
