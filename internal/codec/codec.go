// Package codec reads and writes scene documents.
package codec

import (
	"fmt"
	"io"

	"SketchBoard/internal/element"
	"SketchBoard/internal/files"
	"SketchBoard/internal/state"
)

// Document format identifiers.
const (
	DocumentType    = "excalidraw"
	DocumentVersion = 2
	DocumentSource  = "sketchboard"
)

// Importer parses a scene document.
type Importer interface {
	Parse(r io.Reader) (*Document, error)
	Format() string
}

// Exporter writes a scene document.
type Exporter interface {
	Export(doc *Document, w io.Writer) error
	Format() string
}

// Document is the serialized form of a scene.
type Document struct {
	Type     string                      `json:"type"`
	Version  int                         `json:"version"`
	Source   string                      `json:"source"`
	Elements element.List                `json:"elements"`
	AppState *state.AppState             `json:"appState,omitempty"`
	Files    map[string]state.BinaryFile `json:"files,omitempty"`
}

// NewDocument captures the non-deleted elements of s, its editor state and
// the files its images reference.
func NewDocument(s *state.Scene) *Document {
	els := element.CloneAll(s.NonDeletedElements())
	app := s.AppState()

	all := s.Files()
	used := make(map[string]state.BinaryFile)
	for _, el := range els {
		img, ok := el.(*element.Image)
		if !ok || img.FileID == nil {
			continue
		}
		if f, ok := all[*img.FileID]; ok {
			used[f.ID] = f
		}
	}

	return &Document{
		Type:     DocumentType,
		Version:  DocumentVersion,
		Source:   DocumentSource,
		Elements: els,
		AppState: &app,
		Files:    used,
	}
}

// Validate checks the document header.
func (d *Document) Validate() error {
	if d.Type != DocumentType {
		return fmt.Errorf("document type %q: %w", d.Type, files.ErrUnsupportedFile)
	}
	if d.Version > DocumentVersion {
		return fmt.Errorf("document version %d is newer than %d: %w", d.Version, DocumentVersion, files.ErrUnsupportedFile)
	}
	return nil
}

// Apply replaces the scene's elements with the document's and registers
// its files. The document's style replaces the scene's and the selection
// starts empty.
func (d *Document) Apply(s *state.Scene) {
	update := state.SceneUpdate{
		Elements: element.CloneAll(d.Elements),
		Capture:  true,
	}
	if d.AppState != nil {
		app := s.AppState()
		app.Style = d.AppState.Style.Copy()
		if d.AppState.Name != "" {
			app.Name = d.AppState.Name
		}
		if d.AppState.ViewBackgroundColor != "" {
			app.ViewBackgroundColor = d.AppState.ViewBackgroundColor
		}
		app.SelectedElementIDs = map[string]bool{}
		app.SelectedGroupIDs = map[string]bool{}
		app.EditingGroupID = nil
		update.AppState = &app
	}
	s.UpdateScene(update)

	fs := make([]state.BinaryFile, 0, len(d.Files))
	for _, f := range d.Files {
		fs = append(fs, f)
	}
	s.AddFiles(fs...)
}

// ForFormat returns the codec registered for a format name.
func ForFormat(format string) (Importer, Exporter, error) {
	switch format {
	case "json", "excalidraw":
		c := NewJSONCodec()
		return c, c, nil
	case "yaml", "yml":
		c := NewYAMLCodec()
		return c, c, nil
	default:
		return nil, nil, fmt.Errorf("codec %q: %w", format, files.ErrUnsupportedFile)
	}
}
