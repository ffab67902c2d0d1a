package ui

import (
	"fmt"
	"io"

	"SketchBoard/internal/export"
)

// ExportPDF writes the visible scene as a one-page PDF.
func (b *BoardWidget) ExportPDF(w io.Writer) error {
	opts := export.DefaultPDFOptions()
	opts.Title = b.scene.AppState().Name
	els := b.scene.NonDeletedElements()
	if err := export.PDF(w, els, opts); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	b.SetStatus(fmt.Sprintf("Exported %d elements", len(els)))
	return nil
}
