package codec

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"SketchBoard/internal/element"
	"SketchBoard/internal/files"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
)

// maxImageSide bounds the longer side of a dropped image on the canvas.
const maxImageSide = 400

// DropEvent is a set of files released over the board at (X, Y).
type DropEvent struct {
	Files []*files.File
	X, Y  float64
}

// GetData returns the text of the first file whose type is mime, or "".
func (e DropEvent) GetData(mime string) string {
	for _, f := range e.Files {
		if text := f.Text(mime); text != "" {
			return text
		}
	}
	return ""
}

// Drop imports the first dropped file into s. Scene documents replace the
// scene; images are inserted at the drop point and selected. It returns the
// elements that were added.
func Drop(s *state.Scene, ev DropEvent) ([]element.Element, error) {
	if len(ev.Files) == 0 {
		return nil, fmt.Errorf("drop: no files: %w", files.ErrUnsupportedFile)
	}
	f := ev.Files[0]
	logging.L().Debug("file dropped", "name", f.Name, "mime", f.MIMEType, "bytes", len(f.Data))

	switch {
	case files.IsScene(f.MIMEType):
		doc, err := NewJSONCodec().Parse(strings.NewReader(ev.GetData(f.MIMEType)))
		if err != nil {
			return nil, fmt.Errorf("drop %s: %w", f.Name, err)
		}
		doc.Apply(s)
		return s.NonDeletedElements(), nil
	case files.IsImage(f.MIMEType):
		img := dropImage(s, f, ev.X, ev.Y)
		return []element.Element{img}, nil
	default:
		return nil, fmt.Errorf("drop %s (%q): %w", f.Name, f.MIMEType, files.ErrUnsupportedFile)
	}
}

func dropImage(s *state.Scene, f *files.File, x, y float64) *element.Image {
	id := f.ID()
	s.AddFiles(state.BinaryFile{ID: id, MIMEType: f.MIMEType, DataURL: f.DataURL()})

	w, h := imageSize(f.Data)
	img := element.NewImage(s.Style(), element.Options{
		X:      element.Ptr(x - w/2),
		Y:      element.Ptr(y - h/2),
		Width:  element.Ptr(w),
		Height: element.Ptr(h),
	}, element.ImageOptions{FileID: &id, Status: element.ImageSaved})

	s.AddElements(img)
	s.SetSelectedElements(img)
	return img
}

// imageSize returns the canvas size for an image, scaled down to fit
// maxImageSide. Formats that cannot be decoded get a square.
func imageSize(data []byte) (w, h float64) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return 100, 100
	}
	w, h = float64(cfg.Width), float64(cfg.Height)
	if longest := max(w, h); longest > maxImageSide {
		k := maxImageSide / longest
		w, h = w*k, h*k
	}
	return w, h
}
