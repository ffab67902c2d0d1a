package ui

import (
	"errors"

	"fyne.io/fyne/v2"

	"SketchBoard/internal/codec"
	"SketchBoard/internal/files"
	"SketchBoard/internal/logging"
)

// HandleDrop imports files dropped on the window. pos is in window
// coordinates.
func (b *BoardWidget) HandleDrop(pos fyne.Position, uris []fyne.URI) error {
	ev := codec.DropEvent{}
	for _, u := range uris {
		f, err := files.LoadFile("", u.Path())
		if err != nil {
			return err
		}
		ev.Files = append(ev.Files, f)
	}

	local := pos
	if app := fyne.CurrentApp(); app != nil {
		local = pos.Subtract(app.Driver().AbsolutePositionForObject(b))
	}
	b.mu.RLock()
	scenePos := b.toScene(local)
	b.mu.RUnlock()
	ev.X, ev.Y = float64(scenePos.X), float64(scenePos.Y)

	added, err := codec.Drop(b.scene, ev)
	if err != nil {
		if errors.Is(err, files.ErrUnsupportedFile) {
			b.SetStatus("Unsupported file")
		}
		return err
	}
	logging.L().Info("dropped files imported", "files", len(ev.Files), "elements", len(added))
	b.Refresh()
	return nil
}
