package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/logging"
)

// RunApp opens the board window and blocks until it closes. A non-empty
// shareLink is shown so peers can join.
func RunApp(shareLink string, board *BoardWidget) {
	myApp := app.NewWithID("io.sketchboard")
	myWindow := myApp.NewWindow("SketchBoard")
	myWindow.Resize(fyne.NewSize(1280, 800))

	myWindow.SetContent(NewLayout(shareLink, board, myWindow))
	myWindow.SetOnDropped(func(pos fyne.Position, uris []fyne.URI) {
		if err := board.HandleDrop(pos, uris); err != nil {
			logging.L().Warn("drop failed", "error", err)
			dialog.ShowError(err, myWindow)
		}
	})
	myWindow.ShowAndRun()
}

// NewLayout arranges the toolbar, file menu, board and status bar.
func NewLayout(shareLink string, board *BoardWidget, win fyne.Window) fyne.CanvasObject {
	fileBar := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
				if err != nil || w == nil {
					return
				}
				defer w.Close()
				if err := board.SaveTo(w, formatOf(w.URI())); err != nil {
					dialog.ShowError(err, win)
				}
			}, win)
		}),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
			dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
				if err != nil || r == nil {
					return
				}
				defer r.Close()
				if err := board.LoadFrom(r, formatOf(r.URI())); err != nil {
					dialog.ShowError(err, win)
				}
			}, win)
		}),
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {
			dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
				if err != nil || r == nil {
					return
				}
				defer r.Close()
				if err := board.ImportFrom(r, formatOf(r.URI())); err != nil {
					dialog.ShowError(err, win)
				}
			}, win)
		}),
		widget.NewToolbarAction(theme.DownloadIcon(), func() {
			dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
				if err != nil || w == nil {
					return
				}
				defer w.Close()
				if err := board.ExportPDF(w); err != nil {
					dialog.ShowError(err, win)
				}
			}, win)
		}),
	)

	top := container.NewHBox(fileBar, NewToolbar(board))
	bottom := container.NewHBox(board.StatusBar())
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		bottom.Add(widget.NewLabel("Share:"))
		bottom.Add(link)
	}
	return container.NewBorder(top, bottom, nil, nil, board)
}

// formatOf picks a document format from the file extension, defaulting to
// JSON.
func formatOf(u fyne.URI) string {
	ext := strings.TrimPrefix(strings.ToLower(u.Extension()), ".")
	if ext == "" {
		return "json"
	}
	return ext
}
