package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/element"
	"SketchBoard/internal/files"
	"SketchBoard/internal/state"
)

func sampleScene(t *testing.T) *state.Scene {
	t.Helper()
	s := state.NewScene(nil)
	s.SetAppState(func(a *state.AppState) { a.Name = "sample" })
	s.AddElements(
		element.NewRectangle(nil, element.Options{ID: "rect"}),
		element.NewText(nil, element.Options{ID: "text"}, element.TextOptions{Text: "hello"}),
		element.NewArrow(nil, element.Options{ID: "arrow"}, element.ArrowOptions{
			EndBinding: &element.Binding{ElementID: "rect"},
		}),
		element.NewImage(nil, element.Options{ID: "img"}, element.ImageOptions{FileID: element.Ptr("f1")}),
		element.NewEllipse(nil, element.Options{ID: "gone", IsDeleted: true}),
	)
	s.AddFiles(
		state.BinaryFile{ID: "f1", MIMEType: files.MIMEPNG, DataURL: files.DataURL(files.MIMEPNG, []byte("x"))},
		state.BinaryFile{ID: "unused", MIMEType: files.MIMEPNG},
	)
	return s
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(sampleScene(t))

	assert.Equal(t, DocumentType, doc.Type)
	assert.Equal(t, DocumentVersion, doc.Version)
	assert.Len(t, doc.Elements, 4, "deleted elements are not exported")
	assert.Len(t, doc.Files, 1)
	assert.Contains(t, doc.Files, "f1")
	assert.Equal(t, "sample", doc.AppState.Name)
}

func TestCodecsRoundTripScene(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			imp, exp, err := ForFormat(format)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, exp.Export(NewDocument(sampleScene(t)), &buf))

			doc, err := imp.Parse(&buf)
			require.NoError(t, err)
			require.Len(t, doc.Elements, 4)

			arrow, ok := doc.Elements[2].(*element.Arrow)
			require.True(t, ok)
			require.NotNil(t, arrow.EndBinding)
			assert.Equal(t, "rect", arrow.EndBinding.ElementID)
			assert.Equal(t, "hello", doc.Elements[1].(*element.Text).Text)

			target := state.NewScene(nil)
			doc.Apply(target)
			assert.Len(t, target.Elements(), 4)
			assert.Equal(t, "sample", target.AppState().Name)
			_, ok = target.File("f1")
			assert.True(t, ok)
			assert.Len(t, target.UndoStack(), 1)
		})
	}
}

func TestJSONLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(NewDocument(sampleScene(t)), &buf))
	out := buf.String()
	assert.Contains(t, out, `"type": "excalidraw"`)
	assert.Contains(t, out, `"currentItemStrokeColor"`)
	assert.Contains(t, out, `"elements": [`)
}

func TestParseRejects(t *testing.T) {
	_, err := NewJSONCodec().Parse(strings.NewReader(`{"type":"excalidrawlib","version":2}`))
	assert.ErrorIs(t, err, files.ErrUnsupportedFile)

	_, err = NewJSONCodec().Parse(strings.NewReader(`{"type":"excalidraw","version":9}`))
	assert.ErrorIs(t, err, files.ErrUnsupportedFile)

	_, err = NewJSONCodec().Parse(strings.NewReader(`{"type":"excalidraw","version":2,"elements":[{"type":"bogus"}]}`))
	assert.ErrorIs(t, err, element.ErrUnknownKind)

	_, err = NewYAMLCodec().Parse(strings.NewReader("type: [unterminated"))
	assert.Error(t, err)

	_, _, err = ForFormat("xml")
	assert.ErrorIs(t, err, files.ErrUnsupportedFile)
}

func TestApplyPartialAppStateKeepsDefaults(t *testing.T) {
	src := `{"type":"excalidraw","version":2,"elements":[],"appState":{"currentItemStrokeColor":"#e03131"}}`
	doc, err := NewJSONCodec().Parse(strings.NewReader(src))
	require.NoError(t, err)

	target := state.NewScene(nil)
	doc.Apply(target)

	style := target.Style()
	assert.Equal(t, "#e03131", style.StrokeColor)
	assert.Equal(t, element.DefaultStyle().Roughness, style.Roughness)
	assert.Equal(t, element.DefaultStyle().Opacity, style.Opacity)
	assert.Equal(t, "#ffffff", target.AppState().ViewBackgroundColor)
}
