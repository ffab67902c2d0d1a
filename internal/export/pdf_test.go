package export

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/element"
)

func TestPDFDrawsEveryKind(t *testing.T) {
	els := []element.Element{
		element.NewRectangle(nil, element.Options{BackgroundColor: element.Ptr("#ffc9c9")}),
		element.NewDiamond(nil, element.Options{X: element.Ptr(150.0), StrokeStyle: element.Ptr(element.StrokeDashed)}),
		element.NewEllipse(nil, element.Options{X: element.Ptr(300.0), Angle: element.Ptr(math.Pi / 4)}),
		element.NewText(nil, element.Options{X: element.Ptr(0.0), Y: element.Ptr(200.0)}, element.TextOptions{Text: "hello\nworld", TextAlign: element.Ptr(element.AlignCenter)}),
		element.NewLine(nil, element.Options{Y: element.Ptr(300.0)}, element.LinearOptions{}),
		element.NewArrow(nil, element.Options{X: element.Ptr(150.0), Y: element.Ptr(300.0)}, element.ArrowOptions{
			LinearOptions: element.LinearOptions{EndArrowhead: element.Ptr(element.ArrowheadArrow)},
		}),
		element.NewFreeDraw(nil, element.Options{X: element.Ptr(300.0), Y: element.Ptr(300.0)}, element.FreeDrawOptions{
			Points: []element.Point{{0, 0}, {10, 5}, {20, 0}},
		}),
		element.NewImage(nil, element.Options{Y: element.Ptr(450.0)}, element.ImageOptions{}),
		element.NewFrame(nil, element.Options{X: element.Ptr(-20.0), Y: element.Ptr(-20.0), Width: element.Ptr(600.0), Height: element.Ptr(600.0)},
			element.FrameOptions{Name: element.Ptr("Frame 1")}),
		element.NewEmbeddable(nil, element.Options{X: element.Ptr(150.0), Y: element.Ptr(450.0)}),
		element.NewRectangle(nil, element.Options{IsDeleted: true}),
	}

	var buf bytes.Buffer
	opts := DefaultPDFOptions()
	opts.Title = "Board"
	require.NoError(t, PDF(&buf, els, opts))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFEmptyScene(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, nil, PDFOptions{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
