package element

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// metricsFace is a fixed-pitch reference face. Widths are scaled from its
// 13px height to the requested font size.
var metricsFace font.Face = basicfont.Face7x13

const metricsFaceSize = 13

// lineHeights mirrors the per-family unitless line heights.
var lineHeights = map[FontFamily]float64{
	FontVirgil:         1.25,
	FontHelvetica:      1.15,
	FontCascadia:       1.2,
	FontExcalifont:     1.25,
	FontNunito:         1.35,
	FontLilitaOne:      1.15,
	FontComicShanns:    1.25,
	FontLiberationSans: 1.15,
}

// LineHeight returns the unitless line height for a font family.
func LineHeight(family FontFamily) float64 {
	if lh, ok := lineHeights[family]; ok {
		return lh
	}
	return 1.25
}

// TextMetrics is the measured size of a block of text.
type TextMetrics struct {
	Width  float64
	Height float64
}

// MeasureText estimates the rendered size of text. Lines are split on "\n";
// the width is the widest line and the height is lines*fontSize*lineHeight.
func MeasureText(text string, fontSize, lineHeight float64) TextMetrics {
	lines := strings.Split(normalizeText(text), "\n")
	scale := fontSize / metricsFaceSize

	var widest float64
	for _, line := range lines {
		adv := font.MeasureString(metricsFace, line)
		w := float64(adv) / 64 * scale
		if w > widest {
			widest = w
		}
	}
	return TextMetrics{
		Width:  widest,
		Height: float64(len(lines)) * fontSize * lineHeight,
	}
}

func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\t", "        ")
	return strings.ReplaceAll(text, "\r\n", "\n")
}
