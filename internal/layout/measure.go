package layout

import (
	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Measurer reports the advance of grapheme clusters and the height of a line.
type Measurer interface {
	// Advance returns the horizontal advance of a grapheme cluster.
	Advance(grapheme string) float64

	// LineHeight returns the height of one visual line.
	LineHeight() float64
}

// CellMeasurer measures text in terminal cells. Wide runes take two cells.
type CellMeasurer struct{}

// Advance returns the cell width of the grapheme.
func (CellMeasurer) Advance(grapheme string) float64 {
	return float64(uniseg.StringWidth(grapheme))
}

// LineHeight returns 1: one cell row per line.
func (CellMeasurer) LineHeight() float64 {
	return 1
}

// FontMeasurer measures text in pixels using a font face.
type FontMeasurer struct {
	Face font.Face
}

// NewFontMeasurer returns a measurer for face. A nil face selects the
// fixed 7x13 bitmap face.
func NewFontMeasurer(face font.Face) FontMeasurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	return FontMeasurer{Face: face}
}

// Advance returns the pixel advance of the grapheme.
func (m FontMeasurer) Advance(grapheme string) float64 {
	return float64(font.MeasureString(m.Face, grapheme)) / 64
}

// LineHeight returns the face line height in pixels.
func (m FontMeasurer) LineHeight() float64 {
	return float64(m.Face.Metrics().Height) / 64
}

// MeasureString returns the advance of s, grapheme by grapheme.
func MeasureString(m Measurer, s string) float64 {
	var w float64
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w += m.Advance(g.Str())
	}
	return w
}
