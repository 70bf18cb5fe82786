// Package layouttest provides a deterministic font for tests.
package layouttest

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Box is a font face where every glyph is a solid rectangle.
//
// The underscore is Cell pixels wide and Ascent+Descent pixels tall. Other
// glyphs are drawn Ink pixels wide (Cell when Ink is 0), flush left.
type Box struct {
	Cell    int
	Ink     int
	Ascent  int
	Descent int
}

// Face implements layout.Font; scale is ignored.
func (b *Box) Face(float64) font.Face {
	return b
}

func (b *Box) ink() int {
	if b.Ink == 0 {
		return b.Cell
	}
	return b.Ink
}

// Close implements font.Face.
func (b *Box) Close() error {
	return nil
}

// Glyph implements font.Face.
func (b *Box) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	x, y := dot.X.Floor(), dot.Y.Floor()
	w := b.ink()
	if r == '_' {
		w = b.Cell
	}
	return image.Rect(x, y-b.Ascent, x+w, y+b.Descent), image.Opaque, image.Point{}, fixed.I(b.Cell), true
}

// GlyphBounds implements font.Face.
func (b *Box) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	w := b.ink()
	if r == '_' {
		w = b.Cell
	}
	return fixed.R(0, -b.Ascent, w, b.Descent), fixed.I(b.Cell), true
}

// GlyphAdvance implements font.Face.
func (b *Box) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	return fixed.I(b.Cell), true
}

// Kern implements font.Face.
func (b *Box) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

// Metrics implements font.Face.
func (b *Box) Metrics() font.Metrics {
	return font.Metrics{
		Height:  fixed.I(b.Ascent + b.Descent),
		Ascent:  fixed.I(b.Ascent),
		Descent: fixed.I(b.Descent),
	}
}
