// Package layout turns strings into grayscale rasters sized for a nibble
// packed display and computes where they land on screen.
//
// Text is laid out on a monospaced grid: every character occupies a cell as
// wide as the underscore glyph, whatever its real advance. Proportional fonts
// therefore render with uniform spacing.
package layout

import (
	"image"
	"image/color"
	"unicode"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// Foreground is the gray level text is drawn with (4-bit maximum).
const Foreground = 15

// Metrics is the measured size of a single line of text.
type Metrics struct {
	Width     int
	Height    int
	CellWidth int
}

// Size returns the total width and height.
func (m Metrics) Size() image.Point {
	return image.Pt(m.Width, m.Height)
}

// SizeToEven rounds both dimensions up to the next even number.
func SizeToEven(size image.Point) image.Point {
	if size.X%2 != 0 {
		size.X++
	}
	if size.Y%2 != 0 {
		size.Y++
	}
	return size
}

// Measure returns the size of text rendered on a single line. Newlines are
// not interpreted; they take a cell like any other rune.
func Measure(text string, scale float64, f Font) Metrics {
	return measure(f.Face(scale), len([]rune(text)))
}

// Size is Measure without the cell width.
func Size(text string, scale float64, f Font) image.Point {
	return Measure(text, scale, f).Size()
}

func measure(face font.Face, runes int) Metrics {
	m := face.Metrics()
	height := (m.Ascent + m.Descent).Ceil()

	b, _, _ := face.GlyphBounds('_')
	cell := SizeToEven(image.Pt(b.Max.X.Ceil()-b.Min.X.Floor(), height))

	return Metrics{
		Width:     cell.X * runes,
		Height:    cell.Y,
		CellWidth: cell.X,
	}
}

// Rasterize draws text into a grayscale image of the measured size, one rune
// per cell, then rotates it by 180° to match the panel mounting.
func Rasterize(text string, scale float64, f Font) (*image.Gray, Metrics) {
	face := f.Face(scale)
	runes := []rune(text)
	m := measure(face, len(runes))

	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Gray{Y: Foreground}),
		Face: face,
	}
	ascent := face.Metrics().Ascent
	for i, r := range runes {
		if unicode.IsControl(r) {
			continue
		}
		d.Dot = fixed.Point26_6{X: fixed.I(i * m.CellWidth), Y: ascent}
		d.DrawString(string(r))
	}
	return Rotate180(img), m
}

// Rotate180 returns a copy of src turned upside down, anchored at the origin.
func Rotate180(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	s2d := f64.Aff3{
		-1, 0, float64(b.Max.X),
		0, -1, float64(b.Max.Y),
	}
	draw.NearestNeighbor.Transform(dst, s2d, src, b, draw.Src, nil)
	return dst
}
