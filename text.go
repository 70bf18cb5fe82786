package ssd1327

import (
	"image"

	"github.com/flavioheleno/ssd1327/image4bit"
	"github.com/flavioheleno/ssd1327/layout"
)

// DrawText draws text on a single line with its top-left corner at (x, y).
// Newlines are not interpreted.
//
// With flip set the panel is assumed to be mounted upside down.
//
// It returns (x+width, y+height) of the drawn block.
func (d *Dev) DrawText(x, y int, text string, scale float64, f layout.Font, flip bool) (image.Point, error) {
	pos := image.Pt(x, y)
	return d.drawLine(pos, text, scale, f, func(size image.Point) image.Point {
		return layout.Place(d.rect.Size(), pos, size, flip)
	})
}

// DrawCenteredText draws text centered on the screen, moved up and left by
// (x, y).
func (d *Dev) DrawCenteredText(x, y int, text string, scale float64, f layout.Font, flip bool) (image.Point, error) {
	pos := image.Pt(x, y)
	return d.drawLine(pos, text, scale, f, func(size image.Point) image.Point {
		return layout.Center(d.rect.Size(), pos, size, flip)
	})
}

func (d *Dev) drawLine(pos image.Point, text string, scale float64, f layout.Font, place func(image.Point) image.Point) (image.Point, error) {
	img, m := layout.Rasterize(text, scale, f)
	buf, err := image4bit.PackGray(img)
	if err != nil {
		return image.Point{}, err
	}
	at := place(m.Size())
	if err := d.ShowImage(buf, at.X, at.Y, m.Width, m.Height); err != nil {
		return image.Point{}, err
	}
	return pos.Add(m.Size()), nil
}

// DrawParagraph is DrawParagraphAt starting from the top-left corner.
func (d *Dev) DrawParagraph(text string, scale float64, f layout.Font, flip bool) (image.Point, error) {
	return d.DrawParagraphAt(0, 0, text, scale, f, flip)
}

// DrawParagraphAt draws text one character at a time from (x, y), wrapping to
// the next line at the right edge. Whitespace advances the cursor without
// drawing. Newlines are not interpreted.
//
// It returns the cursor after the last character.
func (d *Dev) DrawParagraphAt(x, y int, text string, scale float64, f layout.Font, flip bool) (image.Point, error) {
	// One face for every cell; TrueType faces carry a glyph cache.
	f = layout.Fixed(f.Face(scale))
	cells, end := layout.Paragraph(text, scale, f, d.rect.Dx(), image.Pt(x, y))
	for _, c := range cells {
		if c.Blank {
			continue
		}
		img, m := layout.Rasterize(string(c.Rune), scale, f)
		buf, err := image4bit.PackGray(img)
		if err != nil {
			return image.Point{}, err
		}
		at := layout.Place(d.rect.Size(), c.At, m.Size(), flip)
		if err := d.ShowImage(buf, at.X, at.Y, m.Width, m.Height); err != nil {
			return image.Point{}, err
		}
	}
	return end, nil
}
