package layout

import (
	"image"
	"unicode"
)

// Place returns the top-left corner of a block of the given size drawn at pos
// on a screen of the given size.
//
// With flip set the screen is mounted upside down: the placement is mirrored
// about both axes. Content is not rotated here, Rasterize already did it.
func Place(screen, pos, size image.Point, flip bool) image.Point {
	if flip {
		return image.Pt(screen.X-size.X-pos.X, screen.Y-size.Y-pos.Y)
	}
	return pos
}

// Center is Place relative to the screen center; offset moves the block up
// and left.
func Center(screen, offset, size image.Point, flip bool) image.Point {
	pos := image.Pt(screen.X/2-size.X/2-offset.X, screen.Y/2-size.Y/2-offset.Y)
	return Place(screen, pos, size, flip)
}

// Advance moves a paragraph cursor past one cell. The line wraps when a
// further cell of the same width would run past screenWidth.
func Advance(screenWidth int, cursor, cell image.Point) image.Point {
	cursor.X += cell.X
	if cursor.X+cell.X > screenWidth {
		cursor.X = 0
		cursor.Y += cell.Y
	}
	return cursor
}

// Cell is one character of a wrapped paragraph.
type Cell struct {
	Rune rune
	// At is the cursor position the cell is drawn at, before any flip.
	At   image.Point
	Size image.Point
	// Blank cells (whitespace) take space but draw nothing.
	Blank bool
}

// Paragraph wraps text greedily across a screen of the given width starting
// at start. Whitespace is measured as an underscore. It returns the cells in
// order and the final cursor.
func Paragraph(text string, scale float64, f Font, screenWidth int, start image.Point) ([]Cell, image.Point) {
	size := measure(f.Face(scale), 1).Size()
	cursor := start
	var cells []Cell
	for _, r := range text {
		cells = append(cells, Cell{
			Rune:  r,
			At:    cursor,
			Size:  size,
			Blank: unicode.IsSpace(r),
		})
		cursor = Advance(screenWidth, cursor, size)
	}
	return cells, cursor
}
