package layout

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Font yields a face rendering at the requested pixel scale.
//
// Every face must be able to bound the ASCII underscore: its width is the
// cell width used for all characters.
type Font interface {
	Face(scale float64) font.Face
}

type trueTypeFont struct {
	f *truetype.Font
}

// TrueType returns a scalable Font. scale is the em size in pixels.
func TrueType(f *truetype.Font) Font {
	return trueTypeFont{f: f}
}

// ParseTrueType parses a TTF file into a scalable Font.
func ParseTrueType(data []byte) (Font, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout: failed to parse font: %w", err)
	}
	return TrueType(f), nil
}

func (t trueTypeFont) Face(scale float64) font.Face {
	return truetype.NewFace(t.f, &truetype.Options{
		Size: scale,
		DPI:  72,
	})
}

type fixedFont struct {
	face font.Face
}

// Fixed wraps a face that has a single size, such as basicfont.Face7x13.
// The scale argument is ignored.
func Fixed(face font.Face) Font {
	return fixedFont{face: face}
}

func (f fixedFont) Face(float64) font.Face {
	return f.face
}
