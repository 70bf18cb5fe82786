package image4bit

import (
	"errors"
	"image"
	"image/color"
)

// ErrOutOfBounds is returned when a pixel stream does not match the target
// rectangle.
var ErrOutOfBounds = errors.New("image4bit: buffer index out of bounds")

// Gray4 represents a 4-bit grayscale color (0-15 intensity levels).
// Only the lower 4 bits of Y are used.
type Gray4 struct {
	Y uint8
}

// RGBA converts the Gray4 color to standard RGBA.
func (c Gray4) RGBA() (r, g, b, a uint32) {
	// 0xF * 0x1111 = 0xFFFF
	y := uint32(c.Y&0x0F) * 0x1111
	return y, y, y, 0xFFFF
}

func toGray4(c color.Color) color.Color {
	if g, ok := c.(Gray4); ok {
		return g
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Gray4{Y: uint8(y >> 12)}
}

// Gray4Model converts colors to Gray4.
var Gray4Model = color.ModelFunc(toGray4)

// HorizontalNibble is a 4-bit grayscale image where pixels are stored in horizontal nibble packing.
// Pix is directly the wire format streamed to the controller.
type HorizontalNibble struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// NewHorizontalNibble creates a new zeroed (black) image with the specified bounds.
// The width must be even.
func NewHorizontalNibble(r image.Rectangle) *HorizontalNibble {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalNibble{Rect: r}
	}
	if w%2 != 0 {
		panic("image4bit: width must be even")
	}
	return &HorizontalNibble{
		Pix:    make([]byte, w/2*h),
		Stride: w / 2,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *HorizontalNibble) ColorModel() color.Model {
	return Gray4Model
}

// Bounds returns the image bounds.
func (p *HorizontalNibble) Bounds() image.Rectangle {
	return p.Rect
}

// At implements image.Image.
func (p *HorizontalNibble) At(x, y int) color.Color {
	return p.Gray4At(x, y)
}

// Gray4At returns the Gray4 color of the pixel at (x, y).
func (p *HorizontalNibble) Gray4At(x, y int) Gray4 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Gray4{}
	}
	offset, shift := p.pixOffset(x, y)
	return Gray4{Y: (p.Pix[offset] >> shift) & 0x0F}
}

// Set implements draw.Image.
func (p *HorizontalNibble) Set(x, y int, c color.Color) {
	p.SetGray4(x, y, Gray4Model.Convert(c).(Gray4))
}

// SetGray4 overwrites the nibble of the pixel at (x, y). The sibling pixel
// sharing the byte is left untouched.
func (p *HorizontalNibble) SetGray4(x, y int, c Gray4) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, shift := p.pixOffset(x, y)
	p.Pix[offset] = (p.Pix[offset] &^ (0x0F << shift)) | ((c.Y & 0x0F) << shift)
}

// pixOffset returns the byte offset and bit shift for the pixel at (x, y).
// Even x lands in the high nibble, odd x in the low nibble.
func (p *HorizontalNibble) pixOffset(x, y int) (offset int, shift uint) {
	offset = (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)/2
	shift = uint(4 * (1 - (x & 1)))
	return
}

// Pixel is one sample of an 8-bit grayscale raster.
type Pixel struct {
	X, Y int
	Gray uint8
}

// Enumerate returns the pixels of img in row-major order, with coordinates
// relative to the image origin.
func Enumerate(img *image.Gray) []Pixel {
	b := img.Bounds()
	out := make([]Pixel, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, Pixel{X: x - b.Min.X, Y: y - b.Min.Y, Gray: img.GrayAt(x, y).Y})
		}
	}
	return out
}

// Pack converts an 8-bit grayscale pixel stream covering exactly width*height
// pixels into the packed wire format, (width/2)*height bytes long.
//
// The buffer starts filled with 0xFF and every pixel only replaces its own
// nibble with Gray%16, so a pixel missing from the stream stays at 15.
//
// width must be even; Pack panics otherwise. Round sizes up first (see
// layout.SizeToEven).
func Pack(pixels []Pixel, width, height int) ([]byte, error) {
	if width < 0 || height < 0 || len(pixels) != width*height {
		return nil, ErrOutOfBounds
	}
	img := NewHorizontalNibble(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	for _, px := range pixels {
		if !(image.Point{X: px.X, Y: px.Y}.In(img.Rect)) {
			return nil, ErrOutOfBounds
		}
		img.SetGray4(px.X, px.Y, Gray4{Y: px.Gray % 16})
	}
	return img.Pix, nil
}

// PackGray is Pack over every pixel of img.
func PackGray(img *image.Gray) ([]byte, error) {
	b := img.Bounds()
	return Pack(Enumerate(img), b.Dx(), b.Dy())
}
