package image4bit

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestGray4RGBA(t *testing.T) {
	tests := []struct {
		name string
		gray Gray4
		want uint32
	}{
		{"black", Gray4{Y: 0}, 0x0000},
		{"mid gray", Gray4{Y: 8}, 0x8888},
		{"white", Gray4{Y: 15}, 0xFFFF},
		{"mask ignored", Gray4{Y: 0x5F}, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.gray.RGBA()
			if r != tt.want || g != tt.want || b != tt.want || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, ffff)", r, g, b, a, tt.want, tt.want, tt.want)
			}
		})
	}
}

func TestGray4ModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  uint8
	}{
		{"gray4 passthrough", Gray4{Y: 7}, 7},
		{"black", color.Black, 0},
		{"white", color.White, 15},
		{"gray rgb", color.RGBA{0x88, 0x88, 0x88, 0xFF}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Gray4Model.Convert(tt.input).(Gray4)
			if result.Y != tt.want {
				t.Errorf("Gray4Model.Convert(%v).Y = %d, want %d", tt.input, result.Y, tt.want)
			}
		})
	}
}

func TestNewHorizontalNibble(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantPanic  bool
		wantStride int
		wantPixLen int
	}{
		{"128x128", image.Rect(0, 0, 128, 128), false, 64, 8192},
		{"4x2", image.Rect(0, 0, 4, 2), false, 2, 4},
		{"offset rect", image.Rect(10, 20, 14, 22), false, 2, 4},
		{"odd width panics", image.Rect(0, 0, 5, 2), true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if (r != nil) != tt.wantPanic {
					t.Errorf("panic = %v, want panic = %v", r != nil, tt.wantPanic)
				}
			}()

			img := NewHorizontalNibble(tt.rect)
			if img.Rect != tt.rect {
				t.Errorf("Rect = %v, want %v", img.Rect, tt.rect)
			}
			if img.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", img.Stride, tt.wantStride)
			}
			if len(img.Pix) != tt.wantPixLen {
				t.Errorf("len(Pix) = %d, want %d", len(img.Pix), tt.wantPixLen)
			}
		})
	}
}

func TestHorizontalNibbleNibblePacking(t *testing.T) {
	img := NewHorizontalNibble(image.Rect(0, 0, 4, 1))

	img.SetGray4(0, 0, Gray4{Y: 5})
	img.SetGray4(1, 0, Gray4{Y: 10})
	img.SetGray4(2, 0, Gray4{Y: 3})
	img.SetGray4(3, 0, Gray4{Y: 12})

	if img.Pix[0] != 0x5A {
		t.Errorf("Pix[0] = 0x%02X, want 0x5A", img.Pix[0])
	}
	if img.Pix[1] != 0x3C {
		t.Errorf("Pix[1] = 0x%02X, want 0x3C", img.Pix[1])
	}
}

func TestHorizontalNibbleSet(t *testing.T) {
	img := NewHorizontalNibble(image.Rect(0, 0, 2, 2))

	img.Set(0, 0, Gray4{Y: 9})
	if got := img.Gray4At(0, 0).Y; got != 9 {
		t.Errorf("Gray4At(0, 0).Y = %d, want 9", got)
	}

	img.Set(1, 0, color.White)
	if got := img.Gray4At(1, 0).Y; got != 15 {
		t.Errorf("Gray4At(1, 0).Y = %d, want 15", got)
	}
	if _, ok := img.At(1, 0).(Gray4); !ok {
		t.Errorf("At(1, 0) returned %T, want Gray4", img.At(1, 0))
	}
}

func TestHorizontalNibbleOutOfBounds(t *testing.T) {
	img := NewHorizontalNibble(image.Rect(0, 0, 4, 4))

	img.SetGray4(-1, 0, Gray4{Y: 15})
	img.SetGray4(4, 0, Gray4{Y: 15})
	for i, b := range img.Pix {
		if b != 0 {
			t.Errorf("Pix[%d] = 0x%02X after out-of-bounds writes, want 0", i, b)
		}
	}
	if got := img.Gray4At(0, -1).Y; got != 0 {
		t.Errorf("Gray4At(0, -1).Y = %d, want 0", got)
	}
}

func TestHorizontalNibblePixOffset(t *testing.T) {
	img := NewHorizontalNibble(image.Rect(0, 0, 8, 2))

	tests := []struct {
		x, y   int
		offset int
		shift  uint
	}{
		{0, 0, 0, 4},
		{1, 0, 0, 0},
		{2, 0, 1, 4},
		{3, 0, 1, 0},
		{0, 1, 4, 4},
		{1, 1, 4, 0},
	}

	for _, tt := range tests {
		offset, shift := img.pixOffset(tt.x, tt.y)
		if offset != tt.offset || shift != tt.shift {
			t.Errorf("pixOffset(%d, %d) = (%d, %d), want (%d, %d)", tt.x, tt.y, offset, shift, tt.offset, tt.shift)
		}
	}
}

func gradient(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x*31 + y*7)})
		}
	}
	return img
}

func TestPackLength(t *testing.T) {
	sizes := []image.Point{{2, 1}, {4, 4}, {10, 3}, {128, 128}, {0, 0}}
	for _, s := range sizes {
		buf, err := PackGray(gradient(s.X, s.Y))
		if err != nil {
			t.Fatalf("PackGray(%v) error = %v", s, err)
		}
		if want := s.X / 2 * s.Y; len(buf) != want {
			t.Errorf("len(PackGray(%v)) = %d, want %d", s, len(buf), want)
		}
	}
}

func TestPackNibblePlacement(t *testing.T) {
	const w, h = 12, 5
	img := gradient(w, h)
	buf, err := PackGray(img)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := img.GrayAt(x, y).Y % 16
			b := buf[x/2+y*(w/2)]
			got := b & 0x0F
			if x%2 == 0 {
				got = b >> 4
			}
			if got != want {
				t.Errorf("pixel (%d, %d) packed as %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestPackPreservesSibling(t *testing.T) {
	// Only the odd pixel is supplied twice; the even pixel keeps the 0xF fill.
	pixels := []Pixel{{X: 1, Y: 0, Gray: 0x13}, {X: 1, Y: 0, Gray: 0x02}}
	buf, err := Pack(pixels, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if buf[0] != 0xF2 {
		t.Errorf("buf[0] = 0x%02X, want 0xF2", buf[0])
	}
}

func TestPackOutOfBounds(t *testing.T) {
	tests := []struct {
		name   string
		pixels []Pixel
		w, h   int
	}{
		{"too few", make([]Pixel, 3), 2, 2},
		{"too many", make([]Pixel, 5), 2, 2},
		{"outside rect", []Pixel{{X: 0, Y: 0}, {X: 2, Y: 0}}, 2, 1},
		{"negative height", nil, 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Pack(tt.pixels, tt.w, tt.h)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Pack() error = %v, want ErrOutOfBounds", err)
			}
			if buf != nil {
				t.Errorf("Pack() buffer = %v, want nil", buf)
			}
		})
	}
}

func TestEnumerateOffsetImage(t *testing.T) {
	img := image.NewGray(image.Rect(3, 7, 5, 8))
	img.SetGray(4, 7, color.Gray{Y: 9})
	got := Enumerate(img)
	want := []Pixel{{X: 0, Y: 0, Gray: 0}, {X: 1, Y: 0, Gray: 9}}
	if len(got) != len(want) {
		t.Fatalf("len(Enumerate()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Enumerate()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
