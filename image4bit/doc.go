// Package image4bit provides the 4-bit grayscale image format and pixel packer
// for the SSD1327 display controller.
//
// The SSD1327 OLED controller uses 4-bit grayscale (16 intensity levels from 0-15).
// Pixels are stored in horizontal nibble packing where each byte contains 2 pixels.
//
// Memory layout example for a 4-pixel row:
//
//	Pixels: 0  1  2  3
//	Values: 5  10 3  12
//	Bytes:  0x5A     0x3C
//
// An 8-bit raster is converted by truncating every sample to its low nibble:
//
//	img := image.NewGray(image.Rect(0, 0, 16, 8))
//	// ... draw ...
//	buf, err := image4bit.PackGray(img)
//
// Widths must be even since two horizontally adjacent pixels share a byte.
package image4bit
