// Package ssd1327 controls a 128×128 SSD1327 OLED display via I²C.
//
// The SSD1327 is a 4-bit grayscale OLED controller. This driver targets the
// 1.5" 128×128 modules, mounted so that text is rendered rotated by 180°.
// It implements the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 4-bit grayscale with 16 intensity levels (0-15)
// - Fixed 128×128 resolution
// - Two horizontally adjacent pixels share one byte: windows start and end on
// even columns
// - Adjustable contrast (0-255)
// - Display inversion
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I²C clock
//	SDA         → I²C data
//	RST         → GPIO (any available pin)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/flavioheleno/ssd1327"
//		"github.com/flavioheleno/ssd1327/layout"
//		"golang.org/x/image/font/gofont/gomono"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		if _, err := host.Init(); err != nil {
//			log.Fatal(err)
//		}
//		b, err := i2creg.Open("")
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer b.Close()
//
//		dev, err := ssd1327.NewI2C(b, gpioreg.ByName("GPIO27"), nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Halt()
//
//		f, _ := layout.ParseTrueType(gomono.TTF)
//		dev.ClearAll()
//		dev.DrawParagraph("Hello from periph!", 16, f, false)
//	}
//
// # Raw Buffers
//
// ShowImage writes a packed buffer (see package image4bit) to a rectangle:
//
//	img := image.NewGray(image.Rect(0, 0, 32, 16))
//	// ... draw ...
//	buf, _ := image4bit.PackGray(img)
//	dev.ShowImage(buf, 10, 20, 32, 16)
//
// Rectangles that do not fit on the panel do not update the controller
// window. The bytes are still streamed into the previously addressed window
// unless Opts.DropClipped is set.
//
// # Text
//
// DrawText, DrawCenteredText and DrawParagraph render with any layout.Font.
// Every character takes a cell as wide as the font's underscore. When flip is
// set the placement is mirrored for a panel mounted the other way up.
//
// # Cleared State
//
// HasCleared reports whether Clear, ClearAll or Reset happened after the last
// successful pixel write.
//
// # Concurrency
//
// A Dev must be used from one goroutine at a time. Reset and Init block for
// 300ms and 400ms respectively.
package ssd1327
