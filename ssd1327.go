package ssd1327

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/flavioheleno/ssd1327/image4bit"
	"golang.org/x/image/draw"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Panel geometry.
const (
	Width  = 128
	Height = 128
)

// I²C control bytes.
const (
	i2cCommand = 0x00
	i2cData    = 0x40
)

const (
	_SETCOLUMN        = 0x15
	_SCROLLRIGHT      = 0x26
	_SCROLLLEFT       = 0x27
	_SCROLLOFF        = 0x2E
	_SCROLLON         = 0x2F
	_SETROW           = 0x75
	_SETCONTRAST      = 0x81
	_REMAP            = 0xA0
	_STARTLINE        = 0xA1
	_DISPLAYOFFSET    = 0xA2
	_NORMALDISPLAY    = 0xA4
	_INVERTDISPLAY    = 0xA7
	_SETMULTIPLEX     = 0xA8
	_FUNCSELECTA      = 0xAB
	_DISPLAYOFF       = 0xAE
	_DISPLAYON        = 0xAF
	_PHASELENGTH      = 0xB1
	_CLOCKDIV         = 0xB3
	_PRECHARGE2       = 0xB6
	_PRECHARGEVOLTAGE = 0xBC
	_VCOMH            = 0xBE
	_FUNCSELECTB      = 0xD5
	_COMMANDLOCK      = 0xFD
)

var (
	// ErrOutOfBounds is returned when a pixel stream or buffer does not cover
	// the requested rectangle.
	ErrOutOfBounds = image4bit.ErrOutOfBounds
	// ErrHalted is returned by drawing operations after Halt.
	ErrHalted = errors.New("ssd1327: halted")
)

// TransportError reports a failure of the reset line or of the I²C bus.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ssd1327: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Addr: 0x3D,
}

// Opts defines the options for the device.
type Opts struct {
	// The I²C address of the display.
	Addr uint16
	// Speed sets the bus clock when non zero.
	Speed physic.Frequency
	// DropClipped skips streaming pixel data when the target rectangle does not
	// fit on the panel. By default the data is still sent, into whatever
	// window was last addressed.
	DropClipped bool
}

type resetStep struct {
	level gpio.Level
	hold  time.Duration
}

// resetSequence is the reset pulse: 300ms in total.
var resetSequence = []resetStep{
	{gpio.High, 100 * time.Millisecond},
	{gpio.Low, 100 * time.Millisecond},
	{gpio.High, 100 * time.Millisecond},
}

// settleDelay is waited between configuration and display on.
const settleDelay = 100 * time.Millisecond

var initSequence = []byte{
	_DISPLAYOFF,
	_SETCOLUMN, 0x00, 0x7F,
	_SETROW, 0x00, 0x7F,
	_SETCONTRAST, 0x80,
	_REMAP, 0x51,
	_STARTLINE, 0x00,
	_DISPLAYOFFSET, 0x00,
	_NORMALDISPLAY,
	_SETMULTIPLEX, 0x7F,
	_PHASELENGTH, 0xF1,
	_CLOCKDIV, 0x00,
	_FUNCSELECTA, 0x01, // internal VDD regulator
	_PRECHARGE2, 0x0F,
	_VCOMH, 0x0F,
	_PRECHARGEVOLTAGE, 0x08,
	_FUNCSELECTB, 0x62,
	_COMMANDLOCK, 0x12,
}

var sleep = time.Sleep

// Dev is an open handle to the display controller.
//
// Dev is not safe for concurrent use; callers drawing from several goroutines
// must serialize access themselves.
type Dev struct {
	c   conn.Conn
	rst gpio.PinOut

	rect        image.Rectangle
	dropClipped bool

	cleared bool
	halted  bool
}

// NewI2C returns a Dev object that communicates over I²C to a SSD1327 display
// controller. rst is the reset line; it may be nil when the panel is reset
// externally.
//
// The panel is reset and fully initialized before NewI2C returns, which takes
// at least 400ms.
func NewI2C(b i2c.Bus, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Addr == 0 {
		o.Addr = DefaultOpts.Addr
	}
	if o.Speed != 0 {
		if err := b.SetSpeed(o.Speed); err != nil {
			return nil, &TransportError{Op: "set bus speed", Err: err}
		}
	}

	d := &Dev{
		c:           &i2c.Dev{Bus: b, Addr: o.Addr},
		rst:         rst,
		rect:        image.Rect(0, 0, Width, Height),
		dropClipped: o.DropClipped,
		cleared:     true,
	}
	if rst != nil {
		if err := rst.Out(gpio.Low); err != nil {
			return nil, &TransportError{Op: "pull RST low", Err: err}
		}
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Init resets the controller and sends the configuration sequence, then turns
// the display on. It also brings the device back after Halt.
//
// The first bus failure aborts the sequence.
func (d *Dev) Init() error {
	if err := d.Reset(); err != nil {
		return err
	}
	if err := d.sendCommands(initSequence...); err != nil {
		return err
	}
	sleep(settleDelay)
	if err := d.sendCommand(_DISPLAYON); err != nil {
		return err
	}
	d.halted = false
	return nil
}

// Reset pulses the reset line high, low, high holding each level for 100ms.
// The controller configuration is lost; call Init to restore it.
func (d *Dev) Reset() error {
	if d.rst != nil {
		for _, s := range resetSequence {
			if err := d.rst.Out(s.level); err != nil {
				return &TransportError{Op: fmt.Sprintf("drive RST %s", s.level), Err: err}
			}
			sleep(s.hold)
		}
	}
	d.cleared = true
	return nil
}

// HasCleared reports whether the screen was cleared or reset since the last
// pixel write.
func (d *Dev) HasCleared() bool {
	return d.cleared
}

// Clear blanks a rectangle of the screen.
//
// The cleared flag is set even when the write fails.
func (d *Dev) Clear(x, y, width, height int) error {
	d.cleared = true
	if width < 0 || height < 0 {
		return ErrOutOfBounds
	}
	_, err := d.write(make([]byte, width/2*height), x, y, width, height)
	return err
}

// ClearAll blanks the whole screen.
func (d *Dev) ClearAll() error {
	return d.Clear(0, 0, d.rect.Dx(), d.rect.Dy())
}

// Buffer packs an 8-bit grayscale pixel stream into the format accepted by
// ShowImage. width must be even.
func (d *Dev) Buffer(pixels []image4bit.Pixel, width, height int) ([]byte, error) {
	return image4bit.Pack(pixels, width, height)
}

// ShowImage writes a packed buffer to the rectangle at (x, y). The buffer must
// hold at least (width/2)*height bytes, row-major.
//
// A rectangle that does not fit on the panel leaves the controller window
// untouched; see Opts.DropClipped.
func (d *Dev) ShowImage(buf []byte, x, y, width, height int) error {
	sent, err := d.write(buf, x, y, width, height)
	if err != nil {
		return err
	}
	if sent {
		d.cleared = false
	}
	return nil
}

// write addresses the window then streams buf one row per transfer. It
// reports whether any data was sent.
func (d *Dev) write(buf []byte, x, y, width, height int) (bool, error) {
	if d.halted {
		return false, ErrHalted
	}
	applied, err := d.setWindow(x, y, x+width, y+height)
	if err != nil {
		return false, err
	}
	if width < 0 || height < 0 || len(buf) < width/2*height {
		return false, ErrOutOfBounds
	}
	if !applied && d.dropClipped {
		return false, nil
	}
	stride := width / 2
	if stride*height == 0 {
		return false, nil
	}
	for row := 0; row < height; row++ {
		if err := d.sendData(buf[row*stride : (row+1)*stride]); err != nil {
			return false, err
		}
	}
	return true, nil
}

// setWindow addresses the rectangle [xstart, xend) × [ystart, yend). Columns
// are addressed in pairs of pixels.
//
// A rectangle outside the panel, or one covering no column pair or no row, is
// not an error: nothing is sent and false is returned.
func (d *Dev) setWindow(xstart, ystart, xend, yend int) (bool, error) {
	w, h := d.rect.Dx(), d.rect.Dy()
	if !within(xstart, w) || !within(ystart, h) || !within(xend, w) || !within(yend, h) {
		return false, nil
	}
	if xend/2 <= xstart/2 || yend <= ystart {
		return false, nil
	}
	err := d.sendCommands(
		_SETCOLUMN, byte(xstart/2), byte(xend/2-1),
		_SETROW, byte(ystart), byte(yend-1),
	)
	return err == nil, err
}

func within(v, max int) bool {
	return v >= 0 && v <= max
}

// sendCommands sends each byte as its own transfer.
func (d *Dev) sendCommands(cmds ...byte) error {
	for _, c := range cmds {
		if err := d.sendCommand(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dev) sendCommand(cmd byte) error {
	if err := d.c.Tx([]byte{i2cCommand, cmd}, nil); err != nil {
		return &TransportError{Op: fmt.Sprintf("command 0x%02X", cmd), Err: err}
	}
	return nil
}

func (d *Dev) sendData(p []byte) error {
	if err := d.c.Tx(append([]byte{i2cData}, p...), nil); err != nil {
		return &TransportError{Op: "data", Err: err}
	}
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1327.Dev{%s, %s}", d.c, d.rect.Max)
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image4bit.Gray4Model
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// The destination is widened to even columns; pixels added that way are
// written black.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}
	dst := r.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}
	sp = sp.Add(dst.Min.Sub(r.Min))

	area := dst
	area.Min.X &^= 1
	if area.Max.X%2 != 0 {
		area.Max.X++
	}
	img := image4bit.NewHorizontalNibble(area)
	draw.Draw(img, dst, src, sp, draw.Src)
	return d.ShowImage(img.Pix, area.Min.X, area.Min.Y, area.Dx(), area.Dy())
}

// SetContrast changes the screen contrast.
func (d *Dev) SetContrast(level byte) error {
	if d.halted {
		return ErrHalted
	}
	return d.sendCommands(_SETCONTRAST, level)
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	if d.halted {
		return ErrHalted
	}
	mode := byte(_NORMALDISPLAY)
	if blackOnWhite {
		mode = _INVERTDISPLAY
	}
	return d.sendCommand(mode)
}

// ScrollSpeed is the interval between two scroll steps.
type ScrollSpeed byte

const (
	Speed6Frames   ScrollSpeed = 0x00
	Speed10Frames  ScrollSpeed = 0x01
	Speed100Frames ScrollSpeed = 0x02
	Speed200Frames ScrollSpeed = 0x03
	Speed300Frames ScrollSpeed = 0x04
	Speed400Frames ScrollSpeed = 0x05
	Speed500Frames ScrollSpeed = 0x06
	Speed2Frames   ScrollSpeed = 0x07
)

// ScrollHorizontal starts scrolling rows startRow to endRow (inclusive) across
// the full panel width. Call StopScroll before writing pixels again; RAM
// written while scrolling is corrupted.
func (d *Dev) ScrollHorizontal(startRow, endRow byte, speed ScrollSpeed, right bool) error {
	if d.halted {
		return ErrHalted
	}
	if int(endRow) >= d.rect.Dy() || startRow > endRow {
		return fmt.Errorf("ssd1327: scroll rows %d..%d out of range", startRow, endRow)
	}
	if speed > Speed2Frames {
		return fmt.Errorf("ssd1327: invalid scroll speed 0x%02X", byte(speed))
	}
	cmd := byte(_SCROLLLEFT)
	if right {
		cmd = _SCROLLRIGHT
	}
	return d.sendCommands(
		_SCROLLOFF,
		cmd,
		0x00, // dummy
		startRow,
		byte(speed),
		endRow,
		0x00, byte(d.rect.Dx()/2-1), // column pairs
		0x00, // dummy
		_SCROLLON,
	)
}

// StopScroll stops scrolling. The controller keeps the scrolled content, so
// redraw the screen afterwards.
func (d *Dev) StopScroll() error {
	if d.halted {
		return ErrHalted
	}
	return d.sendCommand(_SCROLLOFF)
}

// Halt turns off the display. Init turns it back on.
func (d *Dev) Halt() error {
	if err := d.sendCommand(_DISPLAYOFF); err != nil {
		return err
	}
	d.halted = true
	return nil
}

var _ display.Drawer = &Dev{}
