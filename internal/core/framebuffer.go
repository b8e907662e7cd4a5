package core

import (
	"errors"
	"image"
	"image/color"
)

var (
	// ErrInvalidSize is returned when a framebuffer is created with a
	// non-positive width or height.
	ErrInvalidSize = errors.New("core: framebuffer dimensions must be positive")

	// ErrSizeMismatch is returned when a pixel slice does not hold exactly
	// width*height colors.
	ErrSizeMismatch = errors.New("core: pixel count does not match framebuffer size")
)

// Framebuffer is a fixed-size 2D grid of colors.
// Pixels are stored in row-major order: index = y*width + x, (0,0) is top-left.
// Alongside the pixels it keeps a background color (used by Clear) and a
// current color (used by Point).
type Framebuffer struct {
	width      int
	height     int
	pixels     []Color
	background Color
	current    Color
}

// NewFramebuffer creates a framebuffer with every pixel black, a black
// background and a white current color.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	return &Framebuffer{
		width:      width,
		height:     height,
		pixels:     make([]Color, width*height),
		background: Black,
		current:    White,
	}, nil
}

// MustFramebuffer is like NewFramebuffer but panics on invalid dimensions.
func MustFramebuffer(width, height int) *Framebuffer {
	fb, err := NewFramebuffer(width, height)
	if err != nil {
		panic(err)
	}
	return fb
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// InBounds reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.width && y >= 0 && y < fb.height
}

func (fb *Framebuffer) index(x, y int) int {
	return y*fb.width + x
}

// Clear sets every pixel to the background color.
func (fb *Framebuffer) Clear() {
	fb.Fill(fb.background)
}

// Fill sets every pixel to c.
func (fb *Framebuffer) Fill(c Color) {
	for i := range fb.pixels {
		fb.pixels[i] = c
	}
}

// Point sets the pixel at (x, y) to the current color.
// Out-of-bounds coordinates are silently ignored.
func (fb *Framebuffer) Point(x, y int) {
	fb.SetPixel(x, y, fb.current)
}

// SetPixel sets the pixel at (x, y) to c.
// Out-of-bounds coordinates are silently ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.pixels[fb.index(x, y)] = c
}

// Pixel returns the color at (x, y), or false if the coordinate is outside
// the framebuffer.
func (fb *Framebuffer) Pixel(x, y int) (Color, bool) {
	if !fb.InBounds(x, y) {
		return Color{}, false
	}
	return fb.pixels[fb.index(x, y)], true
}

// SetBackground sets the background color from a 0xRRGGBB value.
func (fb *Framebuffer) SetBackground(hex uint32) {
	fb.background = ColorFromHex(hex)
}

// SetCurrent sets the drawing color from a 0xRRGGBB value.
func (fb *Framebuffer) SetCurrent(hex uint32) {
	fb.current = ColorFromHex(hex)
}

// Background returns the color used by Clear.
func (fb *Framebuffer) Background() Color {
	return fb.background
}

// Current returns the color used by Point.
func (fb *Framebuffer) Current() Color {
	return fb.current
}

// Pixels returns a copy of the pixel buffer in row-major order.
func (fb *Framebuffer) Pixels() []Color {
	out := make([]Color, len(fb.pixels))
	copy(out, fb.pixels)
	return out
}

// Replace swaps in a new pixel buffer. The framebuffer takes ownership of
// pixels, which must hold exactly width*height colors.
func (fb *Framebuffer) Replace(pixels []Color) error {
	if len(pixels) != len(fb.pixels) {
		return ErrSizeMismatch
	}
	fb.pixels = pixels
	return nil
}

// Clone returns a deep copy of the framebuffer.
func (fb *Framebuffer) Clone() *Framebuffer {
	clone := *fb
	clone.pixels = fb.Pixels()
	return &clone
}

// Equal reports whether two framebuffers have the same size and pixels.
// Background and current colors are not compared.
func (fb *Framebuffer) Equal(other *Framebuffer) bool {
	if fb.width != other.width || fb.height != other.height {
		return false
	}
	for i, c := range fb.pixels {
		if c != other.pixels[i] {
			return false
		}
	}
	return true
}

// Packed returns one 0xAARRGGBB word per pixel, row-major from the top row,
// with alpha fixed at 0xFF. The framebuffer is not modified.
func (fb *Framebuffer) Packed() []uint32 {
	out := make([]uint32, len(fb.pixels))
	for i, c := range fb.pixels {
		out[i] = 0xFF<<24 | c.Hex()
	}
	return out
}

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color {
	c, ok := fb.Pixel(x, y)
	if !ok {
		return color.RGBA{}
	}
	return c.RGBA()
}
