package core

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFramebuffer(t *testing.T) {
	fb, err := NewFramebuffer(80, 24)
	require.NoError(t, err)

	assert.Equal(t, 80, fb.Width())
	assert.Equal(t, 24, fb.Height())
	assert.Equal(t, Black, fb.Background())
	assert.Equal(t, White, fb.Current())

	// Check that it's initialized with black
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			c, _ := fb.Pixel(x, y)
			require.Equal(t, Black, c, "pixel (%d,%d)", x, y)
		}
	}
}

func TestNewFramebufferInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {5, -1}, {0, 0}} {
		fb, err := NewFramebuffer(size[0], size[1])
		assert.ErrorIs(t, err, ErrInvalidSize, "size %v", size)
		assert.Nil(t, fb, "size %v", size)
	}
}

func TestFramebufferSetPixelAndGet(t *testing.T) {
	fb := MustFramebuffer(10, 10)
	red := NewColor(255, 0, 0)

	fb.SetPixel(5, 5, red)
	c, ok := fb.Pixel(5, 5)
	assert.True(t, ok)
	assert.Equal(t, red, c)

	for _, xy := range [][2]int{{-1, 0}, {10, 0}, {0, 10}} {
		_, ok := fb.Pixel(xy[0], xy[1])
		assert.False(t, ok, "Pixel(%d, %d) outside the buffer", xy[0], xy[1])
	}
}

func TestFramebufferOutOfBoundsWritesAreIgnored(t *testing.T) {
	fb := MustFramebuffer(4, 3)
	fb.SetPixel(1, 1, NewColor(1, 2, 3))
	before := fb.Clone()

	coords := [][2]int{
		{-1, 0}, {0, -1}, {-1, -1}, {4, 0}, {0, 3}, {4, 3},
		{100, 100}, {-100, 1}, {1, -100},
	}
	for _, c := range coords {
		assert.NotPanics(t, func() {
			fb.Point(c[0], c[1])
			fb.SetPixel(c[0], c[1], White)
		})
	}

	assert.True(t, fb.Equal(before), "out of bounds writes should leave the framebuffer unchanged")
}

func TestFramebufferPointUsesCurrentColor(t *testing.T) {
	fb := MustFramebuffer(10, 10)
	fb.SetCurrent(0xFFDDDD)
	fb.Point(2, 3)

	c, _ := fb.Pixel(2, 3)
	assert.Equal(t, ColorFromHex(0xFFDDDD), c)
	c, _ = fb.Pixel(3, 2)
	assert.Equal(t, Black, c, "Point should touch only (2, 3)")
}

func TestFramebufferClear(t *testing.T) {
	fb := MustFramebuffer(6, 4)
	fb.Fill(White)
	fb.SetBackground(0x333355)
	fb.Clear()

	bg := ColorFromHex(0x333355)
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			c, _ := fb.Pixel(x, y)
			assert.Equal(t, bg, c, "pixel (%d,%d)", x, y)
		}
	}
}

func TestFramebufferRowMajorLayout(t *testing.T) {
	fb := MustFramebuffer(3, 2)
	fb.SetPixel(2, 0, NewColor(1, 0, 0))
	fb.SetPixel(0, 1, NewColor(2, 0, 0))

	pixels := fb.Pixels()
	require.Len(t, pixels, 6)
	assert.Equal(t, uint8(1), pixels[2].R, "pixel (2, 0) should be at index 2")
	assert.Equal(t, uint8(2), pixels[3].R, "pixel (0, 1) should be at index 3")

	// Pixels returns a copy
	pixels[0] = White
	c, _ := fb.Pixel(0, 0)
	assert.Equal(t, Black, c)
}

func TestFramebufferPacked(t *testing.T) {
	fb := MustFramebuffer(2, 2)
	fb.SetPixel(0, 0, NewColor(0x12, 0x34, 0x56))
	fb.SetPixel(1, 1, White)
	before := fb.Clone()

	assert.Equal(t, []uint32{0xFF123456, 0xFF000000, 0xFF000000, 0xFFFFFFFF}, fb.Packed())
	assert.True(t, fb.Equal(before), "Packed() should not mutate the framebuffer")
}

func TestFramebufferReplace(t *testing.T) {
	fb := MustFramebuffer(2, 2)

	assert.ErrorIs(t, fb.Replace(make([]Color, 3)), ErrSizeMismatch)

	require.NoError(t, fb.Replace([]Color{White, Black, Black, White}))
	c, _ := fb.Pixel(1, 1)
	assert.Equal(t, White, c)
}

func TestFramebufferImplementsImage(t *testing.T) {
	fb := MustFramebuffer(3, 2)
	fb.SetPixel(1, 1, NewColor(10, 20, 30))

	var img image.Image = fb
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, img.At(1, 1))
	assert.Equal(t, color.RGBA{}, img.At(5, 5))
}
