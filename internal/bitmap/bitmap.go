// Package bitmap serializes framebuffers to uncompressed 24-bit BMP files
// and reads them back.
//
// The encoder writes a 14-byte file header, a 40-byte BITMAPINFOHEADER and
// bottom-up BGR pixel rows. By default rows are NOT padded to a 4-byte
// boundary, which keeps output byte-compatible with the renderer's historical
// snapshots; pass WithRowPadding for files that strict readers (including
// Decode) accept for every width.
package bitmap

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/bmp"

	"github.com/vovakirdan/framelife/internal/core"
)

// Header layout constants.
const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
	PixelOffset    = FileHeaderSize + InfoHeaderSize
	BitsPerPixel   = 24
	bytesPerPixel  = BitsPerPixel / 8
)

// Source is a read-only pixel grid that can be encoded.
// *core.Framebuffer satisfies it.
type Source interface {
	Width() int
	Height() int
	Pixel(x, y int) (core.Color, bool)
}

type options struct {
	padRows bool
}

// Option configures encoding.
type Option func(*options)

// WithRowPadding pads every pixel row to a multiple of four bytes, as the
// canonical BMP format requires.
func WithRowPadding() Option {
	return func(o *options) {
		o.padRows = true
	}
}

// RowSize returns the number of bytes one encoded pixel row occupies.
func RowSize(width int, padded bool) int {
	n := width * bytesPerPixel
	if padded {
		n = (n + 3) &^ 3
	}
	return n
}

// Encode returns the complete BMP file for src.
func Encode(src Source, opts ...Option) []byte {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	w, h := src.Width(), src.Height()
	row := RowSize(w, o.padRows)
	imageSize := row * h

	buf := make([]byte, PixelOffset+imageSize)
	le := binary.LittleEndian

	// File header
	buf[0], buf[1] = 'B', 'M'
	le.PutUint32(buf[2:6], uint32(len(buf)))
	// buf[6:10] reserved
	le.PutUint32(buf[10:14], PixelOffset)

	// Info header; resolution and palette fields stay zero
	le.PutUint32(buf[14:18], InfoHeaderSize)
	le.PutUint32(buf[18:22], uint32(int32(w)))
	le.PutUint32(buf[22:26], uint32(int32(h)))
	le.PutUint16(buf[26:28], 1) // planes
	le.PutUint16(buf[28:30], BitsPerPixel)
	// buf[30:34] compression = BI_RGB
	le.PutUint32(buf[34:38], uint32(imageSize))

	// Pixel rows, bottom row first
	off := PixelOffset
	for y := h - 1; y >= 0; y-- {
		line := buf[off : off+row]
		for x := 0; x < w; x++ {
			c, _ := src.Pixel(x, y)
			i := x * bytesPerPixel
			line[i] = c.B
			line[i+1] = c.G
			line[i+2] = c.R
		}
		off += row
	}

	return buf
}

// Write encodes src into w.
func Write(w io.Writer, src Source, opts ...Option) error {
	if _, err := w.Write(Encode(src, opts...)); err != nil {
		return fmt.Errorf("bitmap: cannot write image: %w", err)
	}
	return nil
}

// Save encodes src into the file at path, creating or truncating it.
// The file is closed on every path; a failed close is reported when the
// write itself succeeded.
func Save(path string, src Source, opts ...Option) (err error) {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("bitmap: cannot create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("bitmap: cannot close %s: %w", path, cerr)
		}
	}()

	return Write(f, src, opts...)
}

// Decode reads a BMP image into a new framebuffer.
// Rows must be padded to four bytes unless width*3 already is a multiple of
// four; unpadded files of other widths are rejected or misread by the
// underlying decoder.
func Decode(r io.Reader) (*core.Framebuffer, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("bitmap: cannot decode: %w", err)
	}

	b := img.Bounds()
	fb, err := core.NewFramebuffer(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("bitmap: cannot decode: %w", err)
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			fb.SetPixel(x, y, core.Color{R: c.R, G: c.G, B: c.B})
		}
	}
	return fb, nil
}

// Load decodes the BMP file at path.
func Load(path string) (*core.Framebuffer, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("bitmap: cannot open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}
