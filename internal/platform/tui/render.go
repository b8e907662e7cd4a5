package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/framelife/internal/core"
)

// halfBlock draws the top pixel in the foreground and the bottom pixel in
// the background, so one terminal cell shows two vertically stacked pixels.
const halfBlock = "▀"

// cellPair is the packed 0xAARRGGBB pair shown by one terminal cell.
type cellPair struct {
	top, bottom uint32
}

// RenderPixels converts the part of fb inside view to a styled string, two
// pixel rows per terminal line. Pixels outside fb show its background color.
// If cursor is non-nil, the pixel under it is drawn inverted.
func RenderPixels(r *lipgloss.Renderer, fb *core.Framebuffer, view core.Rect, cursor *core.Point) string {
	return RenderPacked(r, fb.Packed(), fb.Width(), 0xFF<<24|fb.Background().Hex(), view, cursor)
}

// RenderPacked renders a packed row-major 0xAARRGGBB pixel buffer of the
// given width. Pixels outside the buffer show fill. Alpha is ignored.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderPacked(r *lipgloss.Renderer, pixels []uint32, width int, fill uint32, view core.Rect, cursor *core.Point) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	height := 0
	if width > 0 {
		height = len(pixels) / width
	}

	wordAt := func(x, y int) uint32 {
		w := fill
		if x >= 0 && x < width && y >= 0 && y < height {
			w = pixels[y*width+x]
		}
		if cursor != nil && cursor.X == x && cursor.Y == y {
			w = invert(w)
		}
		return w
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(view.W * (view.H/2 + 1) * 8)

	for y := view.Y; y < view.Bottom(); y += 2 {
		if y > view.Y {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors for efficiency
		x := view.X
		for x < view.Right() {
			start := cellPair{top: wordAt(x, y), bottom: wordAt(x, y+1)}
			n := 0
			for x < view.Right() {
				pair := cellPair{top: wordAt(x, y), bottom: wordAt(x, y+1)}
				if pair != start {
					break
				}
				n++
				x++
			}
			sb.WriteString(pairStyle(r, start).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}

func pairStyle(r *lipgloss.Renderer, p cellPair) lipgloss.Style {
	return r.NewStyle().
		Foreground(lipgloss.Color(wordHex(p.top))).
		Background(lipgloss.Color(wordHex(p.bottom)))
}

// wordHex formats the RGB part of a packed pixel as #rrggbb.
func wordHex(w uint32) string {
	return fmt.Sprintf("#%06x", w&0xFFFFFF)
}

func hexString(c core.Color) string {
	return wordHex(c.Hex())
}

// invert flips the RGB channels of a packed pixel and keeps its alpha.
func invert(w uint32) uint32 {
	return w ^ 0xFFFFFF
}

// Viewport picks the largest window of a width x height board that fits in
// cols x rows terminal cells, positioned so that focus stays visible and as
// close to the centre as the board edges allow.
func Viewport(width, height, cols, rows int, focus core.Point) core.Rect {
	w := min(width, max(cols, 1))
	h := min(height, max(rows, 1)*2)
	x := core.Clamp(focus.X-w/2, 0, width-w)
	y := core.Clamp(focus.Y-h/2, 0, height-h)
	return core.NewRect(x, y, w, h)
}

// centerText pads text on the left so it appears centred in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
