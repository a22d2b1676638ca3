package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells on scr. Each terminal
// cell shows two vertically stacked pixels with the upper-half block ▀:
// foreground is the top pixel, background the bottom, so the framebuffer
// height should be twice the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.PixelAt(col, topY)),
					Bg: rgbaToColor(fb.PixelAt(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts a pixel to the terminal color interface. Fully
// transparent pixels map to nil so the terminal's own background shows.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// TerminalRenderer presents framebuffers on a terminal using half-block
// cells for double vertical resolution.
type TerminalRenderer struct {
	term   *uv.Terminal
	width  int // terminal columns
	height int // terminal rows
}

// NewTerminalRenderer creates a renderer for a terminal of the given size
// in cells.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the pixel dimensions a framebuffer should have to
// fill the terminal: one column per cell, two rows per cell.
func (tr *TerminalRenderer) FramebufferSize() (width, height int) {
	return tr.width, tr.height * 2
}

// Render draws the framebuffer onto the terminal's cell buffer. Call Flush
// to present it.
func (tr *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(tr.term, uv.Rectangle{Max: image.Pt(tr.width, tr.height)})
}

// Flush presents the pending cell buffer.
func (tr *TerminalRenderer) Flush() error {
	return tr.term.Display()
}
