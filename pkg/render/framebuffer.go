// Package render implements a software rasterizer: Bresenham line tracing,
// barycentric triangle scan conversion, depth-buffered triangle drawing and
// attribute interpolation, all over a plain RGBA byte framebuffer.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"
	"sync"

	"github.com/HugoSmits86/nativewebp"
)

// Bitmap is the capability interface over any RGBA pixel storage. Pixel
// bytes are row-major, 4 bytes (R, G, B, A) per pixel, and the byte slice
// length is always exactly width*height*4.
type Bitmap interface {
	// Size returns the dimensions in pixels.
	Size() (width, height int)
	// Bytes returns the raw pixel bytes.
	Bytes() []uint8
}

// Framebuffer is a width/height-tagged RGBA byte buffer. The pixel at
// (x, y) lives at byte offset (y*Width+x)*4.
//
// All single-pixel accessors silently ignore out-of-bounds coordinates, so
// draw routines may feed them unclipped computed geometry.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFramebuffer allocates a zeroed framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// WrapFramebuffer wraps caller-owned pixel memory, typically the raw buffer
// handed over by a presentation host. Panics when len(pix) != width*height*4:
// a mismatched buffer is a caller bug, not a runtime condition.
func WrapFramebuffer(pix []uint8, width, height int) *Framebuffer {
	if len(pix) != width*height*4 {
		panic(fmt.Sprintf("render: framebuffer is %d bytes, want %d (%dx%dx4)",
			len(pix), width*height*4, width, height))
	}
	return &Framebuffer{Width: width, Height: height, Pix: pix}
}

// Size returns the dimensions in pixels. Implements Bitmap.
func (fb *Framebuffer) Size() (int, int) {
	return fb.Width, fb.Height
}

// Bytes returns the raw pixel bytes. Implements Bitmap.
func (fb *Framebuffer) Bytes() []uint8 {
	return fb.Pix
}

// PixelAt returns the color at (x, y), or the zero color when out of
// bounds.
func (fb *Framebuffer) PixelAt(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	i := (y*fb.Width + x) * 4
	return Color{R: fb.Pix[i], G: fb.Pix[i+1], B: fb.Pix[i+2], A: fb.Pix[i+3]}
}

// SetPixel writes the color at (x, y). Out-of-bounds writes are a no-op.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := (y*fb.Width + x) * 4
	fb.Pix[i] = c.R
	fb.Pix[i+1] = c.G
	fb.Pix[i+2] = c.B
	fb.Pix[i+3] = c.A
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	if len(fb.Pix) == 0 {
		return
	}
	fb.Pix[0] = c.R
	fb.Pix[1] = c.G
	fb.Pix[2] = c.B
	fb.Pix[3] = c.A
	// Double the filled prefix until the whole buffer is covered.
	for i := 4; i < len(fb.Pix); i *= 2 {
		copy(fb.Pix[i:], fb.Pix[:i])
	}
}

// Blit pastes src onto fb offset by (dx, dy), clipping whatever falls
// outside fb on any side. Copies one contiguous byte range per destination
// row. The source is not modified; a fully clipped blit is a no-op.
func (fb *Framebuffer) Blit(src Bitmap, dx, dy int) {
	srcW, srcH := src.Size()
	srcPix := src.Bytes()

	// Visible part of src, in src coordinates.
	sxMin := min(max(-dx, 0), srcW)
	syMin := min(max(-dy, 0), srcH)
	sxMax := srcW
	if dx+srcW > fb.Width {
		sxMax = fb.Width - dx
	}
	syMax := srcH
	if dy+srcH > fb.Height {
		syMax = fb.Height - dy
	}
	if sxMin >= sxMax || syMin >= syMax {
		return
	}

	dxMin := max(dx, 0)
	for y := syMin; y < syMax; y++ {
		srcStart := (y*srcW + sxMin) * 4
		srcEnd := (y*srcW + sxMax) * 4
		dstStart := ((y+dy)*fb.Width + dxMin) * 4
		copy(fb.Pix[dstStart:dstStart+(srcEnd-srcStart)], srcPix[srcStart:srcEnd])
	}
}

// PixelIter walks every pixel row-major (x fastest), yielding the
// coordinate and a 4-byte view aliasing the framebuffer's storage.
type PixelIter struct {
	fb *Framebuffer
	i  int
}

// Pixels returns a restartable iterator over every pixel.
func (fb *Framebuffer) Pixels() *PixelIter {
	return &PixelIter{fb: fb}
}

// Next returns the next pixel's coordinate and bytes. ok is false once the
// buffer is exhausted.
func (it *PixelIter) Next() (x, y int, px []uint8, ok bool) {
	if it.i >= it.fb.Width*it.fb.Height {
		return 0, 0, nil, false
	}
	i := it.i
	it.i++
	return i % it.fb.Width, i / it.fb.Width, it.fb.Pix[i*4 : i*4+4 : i*4+4], true
}

// Reset rewinds the iterator to the first pixel.
func (it *PixelIter) Reset() {
	it.i = 0
}

// EachPixelParallel visits every pixel exactly once, partitioned across
// worker goroutines by row range. Visitation order between workers is
// unspecified, so fn must treat each pixel independently; fn receives a
// 4-byte view it may mutate.
func (fb *Framebuffer) EachPixelParallel(fn func(x, y int, px []uint8)) {
	workers := min(runtime.NumCPU(), fb.Height)
	if workers <= 1 {
		it := fb.Pixels()
		for x, y, px, ok := it.Next(); ok; x, y, px, ok = it.Next() {
			fn(x, y, px)
		}
		return
	}

	var wg sync.WaitGroup
	rowsPer := (fb.Height + workers - 1) / workers
	for w := 0; w < workers; w++ {
		y0 := w * rowsPer
		y1 := min(y0+rowsPer, fb.Height)
		if y0 >= y1 {
			break
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				row := fb.Pix[y*fb.Width*4 : (y+1)*fb.Width*4]
				for x := 0; x < fb.Width; x++ {
					fn(x, y, row[x*4:x*4+4:x*4+4])
				}
			}
		}(y0, y1)
	}
	wg.Wait()
}

// ToImage copies the framebuffer into a standard image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Pix)
	return img
}

// SavePNG writes the framebuffer to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}

// SaveWebP writes the framebuffer to a lossless WebP file.
func (fb *Framebuffer) SaveWebP(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return nativewebp.Encode(f, fb.ToImage(), nil)
}
