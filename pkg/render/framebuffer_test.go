package render

import (
	"sync/atomic"
	"testing"
)

func TestFramebufferSetGet(t *testing.T) {
	fb := NewFramebuffer(8, 6)

	c := RGB(10, 20, 30)
	fb.SetPixel(3, 2, c)
	if got := fb.PixelAt(3, 2); got != c {
		t.Errorf("PixelAt(3, 2) = %v, want %v", got, c)
	}

	// The pixel lands at byte offset (y*width+x)*4.
	i := (2*8 + 3) * 4
	if fb.Pix[i] != 10 || fb.Pix[i+1] != 20 || fb.Pix[i+2] != 30 || fb.Pix[i+3] != 255 {
		t.Errorf("bytes at offset %d = %v", i, fb.Pix[i:i+4])
	}
}

func TestFramebufferOutOfBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Clear(ColorBlack)

	// Writes outside the frame are dropped without touching memory.
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {-100, -100}, {1000, 1000}} {
		fb.SetPixel(p[0], p[1], ColorWhite)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if fb.PixelAt(x, y) != ColorBlack {
				t.Errorf("pixel (%d, %d) modified by out-of-bounds write", x, y)
			}
		}
	}

	if got := fb.PixelAt(-1, 2); got != (Color{}) {
		t.Errorf("out-of-bounds read = %v, want zero color", got)
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(7, 5) // odd size exercises the doubling copy tail
	c := RGBA(1, 2, 3, 4)
	fb.Clear(c)

	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			if got := fb.PixelAt(x, y); got != c {
				t.Fatalf("pixel (%d, %d) = %v after clear, want %v", x, y, got, c)
			}
		}
	}
}

func TestWrapFramebuffer(t *testing.T) {
	pix := make([]uint8, 4*3*4)
	fb := WrapFramebuffer(pix, 4, 3)
	fb.SetPixel(0, 0, ColorRed)
	if pix[0] != 255 {
		t.Error("wrapped framebuffer does not alias the caller's memory")
	}

	t.Run("wrong length panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for mismatched buffer length")
			}
		}()
		WrapFramebuffer(make([]uint8, 10), 4, 3)
	})
}

func fillGradient(fb *Framebuffer) {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			fb.SetPixel(x, y, RGB(uint8(x*16), uint8(y*16), 7))
		}
	}
}

func TestBlitExact(t *testing.T) {
	src := NewFramebuffer(5, 4)
	fillGradient(src)

	dst := NewFramebuffer(5, 4)
	dst.Blit(src, 0, 0)

	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			if dst.PixelAt(x, y) != src.PixelAt(x, y) {
				t.Fatalf("pixel (%d, %d) differs after exact blit", x, y)
			}
		}
	}
}

func TestBlitOffset(t *testing.T) {
	src := NewFramebuffer(3, 3)
	src.Clear(ColorGreen)

	dst := NewFramebuffer(10, 10)
	dst.Clear(ColorBlack)
	dst.Blit(src, 4, 5)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 4 && x < 7 && y >= 5 && y < 8
			want := ColorBlack
			if inside {
				want = ColorGreen
			}
			if got := dst.PixelAt(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBlitPartialOverlap(t *testing.T) {
	src := NewFramebuffer(4, 4)
	fillGradient(src)

	tests := []struct {
		name   string
		dx, dy int
	}{
		{"top-left corner", -2, -2},
		{"bottom-right corner", 6, 6},
		{"off left", -2, 2},
		{"off top", 2, -3},
		{"off right", 7, 1},
		{"off bottom", 1, 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dst := NewFramebuffer(8, 8)
			dst.Clear(ColorBlack)
			dst.Blit(src, tc.dx, tc.dy)

			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					sx, sy := x-tc.dx, y-tc.dy
					want := ColorBlack
					if sx >= 0 && sx < 4 && sy >= 0 && sy < 4 {
						want = src.PixelAt(sx, sy)
					}
					if got := dst.PixelAt(x, y); got != want {
						t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestBlitFullyOutside(t *testing.T) {
	src := NewFramebuffer(4, 4)
	src.Clear(ColorWhite)

	dst := NewFramebuffer(8, 8)
	dst.Clear(ColorBlack)

	for _, off := range [][2]int{{-1000, -1000}, {1000, 1000}, {-4, 0}, {0, 8}, {8, 0}} {
		dst.Blit(src, off[0], off[1])
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if dst.PixelAt(x, y) != ColorBlack {
				t.Fatalf("pixel (%d, %d) modified by fully clipped blit", x, y)
			}
		}
	}
}

func TestPixelIter(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	it := fb.Pixels()

	visited := 0
	lastIdx := -1
	for x, y, px, ok := it.Next(); ok; x, y, px, ok = it.Next() {
		idx := y*4 + x
		if idx != lastIdx+1 {
			t.Fatalf("iteration order broken at (%d, %d)", x, y)
		}
		lastIdx = idx
		visited++
		px[0] = 0xAB // the view aliases the framebuffer
	}

	if visited != 12 {
		t.Errorf("visited %d pixels, want 12", visited)
	}
	for i := 0; i < len(fb.Pix); i += 4 {
		if fb.Pix[i] != 0xAB {
			t.Fatalf("pixel byte %d not written through the iterator view", i)
		}
	}
}

func TestEachPixelParallel(t *testing.T) {
	fb := NewFramebuffer(33, 17)

	var count atomic.Int64
	fb.EachPixelParallel(func(x, y int, px []uint8) {
		count.Add(1)
		px[3] = 1 // each pixel is owned by exactly one worker
	})

	if got := count.Load(); got != 33*17 {
		t.Errorf("visited %d pixels, want %d", got, 33*17)
	}
	for i := 3; i < len(fb.Pix); i += 4 {
		if fb.Pix[i] != 1 {
			t.Fatalf("pixel byte %d not visited", i)
		}
	}
}

func TestToImage(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fillGradient(fb)

	img := fb.ToImage()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("image bounds = %v", img.Bounds())
	}
	for i := range fb.Pix {
		if img.Pix[i] != fb.Pix[i] {
			t.Fatalf("image byte %d differs", i)
		}
	}

	// The image is a copy, not a view.
	img.Pix[0] = ^img.Pix[0]
	if img.Pix[0] == fb.Pix[0] {
		t.Error("ToImage should copy the pixels")
	}
}
