package render

import "image"

// LineIter traces the integer pixel coordinates of a line segment using
// Bresenham's algorithm. The sequence is finite, includes both endpoints,
// contains no duplicates or gaps (8-connected), and can be restarted with
// Reset.
type LineIter struct {
	// Current position along the (possibly axis-swapped) line.
	x, y int
	// Remaining endpoint along the major axis, inclusive.
	end int
	// Major-axis delta and signed minor-axis step.
	dx, sy int
	// Accumulated error and per-step increment.
	err, derr int
	// Whether x and y were swapped so the major axis is always x.
	steep bool
	// Optional clip rectangle; nil means unbounded.
	clip *image.Rectangle

	startX, startY, startErr int
}

// Line returns an iterator over the pixels of the segment from a to b,
// inclusive.
func Line(a, b image.Point) *LineIter {
	it := &LineIter{}

	// Step along the axis of greater extent.
	if abs(a.X-b.X) < abs(a.Y-b.Y) {
		a.X, a.Y = a.Y, a.X
		b.X, b.Y = b.Y, b.X
		it.steep = true
	}
	// Always walk from the lower major coordinate up.
	if a.X > b.X {
		a, b = b, a
	}

	it.x, it.y = a.X, a.Y
	it.end = b.X
	it.dx = b.X - a.X
	it.sy = sign(b.Y - a.Y)
	it.derr = abs(b.Y-a.Y) * 2

	it.startX, it.startY, it.startErr = it.x, it.y, it.err
	return it
}

// LineClipped is like Line but discards points outside bounds. The
// underlying coordinate sequence is the same as the unclipped line;
// clipping filters rather than re-deriving segment intersections.
func LineClipped(a, b image.Point, bounds image.Rectangle) *LineIter {
	it := Line(a, b)
	it.clip = &bounds
	return it
}

// Next returns the next pixel coordinate of the line. ok is false once the
// segment is exhausted.
func (it *LineIter) Next() (image.Point, bool) {
	for it.x <= it.end {
		p := image.Pt(it.x, it.y)
		if it.steep {
			p.X, p.Y = p.Y, p.X
		}

		it.err += it.derr
		if it.err > it.dx {
			it.y += it.sy
			it.err -= it.dx * 2
		}
		it.x++

		if it.clip != nil && !p.In(*it.clip) {
			continue
		}
		return p, true
	}
	return image.Point{}, false
}

// Reset rewinds the iterator to the first pixel of the segment.
func (it *LineIter) Reset() {
	it.x, it.y, it.err = it.startX, it.startY, it.startErr
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
