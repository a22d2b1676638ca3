package render

import (
	"image"

	"github.com/yohandev/software-rasterizer/pkg/math3d"
)

// Barycentric computes the barycentric coordinates (u, v, w) of point p
// with respect to triangle (a, b, c) using Cramer's rule on the edge
// vectors. The weights sum to 1 for any point in the triangle's plane and
// are all non-negative exactly when p is inside the triangle or on its
// boundary.
//
// A degenerate (zero-area) triangle yields a zero denominator and
// non-finite weights; callers are expected to reject those.
func Barycentric(p, a, b, c math3d.Vec2) math3d.Vec3 {
	ba := b.Sub(a)
	ca := c.Sub(a)
	pa := p.Sub(a)

	d00 := ba.Dot(ba)
	d01 := ba.Dot(ca)
	d11 := ca.Dot(ca)
	d20 := pa.Dot(ba)
	d21 := pa.Dot(ca)

	den := d00*d11 - d01*d01

	v := (d11*d20 - d01*d21) / den
	w := (d00*d21 - d01*d20) / den
	u := 1 - v - w

	return math3d.V3(u, v, w)
}

// TriangleIter rasterizes a triangle's interior by scanning its bounding
// box row-major and testing each pixel's barycentric coordinates. The
// sequence yields one (coordinate, weight-triple) pair per covered pixel,
// boundary inclusive, and can be restarted with Reset.
//
// Corner pixels of the box that fall outside the triangle are visited and
// rejected; the box scan trades that waste for not having to maintain edge
// tables.
type TriangleIter struct {
	pts      [3]image.Point
	min, max image.Point // inclusive scan bounds
	x, y     int
}

// Triangle returns an iterator over the pixels covered by the triangle
// with the given integer vertices.
func Triangle(pts [3]image.Point) *TriangleIter {
	mn, mx := pts[0], pts[0]
	for _, p := range pts[1:] {
		mn.X = min(mn.X, p.X)
		mn.Y = min(mn.Y, p.Y)
		mx.X = max(mx.X, p.X)
		mx.Y = max(mx.Y, p.Y)
	}
	return &TriangleIter{pts: pts, min: mn, max: mx, x: mn.X, y: mn.Y}
}

// TriangleBounded is like Triangle but restricts the scan to the frame
// region [0, size.X) x [0, size.Y), computed as the intersection of the
// triangle's bounding box with that region.
func TriangleBounded(pts [3]image.Point, size image.Point) *TriangleIter {
	it := Triangle(pts)
	it.min.X = max(it.min.X, 0)
	it.min.Y = max(it.min.Y, 0)
	it.max.X = min(it.max.X, size.X-1)
	it.max.Y = min(it.max.Y, size.Y-1)
	it.x, it.y = it.min.X, it.min.Y
	return it
}

// Next returns the next covered pixel and its barycentric weights. ok is
// false once the bounding box is exhausted. Pixels whose weights come out
// non-finite (degenerate triangle) are skipped.
func (it *TriangleIter) Next() (image.Point, math3d.Vec3, bool) {
	if it.Empty() {
		return image.Point{}, math3d.Vec3{}, false
	}

	a := math3d.V2(float64(it.pts[0].X), float64(it.pts[0].Y))
	b := math3d.V2(float64(it.pts[1].X), float64(it.pts[1].Y))
	c := math3d.V2(float64(it.pts[2].X), float64(it.pts[2].Y))

	for it.y <= it.max.Y {
		p := image.Pt(it.x, it.y)
		bc := Barycentric(math3d.V2(float64(p.X), float64(p.Y)), a, b, c)

		// Step now so the next call resumes past p either way.
		it.x++
		if it.x > it.max.X {
			it.x = it.min.X
			it.y++
		}

		if bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0 && bc.IsFinite() {
			return p, bc, true
		}
	}
	return image.Point{}, math3d.Vec3{}, false
}

// Reset rewinds the iterator to the top-left corner of its bounding box.
func (it *TriangleIter) Reset() {
	it.x, it.y = it.min.X, it.min.Y
}

// Empty reports whether the scan region contains no pixels (fully clipped
// or inverted bounds).
func (it *TriangleIter) Empty() bool {
	return it.min.X > it.max.X || it.min.Y > it.max.Y
}
