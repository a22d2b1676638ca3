package render

import (
	"image"
	"math"

	"github.com/yohandev/software-rasterizer/pkg/math3d"
)

// DepthBuffer records, per pixel, the closest depth drawn so far this
// frame, under the convention that larger z means closer. It is cleared to
// -Inf and lives for exactly one frame.
type DepthBuffer struct {
	width, height int
	z             []float64
}

// NewDepthBuffer allocates a depth buffer for a width x height frame,
// ready for drawing (already cleared).
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		width:  width,
		height: height,
		z:      make([]float64, width*height),
	}
	d.Clear()
	return d
}

// Clear resets every entry to the far sentinel. Call at the start of each
// frame.
func (d *DepthBuffer) Clear() {
	if len(d.z) == 0 {
		return
	}
	d.z[0] = math.Inf(-1)
	for i := 1; i < len(d.z); i *= 2 {
		copy(d.z[i:], d.z[:i])
	}
}

// At returns the stored depth at (x, y). Out-of-bounds reads return +Inf
// so the depth test can never pass there.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return math.Inf(1)
	}
	return d.z[y*d.width+x]
}

func (d *DepthBuffer) set(x, y int, z float64) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return
	}
	d.z[y*d.width+x] = z
}

// ShadedVertex is a triangle corner ready for rasterization: a screen-space
// position whose z is the depth (larger = closer), plus an interpolable
// attribute.
type ShadedVertex[T Varying[T]] struct {
	Pos  math3d.Vec3
	Attr T
}

// DrawTriangle paints a single triangle with depth testing. For every
// pixel covered by the triangle's 2D projection (clipped to the frame),
// the depth is interpolated from the vertex z values; the pixel and its
// depth entry are overwritten only when the new depth is strictly greater
// than the stored one, so among equal-depth fragments the first drawn
// wins. shade maps the interpolated attribute to the pixel color.
//
// Drawing triangles of one frame must be sequential: the depth-compare-
// and-write is not atomic.
func DrawTriangle[T Varying[T]](fb *Framebuffer, depth *DepthBuffer, tri [3]ShadedVertex[T], shade func(T) Color) {
	pts := [3]image.Point{
		image.Pt(int(tri[0].Pos.X), int(tri[0].Pos.Y)),
		image.Pt(int(tri[1].Pos.X), int(tri[1].Pos.Y)),
		image.Pt(int(tri[2].Pos.X), int(tri[2].Pos.Y)),
	}

	it := TriangleBounded(pts, image.Pt(fb.Width, fb.Height))
	for p, bc, ok := it.Next(); ok; p, bc, ok = it.Next() {
		z := tri[0].Pos.Z*bc.X + tri[1].Pos.Z*bc.Y + tri[2].Pos.Z*bc.Z
		if math.IsNaN(z) {
			continue
		}
		if z <= depth.At(p.X, p.Y) {
			continue
		}
		depth.set(p.X, p.Y, z)
		fb.SetPixel(p.X, p.Y, shade(Interpolate(tri[0].Attr, tri[1].Attr, tri[2].Attr, bc)))
	}
}

// FlatShader returns a shade function that ignores the interpolated
// attribute and always fills with c.
func FlatShader[T Varying[T]](c Color) func(T) Color {
	return func(T) Color { return c }
}

// DrawLine traces the segment from a to b onto fb, discarding pixels that
// fall outside the frame. Used for wireframes and debug overlays; no depth
// test is applied.
func DrawLine(fb *Framebuffer, a, b image.Point, c Color) {
	it := LineClipped(a, b, image.Rect(0, 0, fb.Width, fb.Height))
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		fb.SetPixel(p.X, p.Y, c)
	}
}
