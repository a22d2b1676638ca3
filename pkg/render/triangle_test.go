package render

import (
	"image"
	"math"
	"testing"

	"github.com/yohandev/software-rasterizer/pkg/math3d"
)

func TestBarycentric(t *testing.T) {
	a := math3d.V2(0, 0)
	b := math3d.V2(1, 0)
	c := math3d.V2(0, 1)

	tests := []struct {
		name string
		p    math3d.Vec2
		want math3d.Vec3
	}{
		{"vertex a", math3d.V2(0, 0), math3d.V3(1, 0, 0)},
		{"vertex b", math3d.V2(1, 0), math3d.V3(0, 1, 0)},
		{"vertex c", math3d.V2(0, 1), math3d.V3(0, 0, 1)},
		{"centroid", math3d.V2(1.0/3, 1.0/3), math3d.V3(1.0/3, 1.0/3, 1.0/3)},
		{"edge midpoint", math3d.V2(0.5, 0), math3d.V3(0.5, 0.5, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bc := Barycentric(tc.p, a, b, c)
			if math.Abs(bc.X-tc.want.X) > 1e-9 ||
				math.Abs(bc.Y-tc.want.Y) > 1e-9 ||
				math.Abs(bc.Z-tc.want.Z) > 1e-9 {
				t.Errorf("Barycentric(%v) = %v, want %v", tc.p, bc, tc.want)
			}
		})
	}
}

func TestBarycentricSumsToOne(t *testing.T) {
	a := math3d.V2(2, 1)
	b := math3d.V2(9, 3)
	c := math3d.V2(4, 8)

	// Inside, outside and on-edge points all satisfy u+v+w = 1.
	for _, p := range []math3d.Vec2{
		math3d.V2(5, 4), math3d.V2(0, 0), math3d.V2(20, -3), math3d.V2(5.5, 2),
	} {
		bc := Barycentric(p, a, b, c)
		if sum := bc.X + bc.Y + bc.Z; math.Abs(sum-1) > 1e-9 {
			t.Errorf("weights at %v sum to %v, want 1", p, sum)
		}
	}
}

func TestBarycentricOutsideIsNegative(t *testing.T) {
	bc := Barycentric(math3d.V2(-1, -1), math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1))
	if bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0 {
		t.Errorf("outside point has all non-negative weights: %v", bc)
	}
}

func TestBarycentricDegenerate(t *testing.T) {
	// Collinear vertices give a zero denominator and non-finite weights.
	bc := Barycentric(math3d.V2(1, 1), math3d.V2(0, 0), math3d.V2(2, 2), math3d.V2(4, 4))
	if bc.IsFinite() {
		t.Errorf("degenerate triangle produced finite weights: %v", bc)
	}
}

func collectTriangle(it *TriangleIter) map[image.Point]math3d.Vec3 {
	pts := make(map[image.Point]math3d.Vec3)
	for p, bc, ok := it.Next(); ok; p, bc, ok = it.Next() {
		if _, dup := pts[p]; dup {
			// The scan visits each box pixel once, so a duplicate is a bug.
			panic("duplicate pixel " + p.String())
		}
		pts[p] = bc
	}
	return pts
}

func TestTriangleCoversInterior(t *testing.T) {
	pts := collectTriangle(Triangle([3]image.Point{
		image.Pt(0, 0), image.Pt(10, 0), image.Pt(0, 10),
	}))

	// Vertices and interior points are covered.
	for _, want := range []image.Point{
		image.Pt(0, 0), image.Pt(10, 0), image.Pt(0, 10), image.Pt(3, 3),
	} {
		if _, ok := pts[want]; !ok {
			t.Errorf("pixel %v not covered", want)
		}
	}

	// Points beyond the hypotenuse are not.
	if _, ok := pts[image.Pt(10, 10)]; ok {
		t.Error("pixel (10, 10) covered but outside the triangle")
	}

	// Every yielded weight triple is a convex combination.
	for p, bc := range pts {
		if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
			t.Errorf("negative weight at %v: %v", p, bc)
		}
		if sum := bc.X + bc.Y + bc.Z; math.Abs(sum-1) > 1e-9 {
			t.Errorf("weights at %v sum to %v", p, sum)
		}
	}
}

func TestTriangleDegenerateYieldsNothing(t *testing.T) {
	pts := collectTriangle(Triangle([3]image.Point{
		image.Pt(0, 0), image.Pt(5, 5), image.Pt(10, 10),
	}))
	if len(pts) != 0 {
		t.Errorf("degenerate triangle yielded %d pixels", len(pts))
	}
}

func TestTriangleBounded(t *testing.T) {
	// A triangle hanging off every side of an 8x8 frame only yields
	// in-frame pixels.
	pts := collectTriangle(TriangleBounded([3]image.Point{
		image.Pt(-5, -5), image.Pt(20, 0), image.Pt(0, 20),
	}, image.Pt(8, 8)))

	if len(pts) == 0 {
		t.Fatal("clipped triangle yielded no pixels")
	}
	for p := range pts {
		if p.X < 0 || p.X >= 8 || p.Y < 0 || p.Y >= 8 {
			t.Errorf("pixel %v outside the 8x8 frame", p)
		}
	}
}

func TestTriangleBoundedFullyOutside(t *testing.T) {
	it := TriangleBounded([3]image.Point{
		image.Pt(100, 100), image.Pt(110, 100), image.Pt(100, 110),
	}, image.Pt(8, 8))

	if !it.Empty() {
		t.Error("fully off-frame triangle should have an empty scan region")
	}
	if _, _, ok := it.Next(); ok {
		t.Error("fully off-frame triangle yielded a pixel")
	}
}

func TestTriangleBoundedEmptyColumns(t *testing.T) {
	// Entirely right of the frame: the clamped box has no columns but
	// still spans rows. Nothing may be yielded, before or after a reset.
	it := TriangleBounded([3]image.Point{
		image.Pt(20, 0), image.Pt(30, 0), image.Pt(20, 5),
	}, image.Pt(8, 8))

	if !it.Empty() {
		t.Error("off-frame triangle should have an empty scan region")
	}
	if p, _, ok := it.Next(); ok {
		t.Errorf("empty scan region yielded pixel %v", p)
	}
	it.Reset()
	if p, _, ok := it.Next(); ok {
		t.Errorf("empty scan region yielded pixel %v after reset", p)
	}
}

func TestTriangleReset(t *testing.T) {
	it := Triangle([3]image.Point{image.Pt(0, 0), image.Pt(6, 0), image.Pt(0, 6)})
	first := collectTriangle(it)
	it.Reset()
	second := collectTriangle(it)

	if len(first) != len(second) {
		t.Fatalf("reset scan yielded %d pixels, want %d", len(second), len(first))
	}
	for p := range first {
		if _, ok := second[p]; !ok {
			t.Errorf("pixel %v missing after reset", p)
		}
	}
}
