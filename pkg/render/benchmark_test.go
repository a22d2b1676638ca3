package render

import (
	"image"
	"testing"

	"github.com/yohandev/software-rasterizer/pkg/math3d"
)

func BenchmarkLine(b *testing.B) {
	a := image.Pt(0, 0)
	bb := image.Pt(317, 211)

	for b.Loop() {
		it := Line(a, bb)
		for _, ok := it.Next(); ok; _, ok = it.Next() {
		}
	}
}

func BenchmarkBarycentric(b *testing.B) {
	p := math3d.V2(5, 4)
	v0 := math3d.V2(0, 0)
	v1 := math3d.V2(13, 2)
	v2 := math3d.V2(4, 11)

	for b.Loop() {
		_ = Barycentric(p, v0, v1, v2)
	}
}

func BenchmarkTriangleScan(b *testing.B) {
	pts := [3]image.Point{image.Pt(0, 0), image.Pt(63, 5), image.Pt(10, 60)}

	for b.Loop() {
		it := Triangle(pts)
		for _, _, ok := it.Next(); ok; _, _, ok = it.Next() {
		}
	}
}

func BenchmarkDrawTriangle(b *testing.B) {
	fb := NewFramebuffer(128, 128)
	depth := NewDepthBuffer(128, 128)
	tri := [3]ShadedVertex[Scalar]{
		{Pos: math3d.V3(4, 4, 1)},
		{Pos: math3d.V3(120, 10, 1)},
		{Pos: math3d.V3(20, 120, 1)},
	}
	shade := FlatShader[Scalar](ColorWhite)

	for b.Loop() {
		depth.Clear()
		DrawTriangle(fb, depth, tri, shade)
	}
}

func BenchmarkFramebufferClear(b *testing.B) {
	fb := NewFramebuffer(320, 200)

	for b.Loop() {
		fb.Clear(ColorBlack)
	}
}

func BenchmarkBlit(b *testing.B) {
	src := NewFramebuffer(64, 64)
	src.Clear(ColorRed)
	dst := NewFramebuffer(320, 200)

	for b.Loop() {
		dst.Blit(src, 100, 60)
	}
}

func BenchmarkDrawMesh(b *testing.B) {
	r, _ := newTestRenderer(128, 128)
	mesh := frontTriangle()
	transform := math3d.RotateY(0.3)

	for b.Loop() {
		r.BeginFrame(ColorBlack)
		r.DrawMesh(mesh, transform, ColorWhite)
	}
}
