package models

import (
	"math"
	"testing"

	"github.com/yohandev/software-rasterizer/pkg/math3d"
)

func TestCubeMesh(t *testing.T) {
	cube := NewCubeMesh(2)

	if got := cube.VertexCount(); got != 24 {
		t.Errorf("cube has %d vertices, want 24 (4 per face)", got)
	}
	if got := cube.TriangleCount(); got != 12 {
		t.Errorf("cube has %d triangles, want 12", got)
	}

	min, max := cube.Bounds()
	if min.Sub(math3d.V3(-1, -1, -1)).Len() > 1e-9 || max.Sub(math3d.V3(1, 1, 1)).Len() > 1e-9 {
		t.Errorf("cube bounds = %v..%v, want unit-radius box", min, max)
	}

	// Every normal is axis-aligned and unit length.
	for i := 0; i < cube.VertexCount(); i++ {
		_, n, _ := cube.Vertex(i)
		if math.Abs(n.Len()-1) > 1e-9 {
			t.Errorf("vertex %d normal %v is not unit length", i, n)
		}
		if math.Abs(n.X)+math.Abs(n.Y)+math.Abs(n.Z) != 1 {
			t.Errorf("vertex %d normal %v is not axis-aligned", i, n)
		}
	}

	// Face winding agrees with the stored normals: the geometric normal of
	// each triangle, computed right-handed, points opposite the vertex
	// normal because fronts wind clockwise.
	for i := 0; i < cube.TriangleCount(); i++ {
		f := cube.Face(i)
		p0, n, _ := cube.Vertex(f[0])
		p1, _, _ := cube.Vertex(f[1])
		p2, _, _ := cube.Vertex(f[2])
		geo := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		if geo.Dot(n) > -0.99 {
			t.Errorf("face %d winding disagrees with normal: geo %v vs %v", i, geo, n)
		}
	}
}

func TestPlaneMesh(t *testing.T) {
	plane := NewPlaneMesh(4, 2)

	if got := plane.VertexCount(); got != 9 {
		t.Errorf("2x2 plane has %d vertices, want 9", got)
	}
	if got := plane.TriangleCount(); got != 8 {
		t.Errorf("2x2 plane has %d triangles, want 8", got)
	}

	min, max := plane.Bounds()
	if min.Y != 0 || max.Y != 0 {
		t.Errorf("plane is not flat: bounds %v..%v", min, max)
	}
	if min.X != -2 || max.X != 2 || min.Z != -2 || max.Z != 2 {
		t.Errorf("plane bounds = %v..%v, want 4x4 centered", min, max)
	}
}

func TestCalculateSmoothNormals(t *testing.T) {
	// Two triangles sharing an edge, one flat and one tilted. The shared
	// vertices end up with an averaged normal.
	m := NewMesh("roof")
	m.Vertices = []Vertex{
		{Position: math3d.V3(-1, 0, 0)},
		{Position: math3d.V3(0, 0, -1)},
		{Position: math3d.V3(0, 0, 1)},
		{Position: math3d.V3(1, 1, 0)},
	}
	m.Faces = [][3]int{{0, 1, 2}, {2, 1, 3}}

	m.CalculateSmoothNormals()

	for i, v := range m.Vertices {
		if math.Abs(v.Normal.Len()-1) > 1e-9 {
			t.Errorf("vertex %d normal %v not unit length", i, v.Normal)
		}
	}

	// The unshared vertices keep their face's normal; the shared ones sit
	// between the two faces.
	n0 := m.Vertices[0].Normal
	n3 := m.Vertices[3].Normal
	shared := m.Vertices[1].Normal
	if n0.Sub(n3).Len() < 1e-6 {
		t.Fatal("test faces are parallel, nothing to average")
	}
	if shared.Sub(n0).Len() < 1e-6 || shared.Sub(n3).Len() < 1e-6 {
		t.Error("shared vertex normal was not averaged between faces")
	}
}

func TestCalculateNormalsFlat(t *testing.T) {
	m := NewMesh("tri")
	m.Vertices = []Vertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(0, 0, 1)},
		{Position: math3d.V3(1, 0, 0)},
	}
	m.Faces = [][3]int{{0, 1, 2}}

	m.CalculateNormals()

	want := math3d.V3(0, 1, 0)
	for i, v := range m.Vertices {
		if v.Normal.Sub(want).Len() > 1e-9 {
			t.Errorf("vertex %d normal = %v, want %v", i, v.Normal, want)
		}
	}
}

func TestMeshTransform(t *testing.T) {
	m := NewCubeMesh(2)
	m.Transform(math3d.Translate(math3d.V3(5, 0, 0)))

	if c := m.Center(); c.Sub(math3d.V3(5, 0, 0)).Len() > 1e-9 {
		t.Errorf("center after translate = %v, want (5, 0, 0)", c)
	}

	// Normals are unaffected by translation.
	_, n, _ := m.Vertex(0)
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Errorf("normal %v not unit length after transform", n)
	}
}

func TestMeshNormalize(t *testing.T) {
	m := NewCubeMesh(10)
	m.Transform(math3d.Translate(math3d.V3(3, -2, 7)))

	m.Normalize(2)

	if c := m.Center(); c.Len() > 1e-9 {
		t.Errorf("center after Normalize = %v, want origin", c)
	}
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if math.Abs(maxDim-2) > 1e-9 {
		t.Errorf("largest dimension = %v, want 2", maxDim)
	}
}

func TestMeshClone(t *testing.T) {
	m := NewCubeMesh(2)
	c := m.Clone()

	c.Vertices[0].Position = math3d.V3(99, 99, 99)
	c.Faces[0] = [3]int{0, 0, 0}

	if m.Vertices[0].Position.X == 99 {
		t.Error("clone shares vertex storage with the original")
	}
	if m.Faces[0] == (c.Faces[0]) {
		t.Error("clone shares face storage with the original")
	}
}
