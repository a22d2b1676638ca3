// Package models provides triangle-mesh loading and representation for the
// software rasterizer.
package models

import "github.com/yohandev/software-rasterizer/pkg/math3d"

// Vertex holds all per-vertex attributes.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Mesh is an indexed triangle mesh. Faces wind clockwise when viewed from
// the front.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Faces    [][3]int

	// Axis-aligned bounding box, valid after CalculateBounds.
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// Vertex returns the position, normal and UV of vertex i. Implements
// render.MeshSource.
func (m *Mesh) Vertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := m.Vertices[i]
	return v.Position, v.Normal, v.UV
}

// Face returns the vertex indices of triangle i. Implements
// render.MeshSource.
func (m *Mesh) Face(i int) [3]int {
	return m.Faces[i]
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Bounds returns the axis-aligned bounding box.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// CalculateNormals assigns each vertex the geometric normal of its face.
// Shared vertices end up with the normal of the last face touching them, so
// this suits meshes whose faces do not share vertices.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		v0 := m.Vertices[f[0]].Position
		v1 := m.Vertices[f[1]].Position
		v2 := m.Vertices[f[2]].Position
		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()

		m.Vertices[f[0]].Normal = normal
		m.Vertices[f[1]].Normal = normal
		m.Vertices[f[2]].Normal = normal
	}
}

// CalculateSmoothNormals assigns each vertex the area-weighted average of
// the normals of the faces sharing it.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f[0]].Position
		v1 := m.Vertices[f[1]].Position
		v2 := m.Vertices[f[2]].Position
		// Unnormalized cross product weights by face area.
		normal := v1.Sub(v0).Cross(v2.Sub(v0))

		m.Vertices[f[0]].Normal = m.Vertices[f[0]].Normal.Add(normal)
		m.Vertices[f[1]].Normal = m.Vertices[f[1]].Normal.Add(normal)
		m.Vertices[f[2]].Normal = m.Vertices[f[2]].Normal.Add(normal)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform bakes a transformation matrix into all vertices and
// recalculates the bounds. Normals are rotated and renormalized, which is
// correct for rotation, translation and uniform scale.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = mat.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and uniformly scales its longest
// bounding-box dimension to targetSize.
func (m *Mesh) Normalize(targetSize float64) {
	m.CalculateBounds()
	size := m.Size()
	maxDim := size.X
	if size.Y > maxDim {
		maxDim = size.Y
	}
	if size.Z > maxDim {
		maxDim = size.Z
	}
	if maxDim <= 0 {
		return
	}
	s := targetSize / maxDim
	m.Transform(math3d.ScaleUniform(s).Mul(math3d.Translate(m.Center().Scale(-1))))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]Vertex, len(m.Vertices)),
		Faces:     make([][3]int, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}
