package models

import "github.com/yohandev/software-rasterizer/pkg/math3d"

// NewCubeMesh creates an axis-aligned cube centered on the origin with the
// given edge length. Each face has its own four vertices so flat normals
// stay sharp.
func NewCubeMesh(size float64) *Mesh {
	h := size / 2

	// One entry per face: outward normal and the face's four corners,
	// counter-clockwise when viewed from outside.
	type quad struct {
		normal  math3d.Vec3
		corners [4]math3d.Vec3
	}
	quads := []quad{
		{math3d.V3(0, 0, 1), [4]math3d.Vec3{ // front
			math3d.V3(-h, -h, h), math3d.V3(h, -h, h), math3d.V3(h, h, h), math3d.V3(-h, h, h),
		}},
		{math3d.V3(0, 0, -1), [4]math3d.Vec3{ // back
			math3d.V3(h, -h, -h), math3d.V3(-h, -h, -h), math3d.V3(-h, h, -h), math3d.V3(h, h, -h),
		}},
		{math3d.V3(1, 0, 0), [4]math3d.Vec3{ // right
			math3d.V3(h, -h, h), math3d.V3(h, -h, -h), math3d.V3(h, h, -h), math3d.V3(h, h, h),
		}},
		{math3d.V3(-1, 0, 0), [4]math3d.Vec3{ // left
			math3d.V3(-h, -h, -h), math3d.V3(-h, -h, h), math3d.V3(-h, h, h), math3d.V3(-h, h, -h),
		}},
		{math3d.V3(0, 1, 0), [4]math3d.Vec3{ // top
			math3d.V3(-h, h, h), math3d.V3(h, h, h), math3d.V3(h, h, -h), math3d.V3(-h, h, -h),
		}},
		{math3d.V3(0, -1, 0), [4]math3d.Vec3{ // bottom
			math3d.V3(-h, -h, -h), math3d.V3(h, -h, -h), math3d.V3(h, -h, h), math3d.V3(-h, -h, h),
		}},
	}

	uvs := [4]math3d.Vec2{
		math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(1, 1), math3d.V2(0, 1),
	}

	m := NewMesh("cube")
	for _, q := range quads {
		base := len(m.Vertices)
		for i, c := range q.corners {
			m.Vertices = append(m.Vertices, Vertex{
				Position: c,
				Normal:   q.normal,
				UV:       uvs[i],
			})
		}
		// Reverse the quad winding: clockwise is front-facing here.
		m.Faces = append(m.Faces,
			[3]int{base, base + 2, base + 1},
			[3]int{base, base + 3, base + 2},
		)
	}
	m.CalculateBounds()
	return m
}

// NewPlaneMesh creates a flat grid in the XZ plane centered on the origin,
// facing up, with segments x segments quads.
func NewPlaneMesh(size float64, segments int) *Mesh {
	if segments < 1 {
		segments = 1
	}

	m := NewMesh("plane")
	step := size / float64(segments)
	half := size / 2
	up := math3d.Up()

	for row := 0; row <= segments; row++ {
		for col := 0; col <= segments; col++ {
			m.Vertices = append(m.Vertices, Vertex{
				Position: math3d.V3(-half+float64(col)*step, 0, -half+float64(row)*step),
				Normal:   up,
				UV:       math3d.V2(float64(col)/float64(segments), float64(row)/float64(segments)),
			})
		}
	}

	stride := segments + 1
	for row := 0; row < segments; row++ {
		for col := 0; col < segments; col++ {
			i := row*stride + col
			// Clockwise from above, which is the front side.
			m.Faces = append(m.Faces,
				[3]int{i, i + 1, i + stride},
				[3]int{i + 1, i + stride + 1, i + stride},
			)
		}
	}
	m.CalculateBounds()
	return m
}
