package render

import (
	"image"
	"math"

	"github.com/yohandev/software-rasterizer/pkg/math3d"
)

// MeshSource is the geometry contract the renderer consumes. Implementations
// expose indexed triangles; the renderer never mutates the source.
type MeshSource interface {
	VertexCount() int
	TriangleCount() int
	// Vertex returns the position, normal and texture coordinate of the
	// i-th vertex, all in model space.
	Vertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	// Face returns the three vertex indices of the i-th triangle, wound
	// clockwise when viewed from the front.
	Face(i int) [3]int
}

// Renderer draws meshes into a framebuffer through a camera, with per-pixel
// depth testing. One renderer owns one depth buffer; frames are produced by
// calling BeginFrame, then any number of Draw methods.
//
// A renderer must not be shared across goroutines within a frame.
type Renderer struct {
	camera *Camera
	fb     *Framebuffer
	depth  *DepthBuffer

	// LightDir is the direction light travels, in world space. It is
	// normalized on assignment by SetLightDir.
	LightDir math3d.Vec3

	// DisableBackfaceCulling draws triangles regardless of winding.
	DisableBackfaceCulling bool
}

// NewRenderer creates a renderer targeting fb, viewed through camera. The
// camera's aspect ratio is matched to the framebuffer.
func NewRenderer(camera *Camera, fb *Framebuffer) *Renderer {
	camera.SetAspectRatio(float64(fb.Width) / float64(fb.Height))
	return &Renderer{
		camera:   camera,
		fb:       fb,
		depth:    NewDepthBuffer(fb.Width, fb.Height),
		LightDir: math3d.V3(-0.5, -1, -0.7).Normalize(),
	}
}

// Camera returns the renderer's camera.
func (r *Renderer) Camera() *Camera { return r.camera }

// Framebuffer returns the frame being drawn into.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }

// SetTarget redirects rendering to a new framebuffer, reallocating the
// depth buffer if the dimensions changed.
func (r *Renderer) SetTarget(fb *Framebuffer) {
	if fb.Width != r.fb.Width || fb.Height != r.fb.Height {
		r.depth = NewDepthBuffer(fb.Width, fb.Height)
		r.camera.SetAspectRatio(float64(fb.Width) / float64(fb.Height))
	}
	r.fb = fb
}

// SetLightDir sets the world-space direction light travels.
func (r *Renderer) SetLightDir(dir math3d.Vec3) {
	r.LightDir = dir.Normalize()
}

// BeginFrame clears the color buffer to bg and resets the depth buffer.
func (r *Renderer) BeginFrame(bg Color) {
	r.fb.Clear(bg)
	r.depth.Clear()
}

// screenVertex is a projected mesh vertex: screen-space position with depth
// in Z (larger = closer), plus the model-space attributes carried through.
type screenVertex struct {
	pos    math3d.Vec3
	normal math3d.Vec3
	uv     math3d.Vec2
}

// projectTriangle transforms a model-space triangle to screen space. ok is
// false when the triangle is entirely behind the camera or culled as
// back-facing.
func (r *Renderer) projectTriangle(model math3d.Mat4, v [3]screenVertex) ([3]screenVertex, bool) {
	viewProj := r.camera.ViewProjectionMatrix().Mul(model)
	w := float64(r.fb.Width)
	h := float64(r.fb.Height)

	allBehind := true
	var out [3]screenVertex
	for i, sv := range v {
		clip := viewProj.MulVec4(math3d.V4FromV3(sv.pos, 1))
		if clip.W > 0 {
			allBehind = false
		}
		ndc := clip.PerspectiveDivide()

		out[i] = sv
		out[i].pos = math3d.V3(
			(ndc.X+1)*0.5*w,
			(1-ndc.Y)*0.5*h, // screen y grows downward
			-ndc.Z,          // flip so larger depth is closer
		)
	}
	if allBehind {
		return out, false
	}

	if !r.DisableBackfaceCulling {
		// Winding in screen space: front faces wind clockwise, which
		// under the flipped y axis gives a positive cross product.
		ab := out[1].pos.XY().Sub(out[0].pos.XY())
		ac := out[2].pos.XY().Sub(out[0].pos.XY())
		if ab.Cross(ac) < 0 {
			return out, false
		}
	}
	return out, true
}

// DrawMesh renders a mesh with flat shading: each face is filled with base
// scaled by the diffuse term of its geometric normal against the light
// direction.
func (r *Renderer) DrawMesh(mesh MeshSource, model math3d.Mat4, base Color) {
	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.Face(i)
		var tri [3]screenVertex
		for j, idx := range face {
			pos, normal, uv := mesh.Vertex(idx)
			tri[j] = screenVertex{pos: pos, normal: normal, uv: uv}
		}

		// Face normal in world space, from the transformed edges.
		a := model.MulVec3(tri[0].pos)
		b := model.MulVec3(tri[1].pos)
		c := model.MulVec3(tri[2].pos)
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()

		sv, ok := r.projectTriangle(model, tri)
		if !ok {
			continue
		}

		shade := MultiplyColor(base, diffuse(n, r.LightDir))
		DrawTriangle(r.fb, r.depth, [3]ShadedVertex[Scalar]{
			{Pos: sv[0].pos},
			{Pos: sv[1].pos},
			{Pos: sv[2].pos},
		}, FlatShader[Scalar](shade))
	}
}

// DrawMeshGouraud renders a mesh with per-vertex lighting: the diffuse term
// is evaluated at each vertex normal and interpolated across the face.
func (r *Renderer) DrawMeshGouraud(mesh MeshSource, model math3d.Mat4, base Color) {
	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.Face(i)
		var tri [3]screenVertex
		for j, idx := range face {
			pos, normal, uv := mesh.Vertex(idx)
			tri[j] = screenVertex{pos: pos, normal: normal, uv: uv}
		}

		sv, ok := r.projectTriangle(model, tri)
		if !ok {
			continue
		}

		var shaded [3]ShadedVertex[RGBAf]
		for j := range sv {
			// Valid while model is rotation plus uniform scale; the
			// renormalization absorbs the scale.
			n := model.MulVec3Dir(tri[j].normal).Normalize()
			lit := MultiplyColor(base, diffuse(n, r.LightDir))
			shaded[j] = ShadedVertex[RGBAf]{Pos: sv[j].pos, Attr: RGBAfFromColor(lit)}
		}
		DrawTriangle(r.fb, r.depth, shaded, RGBAf.Color)
	}
}

// DrawMeshWireframe renders only the edges of each front-facing triangle.
// Edges ignore the depth buffer.
func (r *Renderer) DrawMeshWireframe(mesh MeshSource, model math3d.Mat4, c Color) {
	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.Face(i)
		var tri [3]screenVertex
		for j, idx := range face {
			pos, normal, uv := mesh.Vertex(idx)
			tri[j] = screenVertex{pos: pos, normal: normal, uv: uv}
		}

		sv, ok := r.projectTriangle(model, tri)
		if !ok {
			continue
		}

		pts := [3]image.Point{
			image.Pt(int(sv[0].pos.X), int(sv[0].pos.Y)),
			image.Pt(int(sv[1].pos.X), int(sv[1].pos.Y)),
			image.Pt(int(sv[2].pos.X), int(sv[2].pos.Y)),
		}
		DrawLine(r.fb, pts[0], pts[1], c)
		DrawLine(r.fb, pts[1], pts[2], c)
		DrawLine(r.fb, pts[2], pts[0], c)
	}
}

// DrawLine3D traces a world-space segment as a 2D line. Endpoints behind
// the camera drop the whole segment.
func (r *Renderer) DrawLine3D(a, b math3d.Vec3, c Color) {
	ax, ay, _, aok := r.camera.WorldToScreen(a, r.fb.Width, r.fb.Height)
	bx, by, _, bok := r.camera.WorldToScreen(b, r.fb.Width, r.fb.Height)
	if !aok || !bok {
		return
	}
	DrawLine(r.fb, image.Pt(int(ax), int(ay)), image.Pt(int(bx), int(by)), c)
}

// DrawAxes draws the world axes from the origin: x red, y green, z blue.
func (r *Renderer) DrawAxes(length float64) {
	r.DrawLine3D(math3d.Zero3(), math3d.V3(length, 0, 0), ColorRed)
	r.DrawLine3D(math3d.Zero3(), math3d.V3(0, length, 0), ColorGreen)
	r.DrawLine3D(math3d.Zero3(), math3d.V3(0, 0, length), ColorBlue)
}

// DrawGrid draws a ground-plane grid centered on the origin, extending
// size units in each direction with the given line spacing.
func (r *Renderer) DrawGrid(size, spacing float64, c Color) {
	for _, seg := range gridSegments(size, spacing) {
		r.DrawLine3D(seg[0], seg[1], c)
	}
}

// gridSegments enumerates each grid line exactly once: the two center
// lines, then symmetric pairs stepping outward.
func gridSegments(size, spacing float64) [][2]math3d.Vec3 {
	if spacing <= 0 {
		return nil
	}
	var segs [][2]math3d.Vec3
	for d := 0.0; d <= size; d += spacing {
		segs = append(segs,
			[2]math3d.Vec3{math3d.V3(-size, 0, d), math3d.V3(size, 0, d)},
			[2]math3d.Vec3{math3d.V3(d, 0, -size), math3d.V3(d, 0, size)},
		)
		if d > 0 {
			segs = append(segs,
				[2]math3d.Vec3{math3d.V3(-size, 0, -d), math3d.V3(size, 0, -d)},
				[2]math3d.Vec3{math3d.V3(-d, 0, -size), math3d.V3(-d, 0, size)},
			)
		}
	}
	return segs
}

// diffuse is Lambertian lighting with an ambient floor, so faces turned
// away from the light stay visible.
func diffuse(normal, lightDir math3d.Vec3) float64 {
	d := math.Max(0, normal.Dot(lightDir.Negate()))
	return 0.3 + 0.7*d
}
