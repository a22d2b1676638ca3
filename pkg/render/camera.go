package render

import (
	"math"

	"github.com/yohandev/software-rasterizer/pkg/math3d"
)

// Camera is a perspective camera. It produces the view-projection matrix
// the renderer uses to bring world-space geometry into clip space.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3

	FOV         float64 // vertical field of view, radians
	AspectRatio float64 // width / height
	Near        float64
	Far         float64

	viewProj math3d.Mat4
	dirty    bool
}

// NewCamera creates a camera at (0, 0, 5) looking at the origin with a 60
// degree field of view.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 0, 5),
		Target:      math3d.Zero3(),
		FOV:         math.Pi / 3,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         100,
		dirty:       true,
	}
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.dirty = true
}

// LookAt aims the camera at a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.Target = target
	c.dirty = true
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.dirty = true
}

// SetAspectRatio sets the width/height ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.dirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.dirty = true
}

// ViewProjectionMatrix returns the combined view-projection matrix,
// recomputing it only when the camera changed.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.dirty {
		view := math3d.LookAt(c.Position, c.Target, math3d.Up())
		proj := math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.viewProj = proj.Mul(view)
		c.dirty = false
	}
	return c.viewProj
}

// WorldToScreen projects a world point to screen coordinates. The returned
// depth follows the renderer's larger-is-closer convention. visible is
// false when the point is behind the camera or outside the view volume.
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clip.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // screen y grows downward
	return x, y, -ndc.Z, true
}
