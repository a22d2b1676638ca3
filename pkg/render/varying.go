package render

import "github.com/yohandev/software-rasterizer/pkg/math3d"

// Varying is the contract for per-vertex attributes that can be smoothly
// varied across a triangle's interior: anything closed under scaling and
// addition interpolates as the barycentric-weighted sum of the three
// vertex values. New attribute types (texture coordinates, normals, ...)
// plug in without touching the rasterizer.
//
// math3d.Vec2 and math3d.Vec3 satisfy the contract directly.
type Varying[T any] interface {
	Scale(s float64) T
	Add(o T) T
}

// Interpolate evaluates v0*u + v1*v + v2*w for barycentric weights bc.
func Interpolate[T Varying[T]](v0, v1, v2 T, bc math3d.Vec3) T {
	return v0.Scale(bc.X).Add(v1.Scale(bc.Y)).Add(v2.Scale(bc.Z))
}

// Scalar is a float64 varying, e.g. a depth value or a lighting intensity.
type Scalar float64

// Scale returns s * f.
func (s Scalar) Scale(f float64) Scalar { return Scalar(float64(s) * f) }

// Add returns s + o.
func (s Scalar) Add(o Scalar) Scalar { return s + o }

// RGBAf is a four-channel floating-point color varying. Byte-channel
// colors interpolate by promoting to RGBAf and truncating back.
type RGBAf struct {
	R, G, B, A float64
}

// RGBAfFromColor promotes a byte-channel color to floating point.
func RGBAfFromColor(c Color) RGBAf {
	return RGBAf{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
}

// Color truncates the channels back to bytes, clamping to [0, 255].
func (c RGBAf) Color() Color {
	return Color{
		R: clampByte(c.R),
		G: clampByte(c.G),
		B: clampByte(c.B),
		A: clampByte(c.A),
	}
}

// Scale returns the channel-wise product c * s.
func (c RGBAf) Scale(s float64) RGBAf {
	return RGBAf{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Add returns the channel-wise sum c + o.
func (c RGBAf) Add(o RGBAf) RGBAf {
	return RGBAf{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// InterpolateColor interpolates three byte-channel colors through RGBAf.
func InterpolateColor(c0, c1, c2 Color, bc math3d.Vec3) Color {
	return Interpolate(RGBAfFromColor(c0), RGBAfFromColor(c1), RGBAfFromColor(c2), bc).Color()
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
