// Package math provides the vector and matrix types used by the wireframe renderer.
package math

import "math"

// Projection constants shared by every renderer.
const (
	// DefaultFocalDistance is the distance from the eye to the projection plane.
	DefaultFocalDistance = 5.0
	// DefaultProjectionScale converts projected units into canvas pixels.
	DefaultProjectionScale = 100.0
	// NearPlaneEpsilon is the smallest |z+focal| that still projects.
	NearPlaneEpsilon = 1e-3
)

// Vec3 is an immutable point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v multiplied componentwise by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// RotateX rotates v around the X axis by angle radians.
func (v Vec3) RotateX(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		X: v.X,
		Y: v.Y*c - v.Z*s,
		Z: v.Y*s + v.Z*c,
	}
}

// RotateY rotates v around the Y axis by angle radians.
func (v Vec3) RotateY(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// RotateZ rotates v around the Z axis by angle radians.
func (v Vec3) RotateZ(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
		Z: v.Z,
	}
}

// Project perspective-projects v onto the canvas plane.
// Points whose depth lands within NearPlaneEpsilon of the eye collapse to
// the origin instead of blowing up.
func (v Vec3) Project(focal, scale float64) Vec2 {
	d := v.Z + focal
	if math.Abs(d) < NearPlaneEpsilon {
		return Vec2{}
	}
	f := focal / d
	return Vec2{
		X: v.X * f * scale,
		Y: v.Y * f * scale,
	}
}

// RotateX is the free-function form of Vec3.RotateX.
func RotateX(p Vec3, angle float64) Vec3 { return p.RotateX(angle) }

// RotateY is the free-function form of Vec3.RotateY.
func RotateY(p Vec3, angle float64) Vec3 { return p.RotateY(angle) }

// RotateZ is the free-function form of Vec3.RotateZ.
func RotateZ(p Vec3, angle float64) Vec3 { return p.RotateZ(angle) }

// ScaleVec3 is the free-function form of Vec3.Scale.
func ScaleVec3(p Vec3, s float64) Vec3 { return p.Scale(s) }

// Project projects p with the default projection scale.
func Project(p Vec3, focal float64) Vec2 {
	return p.Project(focal, DefaultProjectionScale)
}
