package math

import "math"

// Vec2 is a point in canvas space: origin at the center, y up.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Exceeds reports whether either coordinate's magnitude is above limit.
func (v Vec2) Exceeds(limit float64) bool {
	return math.Abs(v.X) > limit || math.Abs(v.Y) > limit
}
