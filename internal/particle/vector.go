package particle

import "math"

// Vector2 is a 2D point, velocity or acceleration in screen space.
// Y grows downward, so an upward velocity has a negative Y.
type Vector2 struct {
	X float64
	Y float64
}

// Vec returns the vector (x, y).
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// FromAngle returns the unit vector pointing at angle radians.
func FromAngle(angle float64) Vector2 {
	return Vector2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Len returns the magnitude of v.
func (v Vector2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
