package game

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector with v's direction, or the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// heading returns sin and cos of a rotation given in degrees.
func heading(rot float64) (sin, cos float64) {
	return math.Sincos(rot * math.Pi / 180)
}

// NormalizeDegrees maps any angle into [0,360).
func NormalizeDegrees(rot float64) float64 {
	return Wrap(rot, 360)
}

// Wrap maps v into [0,size).
func Wrap(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// Adding size to a tiny negative remainder can round up to size.
	if v >= size {
		v = 0
	}
	return v
}
