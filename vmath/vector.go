package vmath

import (
	"fmt"
	"math"
)

// Vec2 is an immutable 2D vector, all operations return new values
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }
func (v Vec2) Neg() Vec2            { return Vec2{X: -v.X, Y: -v.Y} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) LengthSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Length() float64   { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Distance returns the euclidean distance between v and o
func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Length() }

// IsZero reports exact zero, used for the stopped-state check
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// FromAngle returns the unit vector at theta radians counter-clockwise from +x
func FromAngle(theta float64) Vec2 {
	return Vec2{X: math.Cos(theta), Y: math.Sin(theta)}
}

// Angle returns the direction of v in radians in (-π, π]
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Lerp interpolates from v to o, t=0 gives v and t=1 gives o
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(v.X, o.X, t), Y: Lerp(v.Y, o.Y, t)}
}

// Perpendicular returns v rotated 90° counter-clockwise
func (v Vec2) Perpendicular() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Reflect returns v mirrored about the surface with the given normal
// v' = v - 2 * dot(v, n̂) * n̂, the normal does not need to be unit length
func (v Vec2) Reflect(normal Vec2) Vec2 {
	n := normal.Normalize()
	if n.IsZero() {
		return v
	}
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// ClampLength limits the vector to maxLen while preserving direction
func (v Vec2) ClampLength(maxLen float64) Vec2 {
	l := v.Length()
	if l <= maxLen || l == 0 {
		return v
	}
	return v.Scale(maxLen / l)
}

// WithLength returns a vector along v with the given length
func (v Vec2) WithLength(length float64) Vec2 {
	return v.Normalize().Scale(length)
}

// NearlyEqual compares both components within tol
func (v Vec2) NearlyEqual(o Vec2, tol float64) bool {
	return NearlyEqual(v.X, o.X, tol) && NearlyEqual(v.Y, o.Y, tol)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Closest returns the candidate nearest to origin, false when candidates is empty
func Closest(origin Vec2, candidates []Vec2) (Vec2, bool) {
	if len(candidates) == 0 {
		return Vec2{}, false
	}
	best := candidates[0]
	bestDist := origin.Distance(best)
	for _, c := range candidates[1:] {
		if d := origin.Distance(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}
