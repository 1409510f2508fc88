package vmath

import "math"

// Line is an infinite line in slope/intercept form, anchored by two points
// Vertical lines carry a +Inf slope and a zero intercept
type Line struct {
	p1, p2    Vec2
	slope     float64
	intercept float64
}

// LineThrough builds the line passing through a and b
// Coincident points produce a degenerate line that intersects nothing
func LineThrough(a, b Vec2) Line {
	l := Line{p1: a, p2: b}
	if a.X == b.X {
		l.slope = math.Inf(1)
		return l
	}
	l.slope = (a.Y - b.Y) / (a.X - b.X)
	l.intercept = a.Y - l.slope*a.X
	return l
}

// LineWithSlope builds the line with slope m passing through p, ±Inf means vertical
func LineWithSlope(m float64, p Vec2) Line {
	if math.IsInf(m, 0) {
		return Line{p1: p, p2: p.Add(Vec2{Y: 1}), slope: math.Inf(1)}
	}
	return Line{p1: p, p2: Vec2{X: p.X + 1, Y: p.Y + m}, slope: m, intercept: p.Y - m*p.X}
}

func (l Line) Slope() float64     { return l.slope }
func (l Line) Intercept() float64 { return l.intercept }
func (l Line) IsVertical() bool   { return math.IsInf(l.slope, 0) }
func (l Line) Anchor() Vec2       { return l.p1 }

// Degenerate reports a line built from two coincident points
func (l Line) Degenerate() bool { return l.p1 == l.p2 }

// SlopeAngle returns atan(slope) in (-π/2, π/2]
func (l Line) SlopeAngle() float64 { return math.Atan(l.slope) }

// Direction returns the unit direction with non-negative X, (0, 1) for vertical lines
func (l Line) Direction() Vec2 {
	if l.IsVertical() {
		return Vec2{Y: 1}
	}
	return Vec2{X: 1, Y: l.slope}.Normalize()
}

// PointAtX returns the point with the given x, false for vertical lines not at x
func (l Line) PointAtX(x float64) (Vec2, bool) {
	if l.IsVertical() {
		if x == l.p1.X {
			return Vec2{X: x, Y: l.p1.Y}, true
		}
		return Vec2{}, false
	}
	return Vec2{X: x, Y: l.slope*x + l.intercept}, true
}

// Perpendicular returns the line perpendicular to l through p
func (l Line) Perpendicular(p Vec2) Line {
	if l.IsVertical() {
		return LineWithSlope(0, p)
	}
	if l.slope == 0 {
		return LineWithSlope(math.Inf(1), p)
	}
	return LineWithSlope(-1/l.slope, p)
}

// Parallel returns the line parallel to l through p
func (l Line) Parallel(p Vec2) Line {
	return LineWithSlope(l.slope, p)
}

// Translated returns l shifted by offset
func (l Line) Translated(offset Vec2) Line {
	return l.Parallel(l.p1.Add(offset))
}

// ClosestPoint projects p onto the line
func (l Line) ClosestPoint(p Vec2) Vec2 {
	d := l.p2.Sub(l.p1)
	lenSq := d.LengthSq()
	if lenSq == 0 {
		return l.p1
	}
	t := p.Sub(l.p1).Dot(d) / lenSq
	return l.p1.Add(d.Scale(t))
}

// DistanceTo returns the perpendicular distance from p to the line
func (l Line) DistanceTo(p Vec2) float64 {
	return p.Distance(l.ClosestPoint(p))
}

// Intersect returns the crossing point of two lines, false when parallel or degenerate
func (l Line) Intersect(o Line) (Vec2, bool) {
	return lineIntersection(l.p1, l.p2, o.p1, o.p2)
}

// CircleIntersections returns the crossing points with a circle
// Two points are returned for a secant, the same point twice for a tangent, none otherwise
func (l Line) CircleIntersections(center Vec2, radius float64) []Vec2 {
	d := l.p2.Sub(l.p1)
	a := d.LengthSq()
	if a == 0 {
		return nil
	}
	f := l.p1.Sub(center)
	b := 2 * f.Dot(d)
	c := f.LengthSq() - radius*radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	return []Vec2{l.p1.Add(d.Scale(t1)), l.p1.Add(d.Scale(t2))}
}

// lineIntersection solves the crossing of line p1p2 with line p3p4 by Cramer's rule
func lineIntersection(p1, p2, p3, p4 Vec2) (Vec2, bool) {
	den := det2(p1.X-p2.X, p1.Y-p2.Y, p3.X-p4.X, p3.Y-p4.Y)
	if den == 0 {
		return Vec2{}, false
	}
	a := det2(p1.X, p1.Y, p2.X, p2.Y)
	b := det2(p3.X, p3.Y, p4.X, p4.Y)
	x := det2(a, p1.X-p2.X, b, p3.X-p4.X) / den
	y := det2(a, p1.Y-p2.Y, b, p3.Y-p4.Y) / den
	return Vec2{X: x, Y: y}, true
}
