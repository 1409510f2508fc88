package vmath

// Segment is the closed line segment between A and B
type Segment struct {
	A, B Vec2
}

// Seg is shorthand for Segment{A: a, B: b}
func Seg(a, b Vec2) Segment { return Segment{A: a, B: b} }

func (s Segment) Length() float64 { return s.A.Distance(s.B) }
func (s Segment) Line() Line      { return LineThrough(s.A, s.B) }
func (s Segment) Midpoint() Vec2  { return s.A.Add(s.B).Scale(0.5) }

// Degenerate reports a zero-length segment
func (s Segment) Degenerate() bool { return s.A == s.B }

// ClosestPoint returns the point on the segment nearest to p
func (s Segment) ClosestPoint(p Vec2) Vec2 {
	d := s.B.Sub(s.A)
	lenSq := d.LengthSq()
	if lenSq == 0 {
		return s.A
	}
	t := Clamp(p.Sub(s.A).Dot(d)/lenSq, 0, 1)
	return s.A.Add(d.Scale(t))
}

func (s Segment) DistanceTo(p Vec2) float64 {
	return p.Distance(s.ClosestPoint(p))
}

// Contains reports whether p lies on the segment within Epsilon
func (s Segment) Contains(p Vec2) bool {
	return s.DistanceTo(p) <= Epsilon
}

// Intersect returns the crossing point of two segments
// Parallel and collinear segments report no intersection
func (s Segment) Intersect(o Segment) (Vec2, bool) {
	p, ok := lineIntersection(s.A, s.B, o.A, o.B)
	if !ok {
		return Vec2{}, false
	}
	if !s.Contains(p) || !o.Contains(p) {
		return Vec2{}, false
	}
	return p, true
}

// IntersectLine returns where the segment crosses the infinite line l
func (s Segment) IntersectLine(l Line) (Vec2, bool) {
	p, ok := lineIntersection(s.A, s.B, l.p1, l.p2)
	if !ok || !s.Contains(p) {
		return Vec2{}, false
	}
	return p, true
}

// CircleIntersections returns the points where the segment crosses a circle boundary
func (s Segment) CircleIntersections(center Vec2, radius float64) []Vec2 {
	var out []Vec2
	for _, p := range s.Line().CircleIntersections(center, radius) {
		if s.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

// ContainsPoint satisfies Shape, a segment has no interior
func (s Segment) ContainsPoint(p Vec2) bool { return s.Contains(p) }

// OverlapsCircle reports whether any point of the segment is strictly inside the circle
func (s Segment) OverlapsCircle(center Vec2, radius float64) bool {
	return s.DistanceTo(center) < radius
}
