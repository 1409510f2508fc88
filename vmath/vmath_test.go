package vmath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	assert.Equal(t, V(4, 2), a.Add(b))
	assert.Equal(t, V(2, 6), a.Sub(b))
	assert.Equal(t, V(6, 8), a.Scale(2))
	assert.Equal(t, V(-3, -4), a.Neg())
	assert.Equal(t, -5.0, a.Dot(b))
	assert.Equal(t, -10.0, a.Cross(b))
	assert.Equal(t, 5.0, a.Length())
	assert.Equal(t, 25.0, a.LengthSq())
}

func TestVec2NormalizeZeroSafe(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
	n := V(0, -7).Normalize()
	assert.True(t, n.NearlyEqual(V(0, -1), Epsilon))
}

func TestVec2Reflect(t *testing.T) {
	tests := []struct {
		name   string
		v      Vec2
		normal Vec2
		want   Vec2
	}{
		{"head-on horizontal", V(1, 0), V(-3, 0), V(-1, 0)},
		{"glancing", V(1, -1), V(0, 1), V(1, 1)},
		{"parallel to surface", V(0, 2), V(1, 0), V(0, 2)},
		{"zero normal", V(1, 2), Vec2{}, V(1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Reflect(tt.normal)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Reflect() mismatch (-want +got):\n%s", diff)
			}
			assert.InDelta(t, tt.v.Length(), got.Length(), 1e-12)
		})
	}
}

func TestVec2ClampLength(t *testing.T) {
	v := V(30, 40).ClampLength(5)
	assert.InDelta(t, 5, v.Length(), 1e-12)
	assert.True(t, v.NearlyEqual(V(3, 4), 1e-12))
	assert.Equal(t, V(1, 1), V(1, 1).ClampLength(5))
}

func TestClosest(t *testing.T) {
	_, ok := Closest(V(0, 0), nil)
	assert.False(t, ok)

	got, ok := Closest(V(0, 0), []Vec2{V(5, 0), V(-1, 1), V(2, 2)})
	require.True(t, ok)
	assert.Equal(t, V(-1, 1), got)
}

func TestLineIntersect(t *testing.T) {
	diag := LineThrough(V(0, 0), V(1, 1))
	anti := LineThrough(V(0, 2), V(2, 0))

	p, ok := diag.Intersect(anti)
	require.True(t, ok)
	assert.True(t, p.NearlyEqual(V(1, 1), Epsilon))

	_, ok = diag.Intersect(diag.Translated(V(0, 1)))
	assert.False(t, ok, "parallel lines must not intersect")

	vert := LineWithSlope(math.Inf(1), V(3, 0))
	assert.True(t, vert.IsVertical())
	p, ok = vert.Intersect(diag)
	require.True(t, ok)
	assert.True(t, p.NearlyEqual(V(3, 3), Epsilon))
}

func TestLinePerpendicular(t *testing.T) {
	horiz := LineWithSlope(0, V(0, 1))
	assert.True(t, horiz.Perpendicular(V(2, 2)).IsVertical())
	assert.Equal(t, 0.0, LineWithSlope(math.Inf(-1), V(0, 0)).Perpendicular(V(1, 1)).Slope())
	assert.InDelta(t, -0.5, LineWithSlope(2, V(0, 0)).Perpendicular(V(0, 0)).Slope(), 1e-12)
}

func TestLineDirection(t *testing.T) {
	assert.Equal(t, V(0, 1), LineThrough(V(1, 5), V(1, -5)).Direction())
	d := LineThrough(V(2, 2), V(0, 0)).Direction()
	assert.True(t, d.X > 0)
	assert.InDelta(t, 1, d.Length(), 1e-12)
}

func TestLineCircleIntersections(t *testing.T) {
	l := LineWithSlope(0, V(0, 0))

	pts := l.CircleIntersections(V(0, 0), 2)
	require.Len(t, pts, 2)
	assert.True(t, pts[0].NearlyEqual(V(-2, 0), 1e-12))
	assert.True(t, pts[1].NearlyEqual(V(2, 0), 1e-12))

	tangent := l.CircleIntersections(V(0, 1), 1)
	require.Len(t, tangent, 2)
	assert.Equal(t, tangent[0], tangent[1])

	assert.Nil(t, l.CircleIntersections(V(0, 5), 1))
}

func TestSegment(t *testing.T) {
	s := Seg(V(0, 0), V(4, 0))

	assert.True(t, s.Contains(V(2, 0)))
	assert.True(t, s.Contains(V(4, 0)))
	assert.False(t, s.Contains(V(5, 0)))
	assert.False(t, s.Contains(V(2, 1e-6)))

	assert.Equal(t, V(0, 0), s.ClosestPoint(V(-3, 2)))
	assert.InDelta(t, 3, s.DistanceTo(V(2, 3)), 1e-12)

	p, ok := s.Intersect(Seg(V(1, -1), V(1, 1)))
	require.True(t, ok)
	assert.True(t, p.NearlyEqual(V(1, 0), Epsilon))

	_, ok = s.Intersect(Seg(V(5, -1), V(5, 1)))
	assert.False(t, ok, "crossing beyond the endpoint")

	assert.True(t, s.OverlapsCircle(V(2, 0.5), 1))
	assert.False(t, s.OverlapsCircle(V(2, 1), 1), "tangent is not overlap")
}

func TestRect(t *testing.T) {
	r := NewRect(V(1, 1), V(-1, -1))
	assert.Equal(t, V(-1, -1), r.Min)
	assert.Equal(t, V(1, 1), r.Max)

	assert.True(t, r.ContainsPoint(V(0, 0)))
	assert.False(t, r.ContainsPoint(V(1, 0)), "edges are outside")
	assert.True(t, r.ContainsPointInclusive(V(1, 0)))

	assert.True(t, r.OverlapsCircle(V(1.5, 0), 0.6))
	assert.False(t, r.OverlapsCircle(V(2, 2), 1.2), "corner distance is sqrt(2)")
	assert.True(t, r.OverlapsCircle(V(2, 2), 1.5))

	edges := r.Edges()
	assert.Equal(t, -1.0, edges[0].A.X)
	assert.Equal(t, 1.0, edges[1].A.X)
	assert.Equal(t, 1.0, edges[2].A.Y)
	assert.Equal(t, -1.0, edges[3].A.Y)
}

func TestCircle(t *testing.T) {
	c := Circle{Center: V(0, 0), Radius: 1}
	assert.True(t, c.ContainsPoint(V(0.5, 0.5)))
	assert.False(t, c.ContainsPoint(V(1, 0)))
	assert.True(t, c.OverlapsCircle(V(1.5, 0), 0.6))
	assert.False(t, c.OverlapsCircle(V(2, 0), 1))
}

func TestVec2Angles(t *testing.T) {
	for _, theta := range []float64{0, math.Pi / 3, math.Pi, -math.Pi / 2} {
		v := FromAngle(theta).Scale(2)
		assert.InDelta(t, 2, v.Length(), 1e-12)
		assert.InDelta(t, theta, v.Angle(), 1e-12)
	}
	assert.True(t, cmp.Equal(V(0, 1), FromAngle(math.Pi/2), approx))

	a, b := V(0, 0), V(4, -2)
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.Equal(t, V(1, -0.5), a.Lerp(b, 0.25))
	assert.Equal(t, b, a.Lerp(b, 3))
}
