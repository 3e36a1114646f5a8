package geom

import "math"

// SegmentsIntersect reports whether the closed segments ab and cd share at
// least one point.
func SegmentsIntersect(a, b, c, d Point) bool {
	d1 := Orient(c, d, a)
	d2 := Orient(c, d, b)
	d3 := Orient(a, b, c)
	d4 := Orient(a, b, d)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && OnSegment(c, d, a)) ||
		(d2 == 0 && OnSegment(c, d, b)) ||
		(d3 == 0 && OnSegment(a, b, c)) ||
		(d4 == 0 && OnSegment(a, b, d))
}

// OnSegment reports whether p, already known to be collinear with ab, lies
// within the bounding box of ab.
func OnSegment(a, b, p Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// InDiametralCircle reports whether p lies strictly inside the circle that has
// ab as its diameter. Such a point is said to encroach upon ab.
func InDiametralCircle(a, b, p Point) bool {
	if SamePoint(p, a) || SamePoint(p, b) {
		return false
	}
	return a.Sub(p).Dot(b.Sub(p)) < 0
}
