package triangulation

import (
	"math"

	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
)

func validatePoints(points []geom.Point) error {
	if len(points) < 3 {
		return geom.DegenerateInputErrorf("need at least 3 points, got %d", len(points))
	}
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return geom.DegenerateInputErrorf("point %d is not finite: %v", i, p)
		}
	}

	// Take the point farthest from the first one as a baseline, then look for
	// any point that is measurably off that line.
	origin := points[0]
	far, farDist := origin, 0.0
	for _, p := range points[1:] {
		if d := geom.Distance(origin, p); d > farDist {
			far, farDist = p, d
		}
	}
	if farDist <= geom.Tolerance {
		return geom.DegenerateInputErrorf("all %d points coincide", len(points))
	}
	for _, p := range points {
		// Orient is twice the triangle area, so this is the distance of p
		// from the baseline.
		if math.Abs(geom.Orient(origin, far, p))/farDist > geom.Tolerance {
			return nil
		}
	}
	return geom.DegenerateInputErrorf("all %d points are collinear", len(points))
}

// ValidateSegments checks that segments describe simple closed loops over
// points: every index is in range, no segment is degenerate or repeated, each
// point used has exactly two segments, and no two segments cross or touch
// except where they share an endpoint.
func ValidateSegments(points []geom.Point, segments []mesh.Segment) error {
	seen := make(map[mesh.Segment]int, len(segments))
	for i, s := range segments {
		for _, v := range s {
			if v < 0 || v >= len(points) {
				return geom.GeometryErrorf("segment %d references point %d of %d", i, v, len(points))
			}
		}
		if s[0] == s[1] {
			return geom.GeometryErrorf("segment %d is degenerate", i)
		}
		if geom.SamePoint(points[s[0]], points[s[1]]) {
			return geom.GeometryErrorf("segment %d has zero length", i)
		}
		normalized := s
		if normalized[0] > normalized[1] {
			normalized[0], normalized[1] = normalized[1], normalized[0]
		}
		if j, ok := seen[normalized]; ok {
			return geom.GeometryErrorf("segment %d duplicates segment %d", i, j)
		}
		seen[normalized] = i
	}
	if _, err := mesh.Loops(segments); err != nil {
		return err
	}
	for i, s := range segments {
		a, b := points[s[0]], points[s[1]]
		for j := i + 1; j < len(segments); j++ {
			t := segments[j]
			c, d := points[t[0]], points[t[1]]
			shared := sharedEndpoint(s, t)
			if shared < 0 {
				if geom.SegmentsIntersect(a, b, c, d) {
					return geom.GeometryErrorf("segments %d and %d intersect", i, j)
				}
				continue
			}
			// Adjacent segments may only meet at their shared point, which
			// rules out folding back along each other.
			other := t[0]
			if other == shared {
				other = t[1]
			}
			start := s[0]
			if start == shared {
				start = s[1]
			}
			p, q := points[shared], points[start]
			r := points[other]
			if geom.Orient(p, q, r) == 0 && q.Sub(p).Dot(r.Sub(p)) > 0 {
				return geom.GeometryErrorf("segments %d and %d overlap", i, j)
			}
		}
	}
	return nil
}

func sharedEndpoint(s, t mesh.Segment) int {
	for _, u := range s {
		for _, v := range t {
			if u == v {
				return u
			}
		}
	}
	return -1
}
