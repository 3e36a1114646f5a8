// Package quality scores triangle shape. Each triangle gets a skewness, the
// ratio of its shortest to its longest edge, and an orthogonality, its
// smallest interior angle in degrees. Both are independent of winding.
package quality

import (
	"math"

	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
)

// Record holds the metrics of one triangle. Records are index aligned with the
// Mesh they were computed from and mean nothing against any other Mesh.
type Record struct {
	Skewness      float64
	Orthogonality float64
}

// Skewness is shortest edge over longest edge: 1 for an equilateral triangle,
// approaching 0 for a sliver. A triangle collapsed to a point scores 0.
func Skewness(a, b, c geom.Point) float64 {
	ab, bc, ca := geom.Distance(a, b), geom.Distance(b, c), geom.Distance(c, a)
	longest := math.Max(ab, math.Max(bc, ca))
	if longest == 0 {
		return 0
	}
	return math.Min(ab, math.Min(bc, ca)) / longest
}

// angle is the interior angle at p between the edges towards q and r, in
// degrees. A zero length edge leaves the angle undefined; it counts as 0.
func angle(p, q, r geom.Point) float64 {
	e1, e2 := q.Sub(p), r.Sub(p)
	n1, n2 := e1.Norm(), e2.Norm()
	if n1 == 0 || n2 == 0 {
		return 0
	}
	cos := e1.Dot(e2) / (n1 * n2)
	// Rounding can push the cosine just past +-1.
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// Orthogonality is the smallest interior angle in degrees.
func Orthogonality(a, b, c geom.Point) float64 {
	return math.Min(angle(a, b, c), math.Min(angle(b, c, a), angle(c, a, b)))
}

func Evaluate(m *mesh.Mesh) []Record {
	records := make([]Record, len(m.Triangles))
	for i := range m.Triangles {
		a, b, c := m.Corners(i)
		records[i] = Record{
			Skewness:      Skewness(a, b, c),
			Orthogonality: Orthogonality(a, b, c),
		}
	}
	return records
}
