// Package pointset assembles the points handed to the triangulation engine:
// the advancing front rings followed by a background lattice that covers the
// whole domain.
package pointset

import (
	"github.com/golang/geo/r2"
	"github.com/osuushi/frontmesh/domain"
	"github.com/osuushi/frontmesh/geom"
)

// Options controls which points survive assembly.
type Options struct {
	// Drop lattice points strictly inside the dead zone.
	FilterExclusion bool
	// Drop front points that fall outside the domain rectangle, which happens
	// when the layers are thicker than the gap between circle and wall.
	ClipToDomain bool
}

// Lattice returns an nx by ny grid spanning bounds with both ends included.
// Points are row-major with x varying fastest.
func Lattice(bounds r2.Rect, nx, ny int) []geom.Point {
	points := make([]geom.Point, 0, nx*ny)
	for j := 0; j < ny; j++ {
		y := lerp(bounds.Y.Lo, bounds.Y.Hi, j, ny)
		for i := 0; i < nx; i++ {
			points = append(points, geom.Point{X: lerp(bounds.X.Lo, bounds.X.Hi, i, nx), Y: y})
		}
	}
	return points
}

// lerp is the i-th of n evenly spaced values from lo to hi inclusive.
func lerp(lo, hi float64, i, n int) float64 {
	if n < 2 {
		return lo
	}
	if i == n-1 {
		return hi
	}
	return lo + (hi-lo)*float64(i)/float64(n-1)
}

// Filter keeps the points whose distance to center is at least radius,
// preserving their order. Applying it twice gives the same result as applying
// it once.
func Filter(points []geom.Point, center geom.Point, radius float64) []geom.Point {
	kept := make([]geom.Point, 0, len(points))
	for _, p := range points {
		if geom.Distance(p, center) >= radius {
			kept = append(kept, p)
		}
	}
	return kept
}

// Assemble places the front points first and the lattice after them.
func Assemble(g domain.Geometry, front []geom.Point, opts Options) []geom.Point {
	lattice := Lattice(g.Bounds(), g.LatticeX(), g.LatticeY())
	if opts.FilterExclusion {
		lattice = Filter(lattice, g.Center(), g.Radius())
	}
	points := make([]geom.Point, 0, len(front)+len(lattice))
	for _, p := range front {
		if opts.ClipToDomain && !g.Contains(p) {
			continue
		}
		points = append(points, p)
	}
	return append(points, lattice...)
}
