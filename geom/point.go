// Package geom holds the planar primitives shared by every stage of the mesh
// pipeline: points, orientation and in-circle predicates, polygons, and the
// error kinds raised when geometry is unusable.
package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a 2D coordinate. Points are values and are never modified once
// created, so the same Point may appear in several point sets.
type Point = r2.Point

// Tolerance is the absolute tolerance used for coordinate comparisons.
const Tolerance = 1e-9

// Equal compares two floats within Tolerance.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// SamePoint reports whether two points coincide within Tolerance.
func SamePoint(p, q Point) bool {
	return Equal(p.X, q.X) && Equal(p.Y, q.Y)
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

func Distance(p, q Point) float64 {
	return p.Sub(q).Norm()
}

// Orient returns twice the signed area of the triangle abc. It is positive when
// abc winds counterclockwise, negative when clockwise and zero when collinear.
func Orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// InCircle is positive when d lies inside the circumcircle of a, b and c,
// negative when outside and zero when the four points are cocircular. The
// sign is corrected for the winding of abc, so callers need not orient the
// triangle first.
func InCircle(a, b, c, d Point) float64 {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y
	det := (adx*adx+ady*ady)*(bdx*cdy-cdx*bdy) -
		(bdx*bdx+bdy*bdy)*(adx*cdy-cdx*ady) +
		(cdx*cdx+cdy*cdy)*(adx*bdy-bdx*ady)
	if Orient(a, b, c) < 0 {
		return -det
	}
	return det
}

// Circumcenter returns the center of the circle through a, b and c. The
// second result is false when the points are collinear.
func Circumcenter(a, b, c Point) (Point, bool) {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	if d == 0 {
		return Point{}, false
	}
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	return Point{
		X: a.X + (cy*b2-by*c2)/d,
		Y: a.Y + (bx*c2-cx*b2)/d,
	}, true
}

// Centroid is the arithmetic mean of the three corners.
func Centroid(a, b, c Point) Point {
	return Point{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
}

// Area is the unsigned area of the triangle abc.
func Area(a, b, c Point) float64 {
	return math.Abs(Orient(a, b, c)) / 2
}
