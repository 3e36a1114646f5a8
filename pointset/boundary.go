package pointset

import (
	"math"

	"github.com/osuushi/frontmesh/domain"
	"github.com/osuushi/frontmesh/front"
	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
)

// BoundaryInput is a point set with the segments a constrained triangulation
// must honor. The rectangle loop comes first, then the dead zone loop, then
// free interior points.
type BoundaryInput struct {
	Points   []geom.Point
	Segments []mesh.Segment
	// Number of leading points that belong to the two loops.
	LoopPoints int
}

// Boundary builds the constrained input for g. The rectangle perimeter is
// sampled at the lattice resolution. The dead zone is closed by a polygon
// circumscribed about the circle, so every chord lies on or outside the circle
// and nothing meshed can reach into the dead zone.
//
// Interior points are the front layers beyond the first ring plus the interior
// lattice, kept only when they are at least clearance away from both loops.
// A non-positive clearance defaults to half the smallest boundary spacing.
func Boundary(g domain.Geometry, layers front.Layers, clearance float64) (*BoundaryInput, error) {
	rect := perimeter(g)
	n := g.BoundaryPoints()
	circumradius := domain.HoleCircumradius(g.Radius(), n)
	c := g.Center()
	if c.X-circumradius <= 0 || c.X+circumradius >= g.Width() || c.Y-circumradius <= 0 || c.Y+circumradius >= g.Height() {
		return nil, geom.ConfigurationErrorf("dead zone polygon of radius %g does not fit inside the %g x %g domain",
			circumradius, g.Width(), g.Height())
	}
	ring := front.Ring(c, circumradius, n)

	if clearance <= 0 {
		clearance = 0.5 * math.Min(minSpacing(rect), minSpacing(ring))
	}

	input := &BoundaryInput{}
	input.Points = append(input.Points, rect...)
	input.Points = append(input.Points, ring...)
	input.LoopPoints = len(input.Points)
	input.Segments = append(input.Segments, loopSegments(0, len(rect))...)
	input.Segments = append(input.Segments, loopSegments(len(rect), len(ring))...)

	rings, err := front.Rings(g, layers)
	if err != nil {
		return nil, err
	}
	var interior []geom.Point
	for _, r := range rings[1:] {
		interior = append(interior, r...)
	}
	interior = append(interior, Lattice(g.Bounds(), g.LatticeX(), g.LatticeY())...)

	// The hole polygon lies within this radius of the center.
	keepOut := circumradius + clearance
	for _, p := range interior {
		if geom.Distance(p, g.Center()) < keepOut {
			continue
		}
		if p.X < clearance || p.X > g.Width()-clearance || p.Y < clearance || p.Y > g.Height()-clearance {
			continue
		}
		input.Points = append(input.Points, p)
	}
	return input, nil
}

// perimeter walks the rectangle counterclockwise from the origin, using the
// lattice resolution along each side.
func perimeter(g domain.Geometry) []geom.Point {
	nx, ny := g.LatticeX(), g.LatticeY()
	w, h := g.Width(), g.Height()
	points := make([]geom.Point, 0, 2*(nx-1)+2*(ny-1))
	for i := 0; i < nx-1; i++ {
		points = append(points, geom.Point{X: lerp(0, w, i, nx), Y: 0})
	}
	for j := 0; j < ny-1; j++ {
		points = append(points, geom.Point{X: w, Y: lerp(0, h, j, ny)})
	}
	for i := nx - 1; i > 0; i-- {
		points = append(points, geom.Point{X: lerp(0, w, i, nx), Y: h})
	}
	for j := ny - 1; j > 0; j-- {
		points = append(points, geom.Point{X: 0, Y: lerp(0, h, j, ny)})
	}
	return points
}

func loopSegments(offset, n int) []mesh.Segment {
	segments := make([]mesh.Segment, n)
	for i := range segments {
		segments[i] = mesh.Segment{offset + i, offset + geom.CircularIndex(i+1, n)}
	}
	return segments
}

func minSpacing(loop []geom.Point) float64 {
	spacing := math.Inf(1)
	for i, p := range loop {
		spacing = math.Min(spacing, geom.Distance(p, loop[geom.CircularIndex(i+1, len(loop))]))
	}
	return spacing
}
