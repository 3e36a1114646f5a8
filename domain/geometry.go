package domain

import (
	"github.com/golang/geo/r2"
	"github.com/osuushi/frontmesh/geom"
)

// Geometry is the immutable description of the meshed region. Build it with
// NewGeometry; the zero value describes nothing useful.
type Geometry struct {
	width, height  float64
	center         geom.Point
	radius         float64
	boundaryPoints int
	latticeX       int
	latticeY       int
}

// NewGeometry validates the geometric part of cfg and freezes it.
func NewGeometry(cfg Config) (Geometry, error) {
	if err := geom.NewConfigurationError(cfg.validateGeometry()); err != nil {
		return Geometry{}, err
	}
	return Geometry{
		width:          cfg.Lx,
		height:         cfg.Ly,
		center:         geom.Point{X: cfg.CircleCenterX, Y: cfg.CircleCenterY},
		radius:         cfg.CircleRadius,
		boundaryPoints: cfg.NumBoundaryPoints,
		latticeX:       cfg.LatticeResolutionX,
		latticeY:       cfg.LatticeResolutionY,
	}, nil
}

func (g Geometry) Width() float64      { return g.width }
func (g Geometry) Height() float64     { return g.height }
func (g Geometry) Center() geom.Point  { return g.center }
func (g Geometry) Radius() float64     { return g.radius }
func (g Geometry) BoundaryPoints() int { return g.boundaryPoints }
func (g Geometry) LatticeX() int       { return g.latticeX }
func (g Geometry) LatticeY() int       { return g.latticeY }

// Bounds is the closed rectangle [0, Lx] x [0, Ly].
func (g Geometry) Bounds() r2.Rect {
	return r2.RectFromPoints(geom.Point{}, geom.Point{X: g.width, Y: g.height})
}

// Contains reports whether p lies in the closed rectangle.
func (g Geometry) Contains(p geom.Point) bool {
	return g.Bounds().ContainsPoint(p)
}

// Excludes reports whether p lies strictly inside the dead zone.
func (g Geometry) Excludes(p geom.Point) bool {
	return geom.Distance(p, g.center) < g.radius
}
