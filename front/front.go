// Package front generates the advancing front: concentric rings of points that
// start on the boundary of the dead zone and march away from it, one layer at
// a time.
package front

import (
	"math"

	"github.com/osuushi/frontmesh/domain"
	"github.com/osuushi/frontmesh/geom"
)

// Direction says whether layers grow away from the circle (outward) or into
// it (inward).
type Direction int

const (
	Outward Direction = iota
	Inward
)

// Layers configures the rings laid down after the boundary ring.
type Layers struct {
	Count     int
	Growth    Growth
	Direction Direction
}

// FromConfig builds the layer configuration described by cfg.
func FromConfig(cfg domain.Config) (Layers, error) {
	layers := Layers{Count: cfg.NumLayers}
	switch cfg.LayerGrowth.Mode {
	case domain.GrowthLinear:
		layers.Growth = Linear(cfg.LayerGrowth.Thickness)
	case domain.GrowthGeometric:
		layers.Growth = Geometric(cfg.LayerGrowth.FirstThickness, cfg.LayerGrowth.GrowthFactor)
	default:
		return Layers{}, geom.ConfigurationErrorf("unknown layer growth mode %q", cfg.LayerGrowth.Mode)
	}
	if cfg.LayerGrowth.Direction == domain.DirectionInward {
		layers.Direction = Inward
	}
	return layers, nil
}

// Radius returns the radius of ring i, where ring 0 is the circle itself.
func (l Layers) Radius(base float64, i int) float64 {
	if i == 0 {
		return base
	}
	offset := l.Growth.Offset(i)
	if l.Direction == Inward {
		return base - offset
	}
	return base + offset
}

func (l Layers) validate(base float64) error {
	if l.Count < 0 {
		return geom.ConfigurationErrorf("layer count must not be negative, got %d", l.Count)
	}
	if l.Count == 0 {
		return nil
	}
	if err := l.Growth.validate(); err != nil {
		return err
	}
	for i := 1; i <= l.Count; i++ {
		if r := l.Radius(base, i); r <= 0 {
			return geom.ConfigurationErrorf("layer %d collapses to radius %g", i, r)
		}
	}
	return nil
}

// Ring places n points on the circle of the given radius, at angles 2*pi*k/n.
func Ring(center geom.Point, radius float64, n int) []geom.Point {
	points := make([]geom.Point, n)
	for k := range points {
		theta := 2 * math.Pi * float64(k) / float64(n)
		points[k] = geom.Point{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
		}
	}
	return points
}

// Rings returns the boundary ring followed by one ring per layer. Every ring
// shares the same angular positions.
func Rings(g domain.Geometry, layers Layers) ([][]geom.Point, error) {
	if err := layers.validate(g.Radius()); err != nil {
		return nil, err
	}
	rings := make([][]geom.Point, 0, layers.Count+1)
	for i := 0; i <= layers.Count; i++ {
		rings = append(rings, Ring(g.Center(), layers.Radius(g.Radius(), i), g.BoundaryPoints()))
	}
	return rings, nil
}

// Generate flattens Rings into a single sequence, ring after ring.
func Generate(g domain.Geometry, layers Layers) ([]geom.Point, error) {
	rings, err := Rings(g, layers)
	if err != nil {
		return nil, err
	}
	points := make([]geom.Point, 0, len(rings)*g.BoundaryPoints())
	for _, ring := range rings {
		points = append(points, ring...)
	}
	return points, nil
}
