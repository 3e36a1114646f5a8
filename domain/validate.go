package domain

import (
	"math"

	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/triangulation"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Validate checks the whole config and reports every problem at once as a
// single ConfigurationError.
func (c Config) Validate() error {
	errs := c.validateGeometry()
	g := c.LayerGrowth
	if c.NumLayers < 0 {
		errs = multierr.Append(errs, errors.Errorf("numLayers must not be negative, got %d", c.NumLayers))
	}
	switch g.Mode {
	case GrowthLinear:
		if c.NumLayers > 0 && g.Thickness <= 0 {
			errs = multierr.Append(errs, errors.Errorf("layerGrowth.thickness must be positive, got %g", g.Thickness))
		}
	case GrowthGeometric:
		if c.NumLayers > 0 && g.FirstThickness <= 0 {
			errs = multierr.Append(errs, errors.Errorf("layerGrowth.firstThickness must be positive, got %g", g.FirstThickness))
		}
		if c.NumLayers > 0 && g.GrowthFactor <= 0 {
			errs = multierr.Append(errs, errors.Errorf("layerGrowth.growthFactor must be positive, got %g", g.GrowthFactor))
		}
	default:
		errs = multierr.Append(errs, errors.Errorf("layerGrowth.mode must be %q or %q, got %q", GrowthLinear, GrowthGeometric, g.Mode))
	}
	if g.Direction != DirectionOutward && g.Direction != DirectionInward {
		errs = multierr.Append(errs, errors.Errorf("layerGrowth.direction must be %q or %q, got %q", DirectionOutward, DirectionInward, g.Direction))
	}
	if c.MinSkew < 0 || c.MinSkew > 1 {
		errs = multierr.Append(errs, errors.Errorf("minSkew must be within [0, 1], got %g", c.MinSkew))
	}
	if c.MinAngleDeg < 0 || c.MinAngleDeg > 60 {
		errs = multierr.Append(errs, errors.Errorf("minAngleDeg must be within [0, 60], got %g", c.MinAngleDeg))
	}
	if c.MaxRefineIterations < 0 {
		errs = multierr.Append(errs, errors.Errorf("maxRefineIterations must not be negative, got %d", c.MaxRefineIterations))
	}
	errs = multierr.Append(errs, c.Triangulation.validate())
	return geom.NewConfigurationError(errs)
}

// MinFeature is the smallest spacing accepted between generated points, the
// ring chord, the lattice step and the layer thickness. Point comparisons use
// the absolute geom.Tolerance, so features below this would merge distinct
// points.
const MinFeature = 1e3 * geom.Tolerance

// HoleCircumradius is the radius of the polygon that closes the dead zone in
// constrained mode: an n-gon circumscribed about the circle of radius r.
func HoleCircumradius(r float64, n int) float64 {
	return r / math.Cos(math.Pi/float64(n))
}

func (t TriangulationConfig) validate() error {
	var errs error
	if t.Mode != ModeDelaunay && t.Mode != ModeConstrained {
		errs = multierr.Append(errs, errors.Errorf("triangulation.mode must be %q or %q, got %q", ModeDelaunay, ModeConstrained, t.Mode))
	}
	if t.MinAngle < 0 || t.MinAngle > triangulation.MaxMinAngle {
		errs = multierr.Append(errs, errors.Errorf("triangulation.minAngle must be within [0, %g], got %g", triangulation.MaxMinAngle, t.MinAngle))
	}
	if t.MaxArea < 0 {
		errs = multierr.Append(errs, errors.Errorf("triangulation.maxArea must not be negative, got %g", t.MaxArea))
	}
	if t.MaxSteiner < 0 {
		errs = multierr.Append(errs, errors.Errorf("triangulation.maxSteiner must not be negative, got %d", t.MaxSteiner))
	}
	return errs
}

func (c Config) validateGeometry() error {
	var errs error
	if c.Lx <= 0 || c.Ly <= 0 {
		errs = multierr.Append(errs, errors.Errorf("domain dimensions must be positive, got %g x %g", c.Lx, c.Ly))
	}
	if c.CircleRadius <= 0 {
		errs = multierr.Append(errs, errors.Errorf("circleRadius must be positive, got %g", c.CircleRadius))
	} else if c.CircleCenterX-c.CircleRadius <= 0 || c.CircleCenterX+c.CircleRadius >= c.Lx ||
		c.CircleCenterY-c.CircleRadius <= 0 || c.CircleCenterY+c.CircleRadius >= c.Ly {
		errs = multierr.Append(errs, errors.Errorf("circle at (%g, %g) with radius %g is not strictly inside the %g x %g domain",
			c.CircleCenterX, c.CircleCenterY, c.CircleRadius, c.Lx, c.Ly))
	}
	if c.NumBoundaryPoints < 3 {
		errs = multierr.Append(errs, errors.Errorf("numBoundaryPoints must be at least 3, got %d", c.NumBoundaryPoints))
	}
	if c.LatticeResolutionX < 2 || c.LatticeResolutionY < 2 {
		errs = multierr.Append(errs, errors.Errorf("lattice resolution must be at least 2 x 2, got %d x %d", c.LatticeResolutionX, c.LatticeResolutionY))
	}
	if errs != nil {
		return errs
	}

	if c.Triangulation.Mode == ModeConstrained {
		hole := HoleCircumradius(c.CircleRadius, c.NumBoundaryPoints)
		if c.CircleCenterX-hole <= 0 || c.CircleCenterX+hole >= c.Lx ||
			c.CircleCenterY-hole <= 0 || c.CircleCenterY+hole >= c.Ly {
			errs = multierr.Append(errs, errors.Errorf("dead zone polygon of radius %g (%d sides around radius %g) is not strictly inside the %g x %g domain",
				hole, c.NumBoundaryPoints, c.CircleRadius, c.Lx, c.Ly))
		}
	}
	return multierr.Append(errs, c.validateFeatures())
}

type feature struct {
	name string
	size float64
}

// validateFeatures rejects geometry too fine for the point tolerance.
func (c Config) validateFeatures() error {
	features := []feature{
		{"lattice step x", c.Lx / float64(c.LatticeResolutionX-1)},
		{"lattice step y", c.Ly / float64(c.LatticeResolutionY-1)},
		{"boundary point spacing", 2 * c.CircleRadius * math.Sin(math.Pi/float64(c.NumBoundaryPoints))},
	}
	if c.NumLayers > 0 {
		switch c.LayerGrowth.Mode {
		case GrowthLinear:
			features = append(features, feature{"layerGrowth.thickness", c.LayerGrowth.Thickness})
		case GrowthGeometric:
			features = append(features, feature{"layerGrowth.firstThickness", c.LayerGrowth.FirstThickness})
		}
	}
	var errs error
	for _, f := range features {
		// Non-positive sizes are reported elsewhere.
		if f.size > 0 && f.size < MinFeature {
			errs = multierr.Append(errs, errors.Errorf("%s %g is below the smallest feature size %g; coordinates are compared with an absolute tolerance, rescale the geometry",
				f.name, f.size, MinFeature))
		}
	}
	return errs
}
