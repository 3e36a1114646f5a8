package front

import (
	"math"

	"github.com/osuushi/frontmesh/geom"
)

type GrowthMode int

const (
	// Ring i sits at base + i*Thickness.
	LinearGrowth GrowthMode = iota
	// Ring i sits at base + FirstThickness*Factor^(i-1).
	GeometricGrowth
)

// Growth is the layer thickness policy.
type Growth struct {
	Mode           GrowthMode
	Thickness      float64
	FirstThickness float64
	Factor         float64
}

func Linear(thickness float64) Growth {
	return Growth{Mode: LinearGrowth, Thickness: thickness}
}

func Geometric(firstThickness, factor float64) Growth {
	return Growth{Mode: GeometricGrowth, FirstThickness: firstThickness, Factor: factor}
}

// Offset is the distance of ring i (i >= 1) from the base circle.
func (g Growth) Offset(i int) float64 {
	if g.Mode == GeometricGrowth {
		return g.FirstThickness * math.Pow(g.Factor, float64(i-1))
	}
	return float64(i) * g.Thickness
}

func (g Growth) validate() error {
	switch g.Mode {
	case LinearGrowth:
		if g.Thickness <= 0 {
			return geom.ConfigurationErrorf("layer thickness must be positive, got %g", g.Thickness)
		}
	case GeometricGrowth:
		if g.FirstThickness <= 0 {
			return geom.ConfigurationErrorf("first layer thickness must be positive, got %g", g.FirstThickness)
		}
		if g.Factor <= 0 {
			return geom.ConfigurationErrorf("growth factor must be positive, got %g", g.Factor)
		}
	default:
		return geom.ConfigurationErrorf("unknown growth mode %d", g.Mode)
	}
	return nil
}
