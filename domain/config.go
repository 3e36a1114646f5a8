// Package domain describes the region being meshed: a rectangle with a
// circular dead zone cut out of it, along with the resolutions used to
// discretize both and the thresholds that drive refinement.
//
// Config files are YAML. When no path is given, the loader looks at
// $FRONTMESH_CONFIG and then ./frontmesh.yaml before falling back to
// DefaultConfig.
package domain

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Layer growth policies.
const (
	GrowthLinear    = "linear"
	GrowthGeometric = "geometric"
)

// Directions in which layers advance away from the circle.
const (
	DirectionOutward = "outward"
	DirectionInward  = "inward"
)

// Triangulation modes.
const (
	ModeDelaunay    = "delaunay"
	ModeConstrained = "constrained"
)

// EnvConfigPath names the environment variable consulted by FindConfigPath.
const EnvConfigPath = "FRONTMESH_CONFIG"

// Config is the geometry configuration input. Lengths are absolute and points
// are compared with geom.Tolerance, so generated spacings must stay above
// MinFeature; geometry of order one is the intended scale.
type Config struct {
	Lx                  float64             `yaml:"lx"`
	Ly                  float64             `yaml:"ly"`
	CircleCenterX       float64             `yaml:"circleCenterX"`
	CircleCenterY       float64             `yaml:"circleCenterY"`
	CircleRadius        float64             `yaml:"circleRadius"`
	NumBoundaryPoints   int                 `yaml:"numBoundaryPoints"`
	NumLayers           int                 `yaml:"numLayers"`
	LayerGrowth         LayerGrowth         `yaml:"layerGrowth"`
	LatticeResolutionX  int                 `yaml:"latticeResolutionX"`
	LatticeResolutionY  int                 `yaml:"latticeResolutionY"`
	FilterExclusion     bool                `yaml:"filterExclusion"`
	MinSkew             float64             `yaml:"minSkew"`
	MinAngleDeg         float64             `yaml:"minAngleDeg"`
	MaxRefineIterations int                 `yaml:"maxRefineIterations"`
	Triangulation       TriangulationConfig `yaml:"triangulation"`
}

// LayerGrowth selects how the distance between front layers evolves.
// Thickness applies to the linear policy, FirstThickness and GrowthFactor to
// the geometric one.
type LayerGrowth struct {
	Mode           string  `yaml:"mode"`
	Direction      string  `yaml:"direction"`
	Thickness      float64 `yaml:"thickness"`
	FirstThickness float64 `yaml:"firstThickness"`
	GrowthFactor   float64 `yaml:"growthFactor"`
}

// TriangulationConfig is the request sent to the triangulation engine for the
// initial mesh. MinAngle is in degrees; zero MinAngle and MaxArea disable the
// respective quality directive.
type TriangulationConfig struct {
	Mode       string  `yaml:"mode"`
	MinAngle   float64 `yaml:"minAngle"`
	MaxArea    float64 `yaml:"maxArea"`
	MaxSteiner int     `yaml:"maxSteiner"`
}

// DefaultConfig returns the reference scenario: a 2 x 1 channel with a dead
// zone of radius 0.25 at its center, five linear layers 0.02 apart and a
// 25 x 12 background lattice.
func DefaultConfig() Config {
	return Config{
		Lx:                2.0,
		Ly:                1.0,
		CircleCenterX:     1.0,
		CircleCenterY:     0.5,
		CircleRadius:      0.25,
		NumBoundaryPoints: 25,
		NumLayers:         5,
		LayerGrowth: LayerGrowth{
			Mode:           GrowthLinear,
			Direction:      DirectionOutward,
			Thickness:      0.02,
			FirstThickness: 0.02,
			GrowthFactor:   1.2,
		},
		LatticeResolutionX:  25,
		LatticeResolutionY:  12,
		FilterExclusion:     true,
		MinSkew:             0.3,
		MinAngleDeg:         30,
		MaxRefineIterations: 1,
		Triangulation: TriangulationConfig{
			Mode:       ModeDelaunay,
			MinAngle:   20,
			MaxSteiner: 20000,
		},
	}
}

// FindConfigPath returns the first config file that exists, or "" if none does.
func FindConfigPath() string {
	candidates := []string{os.Getenv(EnvConfigPath), "frontmesh.yaml"}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads a YAML config over the defaults and validates the result. An
// empty path falls back to FindConfigPath, and to the defaults if nothing is
// found.
func Load(path string) (Config, error) {
	if path == "" {
		path = FindConfigPath()
	}
	if path == "" {
		cfg := DefaultConfig()
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Keys that do not belong to Config are
// rejected so that typos do not silently fall back to a default.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty or comment-only document decodes as io.EOF and leaves the
	// defaults in place.
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	return data, errors.Wrap(err, "marshal config")
}
