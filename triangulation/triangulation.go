// Package triangulation is the gateway between the mesh pipeline and a
// triangulation engine. It validates requests, hands them to the engine and
// checks that what comes back is a well formed Mesh.
package triangulation

import (
	"math"

	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/internal/delaunay"
	"github.com/osuushi/frontmesh/mesh"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Mode int

const (
	// Delaunay triangulates the convex hull of the points with no quality or
	// boundary guarantees.
	Delaunay Mode = iota
	// Constrained conforms to the request's segments and refines towards the
	// quality directive, adding Steiner points as needed.
	Constrained
)

func (m Mode) String() string {
	switch m {
	case Delaunay:
		return "delaunay"
	case Constrained:
		return "constrained"
	}
	return "unknown"
}

// MaxMinAngle is the largest minimum-angle directive accepted, in degrees.
const MaxMinAngle = 34.0

// Options is the quality directive. MinAngle is in degrees; zero MinAngle or
// MaxArea leaves that criterion out. MaxSteiner caps the points the engine may
// add, zero meaning the engine default.
type Options struct {
	Mode       Mode
	MinAngle   float64
	MaxArea    float64
	MaxSteiner int
}

// Request is one triangulation call. Segments index into Points and are only
// used in Constrained mode.
type Request struct {
	Points   []geom.Point
	Segments []mesh.Segment
	Options  Options
}

// Engine computes triangulations. Implementations receive requests that have
// already been validated.
type Engine interface {
	Triangulate(req Request) (*mesh.Mesh, error)
}

// NativeEngine is the built-in engine.
type NativeEngine struct{}

func (NativeEngine) Triangulate(req Request) (*mesh.Mesh, error) {
	if req.Options.Mode == Constrained {
		return delaunay.Conform(req.Points, req.Segments, delaunay.Options{
			MinAngle:   req.Options.MinAngle,
			MaxArea:    req.Options.MaxArea,
			MaxSteiner: req.Options.MaxSteiner,
		})
	}
	return delaunay.Triangulate(req.Points)
}

// Gateway validates and forwards requests to an Engine.
type Gateway struct {
	engine Engine
	logger *zap.SugaredLogger
}

// New returns a gateway over engine, or over NativeEngine when engine is nil.
// A nil logger discards output.
func New(engine Engine, logger *zap.SugaredLogger) *Gateway {
	if engine == nil {
		engine = NativeEngine{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Gateway{engine: engine, logger: logger}
}

// Triangulate validates req, runs the engine and normalizes its result. The
// returned vertex array starts with req.Points in order and may continue with
// Steiner points.
func (g *Gateway) Triangulate(req Request) (*mesh.Mesh, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	g.logger.Debugw("triangulating", "mode", req.Options.Mode, "points", len(req.Points), "segments", len(req.Segments))
	m, err := g.engine.Triangulate(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s triangulation", req.Options.Mode)
	}
	if err := normalize(req, m); err != nil {
		return nil, err
	}
	g.logger.Debugw("triangulated", "mode", req.Options.Mode,
		"vertices", m.VertexCount(), "steiner", m.VertexCount()-len(req.Points), "triangles", m.TriangleCount())
	return m, nil
}

// Points triangulates points in Delaunay mode.
func (g *Gateway) Points(points []geom.Point) (*mesh.Mesh, error) {
	return g.Triangulate(Request{Points: points})
}

// normalize checks the engine's answer against the Mesh contract.
func normalize(req Request, m *mesh.Mesh) error {
	if m == nil || m.IsEmpty() {
		return geom.DegenerateInputErrorf("engine produced no triangles from %d points", len(req.Points))
	}
	if len(m.Vertices) < len(req.Points) {
		return errors.Errorf("engine returned %d vertices for %d input points", len(m.Vertices), len(req.Points))
	}
	for i, p := range req.Points {
		if m.Vertices[i] != p {
			return errors.Errorf("engine moved input point %d from %v to %v", i, p, m.Vertices[i])
		}
	}
	for i, tri := range m.Triangles {
		for _, v := range tri {
			if v < 0 || v >= len(m.Vertices) {
				return errors.Errorf("triangle %d references vertex %d of %d", i, v, len(m.Vertices))
			}
		}
	}
	return nil
}

// Validate checks a request before any engine sees it.
func Validate(req Request) error {
	if err := validatePoints(req.Points); err != nil {
		return err
	}
	opts := req.Options
	if opts.MinAngle < 0 || opts.MinAngle > MaxMinAngle || math.IsNaN(opts.MinAngle) {
		return geom.ConfigurationErrorf("minimum angle must be within [0, %g], got %g", MaxMinAngle, opts.MinAngle)
	}
	if opts.MaxArea < 0 || math.IsNaN(opts.MaxArea) {
		return geom.ConfigurationErrorf("maximum area must not be negative, got %g", opts.MaxArea)
	}
	if opts.MaxSteiner < 0 {
		return geom.ConfigurationErrorf("steiner budget must not be negative, got %d", opts.MaxSteiner)
	}
	switch opts.Mode {
	case Delaunay:
		return nil
	case Constrained:
		if len(req.Segments) == 0 {
			return geom.GeometryErrorf("constrained triangulation needs boundary segments")
		}
		return ValidateSegments(req.Points, req.Segments)
	}
	return geom.ConfigurationErrorf("unknown triangulation mode %d", opts.Mode)
}
