// Package frontmesh builds unstructured triangle meshes of a rectangle with a
// circular dead zone. Rings of points are advanced from the circle, merged with
// a background lattice, triangulated, scored and then refined by inserting the
// centroids of poorly shaped triangles.
//
// The packages under this module can be used on their own. Build wires them
// together the way the frontmesh command does.
package frontmesh

import (
	"github.com/osuushi/frontmesh/dbg"
	"github.com/osuushi/frontmesh/domain"
	"github.com/osuushi/frontmesh/front"
	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
	"github.com/osuushi/frontmesh/pointset"
	"github.com/osuushi/frontmesh/quality"
	"github.com/osuushi/frontmesh/refine"
	"github.com/osuushi/frontmesh/triangulation"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Point = geom.Point
type Mesh = mesh.Mesh
type Triangle = mesh.Triangle
type Segment = mesh.Segment
type Record = quality.Record
type Config = domain.Config

// Result holds every stage of a build.
type Result struct {
	Geometry domain.Geometry
	// Front points in generation order, ring by ring.
	Front []Point
	// Points sent to the first triangulation.
	Points []Point
	// Boundary segments, only set in constrained mode.
	Segments []Segment

	Initial        *Mesh
	InitialRecords []Record
	Refinement     *refine.Result
}

// Mesh returns the refined mesh, or the initial one if refinement never ran.
func (r *Result) Mesh() *Mesh {
	if r.Refinement != nil {
		return r.Refinement.Mesh
	}
	return r.Initial
}

// Records returns the quality records matching Mesh.
func (r *Result) Records() []Record {
	if r.Refinement != nil {
		return r.Refinement.Records
	}
	return r.InitialRecords
}

type Option func(*builder)

// WithLogger sets the logger used by every stage.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(b *builder) { b.logger = logger }
}

// WithEngine replaces the built-in triangulation engine.
func WithEngine(engine triangulation.Engine) Option {
	return func(b *builder) { b.engine = engine }
}

type builder struct {
	logger *zap.SugaredLogger
	engine triangulation.Engine
}

// Build runs the whole pipeline for cfg. When refinement fails partway, the
// result keeps the stages that completed and the error is returned with it.
func Build(cfg Config, opts ...Option) (*Result, error) {
	b := &builder{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(b)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := domain.NewGeometry(cfg)
	if err != nil {
		return nil, err
	}
	layers, err := front.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	frontPoints, err := front.Generate(g, layers)
	if err != nil {
		return nil, errors.Wrap(err, "generate front")
	}
	result := &Result{Geometry: g, Front: frontPoints}
	b.logger.Debugw("front generated", "layers", layers.Count, "points", len(frontPoints))

	req, err := request(cfg, g, layers, frontPoints)
	if err != nil {
		return nil, err
	}
	result.Points = req.Points
	result.Segments = req.Segments

	gateway := triangulation.New(b.engine, b.logger)
	initial, err := gateway.Triangulate(req)
	if err != nil {
		return nil, errors.Wrap(err, "initial mesh")
	}
	result.Initial = initial
	result.InitialRecords = quality.Evaluate(initial)
	b.logger.Infow("initial mesh",
		"mesh", dbg.Name(initial),
		"vertices", initial.VertexCount(),
		"triangles", initial.TriangleCount())

	refiner := &refine.Refiner{
		Gateway: gateway,
		Thresholds: refine.Thresholds{
			MinSkew:     cfg.MinSkew,
			MinAngleDeg: cfg.MinAngleDeg,
		},
		MaxIterations: cfg.MaxRefineIterations,
		Logger:        b.logger,
	}
	if req.Options.Mode == triangulation.Constrained {
		refiner.Constraint = &refine.Constraint{Segments: req.Segments, Options: req.Options}
	}
	refinement, err := refiner.Refine(initial, result.InitialRecords)
	result.Refinement = refinement
	if err != nil {
		return result, err
	}
	return result, nil
}

func request(cfg Config, g domain.Geometry, layers front.Layers, frontPoints []Point) (triangulation.Request, error) {
	opts := triangulation.Options{
		MinAngle:   cfg.Triangulation.MinAngle,
		MaxArea:    cfg.Triangulation.MaxArea,
		MaxSteiner: cfg.Triangulation.MaxSteiner,
	}
	if cfg.Triangulation.Mode != domain.ModeConstrained {
		points := pointset.Assemble(g, frontPoints, pointset.Options{
			FilterExclusion: cfg.FilterExclusion,
			ClipToDomain:    true,
		})
		return triangulation.Request{Points: points, Options: opts}, nil
	}

	opts.Mode = triangulation.Constrained
	input, err := pointset.Boundary(g, layers, 0)
	if err != nil {
		return triangulation.Request{}, errors.Wrap(err, "constrained input")
	}
	return triangulation.Request{Points: input.Points, Segments: input.Segments, Options: opts}, nil
}
