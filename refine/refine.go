// Package refine improves a mesh by inserting the centroids of its poorly
// shaped triangles and retriangulating, repeating until every triangle passes
// or the iteration budget runs out.
package refine

import (
	"github.com/osuushi/frontmesh/dbg"
	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
	"github.com/osuushi/frontmesh/quality"
	"github.com/osuushi/frontmesh/triangulation"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Thresholds below which a triangle is refined. MinAngleDeg is compared with
// orthogonality, MinSkew with skewness.
type Thresholds struct {
	MinSkew     float64
	MinAngleDeg float64
}

// Fails reports whether r is below either threshold.
func (t Thresholds) Fails(r quality.Record) bool {
	return r.Skewness < t.MinSkew || r.Orthogonality < t.MinAngleDeg
}

// Select returns the indices of the failing records in ascending order.
func Select(records []quality.Record, t Thresholds) []int {
	var selected []int
	for i, r := range records {
		if t.Fails(r) {
			selected = append(selected, i)
		}
	}
	return selected
}

// Centroids returns the centroid of each selected triangle, in the order given.
func Centroids(m *mesh.Mesh, selected []int) []geom.Point {
	centroids := make([]geom.Point, len(selected))
	for i, ti := range selected {
		centroids[i] = m.Centroid(ti)
	}
	return centroids
}

// Constraint makes every pass issue a constrained request instead of a plain
// Delaunay one. The segments index the leading points of the mesh, which keep
// their positions across passes.
type Constraint struct {
	Segments []mesh.Segment
	Options  triangulation.Options
}

// Refiner runs the select, insert, retriangulate and evaluate cycle.
type Refiner struct {
	Gateway    *triangulation.Gateway
	Thresholds Thresholds
	// MaxIterations caps the number of passes. Zero disables refinement.
	MaxIterations int
	Constraint    *Constraint
	Logger        *zap.SugaredLogger
}

// Result is the outcome of Refine.
type Result struct {
	Mesh    *mesh.Mesh
	Records []quality.Record
	// Passes that retriangulated.
	Iterations int
	// Centroids added over all passes.
	Inserted int
	// Converged is true when no triangle of Mesh fails the thresholds.
	Converged bool
}

// Refine starts from m and its records. A mesh with nothing to refine comes
// back as is, without any triangulation call. If a pass fails, the result
// still carries the last good mesh and its records alongside the error.
func (r *Refiner) Refine(m *mesh.Mesh, records []quality.Record) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	gateway := r.Gateway
	if gateway == nil {
		gateway = triangulation.New(nil, logger)
	}

	result := &Result{Mesh: m, Records: records}
	for {
		selected := Select(result.Records, r.Thresholds)
		if len(selected) == 0 {
			result.Converged = true
			return result, nil
		}
		if result.Iterations >= r.MaxIterations {
			return result, nil
		}

		centroids := Centroids(result.Mesh, selected)
		points := append(result.Mesh.Points(), centroids...)
		req := triangulation.Request{Points: points}
		if r.Constraint != nil {
			req.Segments = r.Constraint.Segments
			req.Options = r.Constraint.Options
		}
		next, err := gateway.Triangulate(req)
		if err != nil {
			return result, errors.Wrapf(err, "refinement pass %d", result.Iterations+1)
		}

		result.Mesh = next
		result.Records = quality.Evaluate(next)
		result.Iterations++
		result.Inserted += len(centroids)
		logger.Infow("refinement pass",
			"pass", result.Iterations,
			"mesh", dbg.Name(next),
			"refined", len(selected),
			"vertices", next.VertexCount(),
			"triangles", next.TriangleCount())
	}
}
