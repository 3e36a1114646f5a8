package refine

import (
	"math"
	"testing"

	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
	"github.com/osuushi/frontmesh/quality"
	"github.com/osuushi/frontmesh/triangulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slivered is an equilateral triangle with a sliver of skewness 0.05 hanging
// off its base.
func slivered() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []geom.Point{
			{X: 0, Y: 0},
			{X: 1, Y: 0},
			{X: 0.5, Y: math.Sqrt(3) / 2},
			{X: 1, Y: -0.05},
		},
		Triangles: []mesh.Triangle{{0, 1, 2}, {0, 3, 1}},
	}
}

type countingEngine struct {
	calls int
	err   error
}

func (e *countingEngine) Triangulate(req triangulation.Request) (*mesh.Mesh, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return triangulation.NativeEngine{}.Triangulate(req)
}

func TestSelect(t *testing.T) {
	records := []quality.Record{
		{Skewness: 0.9, Orthogonality: 55},
		{Skewness: 0.2, Orthogonality: 50},
		{Skewness: 0.8, Orthogonality: 20},
		{Skewness: 0.3, Orthogonality: 40},
	}
	assert.Equal(t, []int{1, 2}, Select(records, Thresholds{MinSkew: 0.3, MinAngleDeg: 40}))
	assert.Empty(t, Select(records, Thresholds{}))
}

func TestCentroids(t *testing.T) {
	m := slivered()
	centroids := Centroids(m, []int{1})
	require.Len(t, centroids, 1)
	assert.InDelta(t, 2.0/3, centroids[0].X, 1e-12)
	assert.InDelta(t, -0.05/3, centroids[0].Y, 1e-12)
}

func TestRefineSingleSliver(t *testing.T) {
	m := slivered()
	records := quality.Evaluate(m)
	require.InDelta(t, 0.05, records[1].Skewness, 1e-3)

	refiner := &Refiner{
		Gateway:       triangulation.New(nil, nil),
		Thresholds:    Thresholds{MinSkew: 0.3, MinAngleDeg: 40},
		MaxIterations: 1,
	}
	result, err := refiner.Refine(m, records)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, 1, result.Inserted)
	require.Len(t, result.Mesh.Vertices, len(m.Vertices)+1)
	assert.Equal(t, m.Vertices, result.Mesh.Vertices[:len(m.Vertices)], "original points survive in place")
	added := result.Mesh.Vertices[len(m.Vertices)]
	assert.InDelta(t, 2.0/3, added.X, 1e-12)
	assert.InDelta(t, -0.05/3, added.Y, 1e-12)
	assert.GreaterOrEqual(t, result.Mesh.TriangleCount(), m.TriangleCount())
	assert.Len(t, result.Records, result.Mesh.TriangleCount())

	assert.Len(t, m.Vertices, 4, "input mesh untouched")
}

func TestRefineNoop(t *testing.T) {
	m := &mesh.Mesh{
		Vertices:  []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: math.Sqrt(3) / 2}},
		Triangles: []mesh.Triangle{{0, 1, 2}},
	}
	records := quality.Evaluate(m)
	engine := &countingEngine{}
	refiner := &Refiner{
		Gateway:       triangulation.New(engine, nil),
		Thresholds:    Thresholds{MinSkew: 0.3, MinAngleDeg: 40},
		MaxIterations: 5,
	}
	result, err := refiner.Refine(m, records)
	require.NoError(t, err)
	assert.Same(t, m, result.Mesh)
	assert.Equal(t, records, result.Records)
	assert.True(t, result.Converged)
	assert.Zero(t, result.Iterations)
	assert.Zero(t, engine.calls)
}

func TestRefineDisabled(t *testing.T) {
	m := slivered()
	engine := &countingEngine{}
	refiner := &Refiner{
		Gateway:    triangulation.New(engine, nil),
		Thresholds: Thresholds{MinSkew: 0.3, MinAngleDeg: 40},
	}
	result, err := refiner.Refine(m, quality.Evaluate(m))
	require.NoError(t, err)
	assert.Same(t, m, result.Mesh)
	assert.False(t, result.Converged)
	assert.Zero(t, engine.calls)
}

func TestRefineIterates(t *testing.T) {
	m, err := triangulation.New(nil, nil).Points([]geom.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 1}, {X: 0, Y: 1}, {X: 2, Y: 0.05},
	})
	require.NoError(t, err)
	records := quality.Evaluate(m)

	engine := &countingEngine{}
	refiner := &Refiner{
		Gateway:       triangulation.New(engine, nil),
		Thresholds:    Thresholds{MinSkew: 0.3, MinAngleDeg: 20},
		MaxIterations: 4,
	}
	result, err := refiner.Refine(m, records)
	require.NoError(t, err)
	assert.LessOrEqual(t, result.Iterations, 4)
	assert.Equal(t, result.Iterations, engine.calls)
	assert.Greater(t, result.Iterations, 0)

	// Each pass keeps every earlier point.
	for _, p := range m.Vertices {
		assert.Contains(t, result.Mesh.Vertices, p)
	}
	assert.Equal(t, len(m.Vertices)+result.Inserted, len(result.Mesh.Vertices))
	if !result.Converged {
		assert.Equal(t, 4, result.Iterations)
	} else {
		assert.Empty(t, Select(result.Records, refiner.Thresholds))
	}
}

func TestRefineFailureKeepsLastMesh(t *testing.T) {
	m := slivered()
	records := quality.Evaluate(m)
	engine := &countingEngine{err: geom.DegenerateInputErrorf("engine down")}
	refiner := &Refiner{
		Gateway:       triangulation.New(engine, nil),
		Thresholds:    Thresholds{MinSkew: 0.3, MinAngleDeg: 40},
		MaxIterations: 3,
	}
	result, err := refiner.Refine(m, records)
	require.Error(t, err)
	assert.True(t, geom.IsDegenerateInputError(err))
	assert.Contains(t, err.Error(), "refinement pass 1")
	require.NotNil(t, result)
	assert.Same(t, m, result.Mesh)
	assert.Equal(t, records, result.Records)
}

func TestRefineConstrained(t *testing.T) {
	points := []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 1}}
	segments := []mesh.Segment{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	gateway := triangulation.New(nil, nil)
	m, err := gateway.Triangulate(triangulation.Request{
		Points:   points,
		Segments: segments,
		Options:  triangulation.Options{Mode: triangulation.Constrained},
	})
	require.NoError(t, err)

	refiner := &Refiner{
		Gateway:       gateway,
		Thresholds:    Thresholds{MinSkew: 0.9, MinAngleDeg: 50},
		MaxIterations: 2,
		Constraint: &Constraint{
			Segments: segments,
			Options:  triangulation.Options{Mode: triangulation.Constrained},
		},
	}
	result, err := refiner.Refine(m, quality.Evaluate(m))
	require.NoError(t, err)
	assert.Greater(t, result.Iterations, 0)
	var area float64
	for i := range result.Mesh.Triangles {
		area += geom.Area(result.Mesh.Corners(i))
	}
	assert.InDelta(t, 2, area, 1e-9)
}
