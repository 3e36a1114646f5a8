package triangulation

import (
	"math"
	"testing"

	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
	"github.com/osuushi/frontmesh/quality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare() []geom.Point {
	return []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

func squareLoop() []mesh.Segment {
	return []mesh.Segment{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
}

type engineFunc func(Request) (*mesh.Mesh, error)

func (f engineFunc) Triangulate(req Request) (*mesh.Mesh, error) {
	return f(req)
}

func TestGatewayDelaunay(t *testing.T) {
	g := New(nil, nil)
	m, err := g.Points(unitSquare())
	require.NoError(t, err)
	assert.Len(t, m.Triangles, 2)
	assert.Equal(t, unitSquare(), m.Vertices)
}

func TestGatewayConstrained(t *testing.T) {
	g := New(nil, nil)
	m, err := g.Triangulate(Request{
		Points:   unitSquare(),
		Segments: squareLoop(),
		Options:  Options{Mode: Constrained, MinAngle: 20, MaxArea: 0.05},
	})
	require.NoError(t, err)
	assert.Equal(t, unitSquare(), m.Vertices[:4])
	assert.Greater(t, m.VertexCount(), 4)
	var area float64
	for i := range m.Triangles {
		a, b, c := m.Corners(i)
		area += geom.Area(a, b, c)
		assert.LessOrEqual(t, geom.Area(a, b, c), 0.05+1e-12)
		assert.GreaterOrEqual(t, quality.Orthogonality(a, b, c), 20-1e-6, "triangle %d", i)
	}
	assert.InDelta(t, 1, area, 1e-9)
}

func TestDegenerateInput(t *testing.T) {
	g := New(nil, nil)
	for name, points := range map[string][]geom.Point{
		"empty":      nil,
		"two points": {{X: 0, Y: 0}, {X: 1, Y: 1}},
		"coincident": {{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}},
		"collinear":  {{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}},
		"not finite": {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: math.Inf(1)}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := g.Points(points)
			assert.True(t, geom.IsDegenerateInputError(err), "%v", err)
		})
	}
}

func TestMalformedSegments(t *testing.T) {
	points := append(unitSquare(), geom.Point{X: 0.5, Y: 0.5}, geom.Point{X: 2, Y: 0.5}, geom.Point{X: 1, Y: 0})
	for name, segments := range map[string][]mesh.Segment{
		"none":              nil,
		"out of range":      {{0, 1}, {1, 2}, {2, 9}, {9, 0}},
		"degenerate":        {{0, 0}},
		"zero length":       {{1, 6}, {6, 2}, {2, 1}},
		"duplicate":         {{0, 1}, {1, 0}},
		"open":              {{0, 1}, {1, 2}, {2, 3}},
		"branching":         {{0, 1}, {1, 2}, {2, 0}, {0, 3}, {3, 4}, {4, 0}},
		"self intersecting": {{0, 2}, {2, 1}, {1, 3}, {3, 0}},
		"crossing loops":    {{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 2}, {2, 4}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New(nil, nil).Triangulate(Request{
				Points:   points,
				Segments: segments,
				Options:  Options{Mode: Constrained},
			})
			assert.True(t, geom.IsGeometryError(err), "%v", err)
		})
	}
}

func TestValidateSegmentsAcceptsHoles(t *testing.T) {
	points := append(unitSquare(),
		geom.Point{X: 0.4, Y: 0.4}, geom.Point{X: 0.6, Y: 0.4}, geom.Point{X: 0.6, Y: 0.6}, geom.Point{X: 0.4, Y: 0.6})
	segments := append(squareLoop(), mesh.Segment{4, 5}, mesh.Segment{5, 6}, mesh.Segment{6, 7}, mesh.Segment{7, 4})
	assert.NoError(t, ValidateSegments(points, segments))
}

func TestInvalidOptions(t *testing.T) {
	for name, opts := range map[string]Options{
		"angle too large":  {MinAngle: 45},
		"negative angle":   {MinAngle: -1},
		"negative area":    {MaxArea: -0.1},
		"negative steiner": {MaxSteiner: -1},
		"unknown mode":     {Mode: Mode(9)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New(nil, nil).Triangulate(Request{Points: unitSquare(), Options: opts})
			assert.True(t, geom.IsConfigurationError(err), "%v", err)
		})
	}
}

func TestEngineErrorsAreWrapped(t *testing.T) {
	engine := engineFunc(func(Request) (*mesh.Mesh, error) {
		return nil, geom.GeometryErrorf("boom")
	})
	_, err := New(engine, nil).Points(unitSquare())
	require.Error(t, err)
	assert.True(t, geom.IsGeometryError(err))
	assert.Contains(t, err.Error(), "delaunay triangulation")
}

func TestNormalizeRejectsBadEngineOutput(t *testing.T) {
	for name, result := range map[string]*mesh.Mesh{
		"nil":          nil,
		"no triangles": {Vertices: unitSquare()},
		"lost points":  {Vertices: unitSquare()[:3], Triangles: []mesh.Triangle{{0, 1, 2}}},
		"moved points": {Vertices: []geom.Point{{X: 9, Y: 9}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}, Triangles: []mesh.Triangle{{0, 1, 2}}},
		"bad index":    {Vertices: unitSquare(), Triangles: []mesh.Triangle{{0, 1, 7}}},
	} {
		t.Run(name, func(t *testing.T) {
			engine := engineFunc(func(Request) (*mesh.Mesh, error) { return result, nil })
			_, err := New(engine, nil).Points(unitSquare())
			assert.Error(t, err)
		})
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "delaunay", Delaunay.String())
	assert.Equal(t, "constrained", Constrained.String())
	assert.Equal(t, "unknown", Mode(5).String())
}
