package mesh

import (
	"testing"

	"github.com/osuushi/frontmesh/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshAccessors(t *testing.T) {
	m := &Mesh{
		Vertices: []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}, {X: 3, Y: 3}},
		Triangles: []Triangle{
			{0, 1, 2},
			{1, 3, 2},
		},
	}
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.False(t, m.IsEmpty())

	a, b, c := m.Corners(1)
	assert.Equal(t, geom.Point{X: 3, Y: 0}, a)
	assert.Equal(t, geom.Point{X: 3, Y: 3}, b)
	assert.Equal(t, geom.Point{X: 0, Y: 3}, c)

	centroid := m.Centroid(0)
	assert.InDelta(t, 1, centroid.X, geom.Tolerance)
	assert.InDelta(t, 1, centroid.Y, geom.Tolerance)

	points := m.Points()
	points[0] = geom.Point{X: 9, Y: 9}
	assert.Equal(t, geom.Point{X: 0, Y: 0}, m.Vertices[0], "Points must copy")

	assert.True(t, (&Mesh{}).IsEmpty())
}

func TestLoops(t *testing.T) {
	t.Run("two loops in scrambled order", func(t *testing.T) {
		segments := []Segment{
			{0, 1}, {4, 5}, {2, 1}, {3, 0}, {5, 6}, {2, 3}, {6, 4},
		}
		loops, err := Loops(segments)
		require.NoError(t, err)
		require.Len(t, loops, 2)
		assert.ElementsMatch(t, []int{0, 1, 2, 3}, loops[0])
		assert.ElementsMatch(t, []int{4, 5, 6}, loops[1])
	})

	t.Run("open chain", func(t *testing.T) {
		_, err := Loops([]Segment{{0, 1}, {1, 2}})
		assert.True(t, geom.IsGeometryError(err))
	})

	t.Run("branching vertex", func(t *testing.T) {
		_, err := Loops([]Segment{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {3, 4}, {4, 0}})
		assert.True(t, geom.IsGeometryError(err))
	})

	t.Run("self loop", func(t *testing.T) {
		_, err := Loops([]Segment{{2, 2}})
		assert.True(t, geom.IsGeometryError(err))
	})

	t.Run("two point loop", func(t *testing.T) {
		_, err := Loops([]Segment{{0, 1}, {1, 0}})
		assert.True(t, geom.IsGeometryError(err))
	})
}

func TestRegion(t *testing.T) {
	points := []geom.Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
		{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3},
	}
	region := Region(points, [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}})
	assert.True(t, region.Contains(geom.Point{X: 0.5, Y: 2}))
	assert.False(t, region.Contains(geom.Point{X: 2, Y: 2}))
}
