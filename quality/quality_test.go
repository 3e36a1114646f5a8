package quality

import (
	"math"
	"math/rand"
	"testing"

	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
	"github.com/stretchr/testify/assert"
)

func TestEquilateral(t *testing.T) {
	a := geom.Point{X: 0, Y: 0}
	b := geom.Point{X: 1, Y: 0}
	c := geom.Point{X: 0.5, Y: math.Sqrt(3) / 2}
	assert.InDelta(t, 1.0, Skewness(a, b, c), 1e-9)
	assert.InDelta(t, 60.0, Orthogonality(a, b, c), 1e-9)
	// Winding does not matter.
	assert.InDelta(t, 60.0, Orthogonality(a, c, b), 1e-9)
}

func TestRightIsoceles(t *testing.T) {
	a := geom.Point{X: 0, Y: 0}
	b := geom.Point{X: 1, Y: 0}
	c := geom.Point{X: 0, Y: 1}
	assert.InDelta(t, 1/math.Sqrt2, Skewness(a, b, c), 1e-9)
	assert.InDelta(t, 45.0, Orthogonality(a, b, c), 1e-9)
}

func TestSliver(t *testing.T) {
	a := geom.Point{X: 0, Y: 0}
	b := geom.Point{X: 1, Y: 0}
	c := geom.Point{X: 1, Y: 0.05}
	assert.InDelta(t, 0.05/math.Hypot(1, 0.05), Skewness(a, b, c), 1e-9)
	assert.InDelta(t, math.Atan(0.05)*180/math.Pi, Orthogonality(a, b, c), 1e-9)
}

func TestDegenerateTriangles(t *testing.T) {
	p := geom.Point{X: 1, Y: 1}
	assert.Zero(t, Skewness(p, p, p))
	assert.Zero(t, Orthogonality(p, p, p))

	q := geom.Point{X: 2, Y: 1}
	assert.Zero(t, Skewness(p, p, q))
	assert.False(t, math.IsNaN(Orthogonality(p, p, q)))

	collinear := Orthogonality(geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 1}, geom.Point{X: 3, Y: 3})
	assert.False(t, math.IsNaN(collinear))
	assert.InDelta(t, 0, collinear, 1e-5)
}

func TestMetricRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	random := func() geom.Point { return geom.Point{X: rng.Float64(), Y: rng.Float64()} }
	for i := 0; i < 1000; i++ {
		a, b, c := random(), random(), random()
		skew := Skewness(a, b, c)
		ortho := Orthogonality(a, b, c)
		assert.Greater(t, skew, 0.0)
		assert.LessOrEqual(t, skew, 1.0)
		assert.Greater(t, ortho, 0.0)
		assert.LessOrEqual(t, ortho, 60.0+1e-9, "the smallest angle never exceeds 60")
	}
}

func TestEvaluate(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []geom.Point{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: math.Sqrt(3) / 2}, {X: 0, Y: 1},
		},
		Triangles: []mesh.Triangle{{0, 1, 2}, {0, 1, 3}},
	}
	records := Evaluate(m)
	assert.Len(t, records, 2)
	assert.InDelta(t, 60, records[0].Orthogonality, 1e-9)
	assert.InDelta(t, 45, records[1].Orthogonality, 1e-9)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	summary := Summarize([]Record{
		{Skewness: 1, Orthogonality: 60},
		{Skewness: 0.5, Orthogonality: 30},
		{Skewness: 0.6, Orthogonality: 45},
	})
	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 0.5, summary.Skewness.Min, 1e-12)
	assert.InDelta(t, 0.7, summary.Skewness.Mean, 1e-12)
	assert.InDelta(t, 1, summary.Skewness.Max, 1e-12)
	assert.InDelta(t, 30, summary.Orthogonality.Min, 1e-12)
	assert.InDelta(t, 45, summary.Orthogonality.Mean, 1e-12)
	assert.InDelta(t, 60, summary.Orthogonality.Max, 1e-12)
}

func TestField(t *testing.T) {
	records := []Record{{Skewness: 0.2, Orthogonality: 10}, {Skewness: 0.9, Orthogonality: 55}}
	assert.Equal(t, []float64{0.2, 0.9}, Field(records, SkewnessOf))
	assert.Equal(t, []float64{10, 55}, Field(records, OrthogonalityOf))
}
