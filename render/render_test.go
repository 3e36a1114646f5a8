package render

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices:  []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 1}},
		Triangles: []mesh.Triangle{{0, 1, 2}, {0, 2, 3}},
	}
}

func TestColormap(t *testing.T) {
	assert.Equal(t, poor.Hex(), Colormap(0).Hex())
	assert.Equal(t, good.Hex(), Colormap(1).Hex())
	assert.Equal(t, Colormap(0).Hex(), Colormap(-3).Hex(), "clamped")
	mid := Colormap(0.5)
	assert.NotEqual(t, poor.Hex(), mid.Hex())
	assert.True(t, mid.IsValid())
}

func TestFrame(t *testing.T) {
	f := newFrame(square(), Options{Width: 420, Padding: 10})
	assert.Equal(t, 420, f.width)
	assert.Equal(t, 220, f.height)
	x, y := f.project(geom.Point{X: 0, Y: 0})
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 210, y, 1e-9, "y points up")
	x, y = f.project(geom.Point{X: 2, Y: 1})
	assert.InDelta(t, 410, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)
}

func TestColorsNormalizeField(t *testing.T) {
	m := square()
	fills := colors(m, Options{Field: []float64{10, 50}})
	require.Len(t, fills, 2)
	assert.Equal(t, Colormap(0).Hex(), fills[0].Hex())
	assert.Equal(t, Colormap(1).Hex(), fills[1].Hex())

	fills = colors(m, Options{Field: []float64{30, 60}, FieldMin: 0, FieldMax: 60})
	assert.Equal(t, Colormap(0.5).Hex(), fills[0].Hex())

	assert.Nil(t, colors(m, Options{}))
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{
		Width:  200,
		Field:  []float64{0, 1},
		Circle: &Circle{Center: geom.Point{X: 1, Y: 0.5}, Radius: 0.1},
	}
	require.NoError(t, PNG(&buf, square(), opts))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())

	// Well inside the lower right triangle, which has the poor color.
	r, g, _, _ := img.At(170, 90).RGBA()
	assert.Greater(t, r, g)

	path := filepath.Join(t.TempDir(), "mesh.png")
	assert.NoError(t, SavePNG(path, square(), opts))
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	SVG(&buf, square(), Options{
		Width:      200,
		Field:      []float64{0.2, 0.9},
		Circle:     &Circle{Center: geom.Point{X: 1, Y: 0.5}, Radius: 0.1},
		ShowPoints: true,
	})
	root, err := svgparser.Parse(&buf, false)
	require.NoError(t, err)
	polygons := root.FindAll("polygon")
	require.Len(t, polygons, 2)
	assert.Contains(t, polygons[0].Attributes["style"], Colormap(0).Hex())
	assert.Len(t, root.FindAll("circle"), 4+1, "points plus dead zone")
}
