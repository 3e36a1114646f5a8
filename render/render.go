// Package render draws meshes for inspection: a wireframe, an optional
// per-triangle scalar field mapped to color, the mesh points and an outline of
// the dead zone. PNG output goes through gg, SVG output through svgo.
package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
)

const (
	defaultWidth   = 800
	defaultPadding = 20
)

// Circle is an overlay annotation, typically the dead zone.
type Circle struct {
	Center geom.Point
	Radius float64
}

// Options controls what is drawn. The image height follows from Width and the
// aspect ratio of the mesh bounds.
type Options struct {
	Width   int
	Padding float64
	// Field holds one value per triangle. Values are normalized between
	// FieldMin and FieldMax, or between the field's own extremes when the two
	// are equal.
	Field              []float64
	FieldMin, FieldMax float64
	Circle             *Circle
	ShowPoints         bool
}

var (
	poor = colorful.Color{R: 0.84, G: 0.19, B: 0.15}
	good = colorful.Color{R: 0.10, G: 0.60, B: 0.31}
)

// Colormap maps t in [0, 1] from poor (red) to good (green), blending in Lab
// space. Values outside the range are clamped.
func Colormap(t float64) colorful.Color {
	t = math.Max(0, math.Min(1, t))
	return poor.BlendLab(good, t).Clamped()
}

// frame maps mesh coordinates onto the image, with y pointing up.
type frame struct {
	minX, minY    float64
	scale         float64
	padding       float64
	width, height int
}

func newFrame(m *mesh.Mesh, opts Options) frame {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = defaultPadding
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range m.Vertices {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if len(m.Vertices) == 0 {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}
	spanX := math.Max(maxX-minX, geom.Tolerance)
	spanY := math.Max(maxY-minY, geom.Tolerance)
	scale := (float64(width) - 2*padding) / spanX
	height := int(math.Ceil(spanY*scale + 2*padding))
	return frame{minX: minX, minY: minY, scale: scale, padding: padding, width: width, height: height}
}

func (f frame) project(p geom.Point) (x, y float64) {
	x = f.padding + (p.X-f.minX)*f.scale
	y = float64(f.height) - f.padding - (p.Y-f.minY)*f.scale
	return x, y
}

// colors returns one fill color per triangle, or nil when there is no field.
func colors(m *mesh.Mesh, opts Options) []colorful.Color {
	if len(opts.Field) == 0 {
		return nil
	}
	lo, hi := opts.FieldMin, opts.FieldMax
	if lo == hi {
		lo, hi = math.Inf(1), math.Inf(-1)
		for _, v := range opts.Field {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	result := make([]colorful.Color, len(m.Triangles))
	for i := range result {
		if i >= len(opts.Field) {
			result[i] = colorful.Color{R: 1, G: 1, B: 1}
			continue
		}
		t := 1.0
		if hi > lo {
			t = (opts.Field[i] - lo) / (hi - lo)
		}
		result[i] = Colormap(t)
	}
	return result
}
