package render

import (
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
)

// SVG writes the drawing as an SVG document. svgo works in whole pixels, so
// coordinates are rounded.
func SVG(w io.Writer, m *mesh.Mesh, opts Options) {
	f := newFrame(m, opts)
	canvas := svg.New(w)
	canvas.Start(f.width, f.height)
	canvas.Rect(0, 0, f.width, f.height, "fill:white")

	fills := colors(m, opts)
	for i := range m.Triangles {
		a, b, p := m.Corners(i)
		xs, ys := make([]int, 3), make([]int, 3)
		for k, q := range [3]geom.Point{a, b, p} {
			x, y := f.project(q)
			xs[k], ys[k] = round(x), round(y)
		}
		fill := "none"
		if fills != nil {
			fill = fills[i].Hex()
		}
		canvas.Polygon(xs, ys, "fill:"+fill+";stroke:black;stroke-width:0.5")
	}

	if opts.ShowPoints {
		for _, p := range m.Vertices {
			x, y := f.project(p)
			canvas.Circle(round(x), round(y), 2, "fill:red")
		}
	}

	if opts.Circle != nil {
		x, y := f.project(opts.Circle.Center)
		canvas.Circle(round(x), round(y), round(opts.Circle.Radius*f.scale), "fill:blue;fill-opacity:0.3")
	}
	canvas.End()
}

func round(v float64) int {
	return int(math.Round(v))
}
