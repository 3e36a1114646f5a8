package render

import (
	"io"

	"github.com/fogleman/gg"
	"github.com/osuushi/frontmesh/mesh"
	"github.com/pkg/errors"
)

// Draw paints the mesh onto a new gg context.
func Draw(m *mesh.Mesh, opts Options) *gg.Context {
	f := newFrame(m, opts)
	c := gg.NewContext(f.width, f.height)
	c.SetRGB(1, 1, 1)
	c.Clear()

	fills := colors(m, opts)
	c.SetLineWidth(0.5)
	for i := range m.Triangles {
		a, b, p := m.Corners(i)
		ax, ay := f.project(a)
		bx, by := f.project(b)
		px, py := f.project(p)
		c.MoveTo(ax, ay)
		c.LineTo(bx, by)
		c.LineTo(px, py)
		c.ClosePath()
		if fills != nil {
			c.SetColor(fills[i])
			c.FillPreserve()
		}
		c.SetRGB(0, 0, 0)
		c.Stroke()
	}

	if opts.ShowPoints {
		c.SetRGB(1, 0, 0)
		for _, p := range m.Vertices {
			x, y := f.project(p)
			c.DrawCircle(x, y, 1.5)
			c.Fill()
		}
	}

	if opts.Circle != nil {
		x, y := f.project(opts.Circle.Center)
		c.DrawCircle(x, y, opts.Circle.Radius*f.scale)
		c.SetRGBA(0, 0, 1, 0.3)
		c.Fill()
	}
	return c
}

// PNG encodes the drawing as PNG.
func PNG(w io.Writer, m *mesh.Mesh, opts Options) error {
	return errors.Wrap(Draw(m, opts).EncodePNG(w), "encode png")
}

// SavePNG writes the drawing to path.
func SavePNG(path string, m *mesh.Mesh, opts Options) error {
	return errors.Wrapf(Draw(m, opts).SavePNG(path), "save %s", path)
}
