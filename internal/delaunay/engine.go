package delaunay

import (
	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
)

// Options is the quality directive for Conform. MinAngle is in degrees. A zero
// MinAngle or MaxArea disables that criterion.
type Options struct {
	MinAngle   float64
	MaxArea    float64
	MaxSteiner int
}

// DefaultMaxSteiner bounds the points Conform may add when Options leaves
// MaxSteiner at zero.
const DefaultMaxSteiner = 20000

// builder tracks how engine vertices map back to the caller's index space.
// Input points keep their input index, duplicates included, and Steiner
// points are numbered after them in creation order.
type builder struct {
	*triangulation
	input    int
	inputMap []int
	outIndex map[int]int
	steiner  []geom.Point
}

func newBuilder(points []geom.Point) *builder {
	b := &builder{
		triangulation: newTriangulation(points),
		input:         len(points),
		inputMap:      make([]int, len(points)),
		outIndex:      make(map[int]int, len(points)),
	}
	for i, p := range points {
		before := len(b.verts)
		v := b.insert(p)
		b.inputMap[i] = v
		if v == before {
			b.outIndex[v] = i
		}
	}
	return b
}

// addSteiner inserts a point that was not part of the input.
func (b *builder) addSteiner(p geom.Point) int {
	before := len(b.verts)
	v := b.insert(p)
	if v == before {
		b.outIndex[v] = b.input + len(b.steiner)
		b.steiner = append(b.steiner, p)
	}
	return v
}

func (b *builder) result(points []geom.Point, keep func(ti int) bool) *mesh.Mesh {
	m := &mesh.Mesh{
		Vertices: make([]geom.Point, 0, len(points)+len(b.steiner)),
	}
	m.Vertices = append(m.Vertices, points...)
	m.Vertices = append(m.Vertices, b.steiner...)
	b.live(func(ti int) {
		if keep != nil && !keep(ti) {
			return
		}
		v := b.tris[ti].v
		m.Triangles = append(m.Triangles, mesh.Triangle{b.outIndex[v[0]], b.outIndex[v[1]], b.outIndex[v[2]]})
	})
	if len(m.Triangles) == 0 {
		throw(geom.DegenerateInputErrorf("no triangles could be formed from %d points", len(points)))
	}
	return m
}

// Triangulate returns the Delaunay triangulation of points. Triangles are
// counterclockwise and index into the returned vertex array, which is a copy
// of points.
func Triangulate(points []geom.Point) (result *mesh.Mesh, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return newBuilder(points).result(points, nil), nil
}

// Conform triangulates the region bounded by segments, which must form
// closed, simple, non-crossing loops over points. The region is taken under
// the even-odd rule, so a loop inside another loop is a hole. Segments are
// split as needed so that each appears in the result as a chain of edges, and
// triangles are refined until they meet opts or the Steiner budget runs out.
func Conform(points []geom.Point, segments []mesh.Segment, opts Options) (result *mesh.Mesh, err error) {
	defer func() {
		if recoveredErr := HandlePanicRecover(recover()); recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	loops, err := mesh.Loops(segments)
	if err != nil {
		return nil, err
	}
	c := newConformer(newBuilder(points), segments, mesh.Region(points, loops), opts)
	c.recoverSegments()
	c.refine()
	c.recoverSegments()
	inside := c.classify()
	return c.result(points, func(ti int) bool { return inside[ti] }), nil
}
