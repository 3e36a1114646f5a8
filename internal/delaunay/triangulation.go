// Package delaunay is the native triangulation engine. It builds Delaunay
// triangulations incrementally (Bowyer-Watson) and can conform them to
// boundary segments while refining towards a minimum angle and maximum area.
//
// Triangles are stored counterclockwise. Adjacency is kept in a map from
// directed edges to the triangle on their left, so the neighbor across edge
// (a, b) is whichever triangle owns (b, a).
package delaunay

import (
	"math"

	"github.com/osuushi/frontmesh/geom"
)

// The first three vertices of every triangulation belong to the enclosing
// super triangle. They never appear in results.
const superVertices = 3

// How far the super triangle reaches, in multiples of the input extent.
const superScale = 20

type edge struct {
	a, b int
}

func (e edge) twin() edge {
	return edge{e.b, e.a}
}

type triangle struct {
	v    [3]int
	dead bool
}

func (t *triangle) edge(i int) edge {
	return edge{t.v[i], t.v[(i+1)%3]}
}

type triangulation struct {
	verts []geom.Point
	tris  []triangle
	edges map[edge]int
	last  int
	dead  int
}

// newTriangulation prepares an empty triangulation whose super triangle
// encloses every point in bounds by a wide margin.
func newTriangulation(points []geom.Point) *triangulation {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	extent := math.Max(maxX-minX, maxY-minY)
	if extent == 0 || math.IsInf(extent, 0) || math.IsNaN(extent) {
		extent = 1
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	if len(points) == 0 {
		cx, cy = 0, 0
	}
	t := &triangulation{
		verts: []geom.Point{
			{X: cx - superScale*extent, Y: cy - extent},
			{X: cx + superScale*extent, Y: cy - extent},
			{X: cx, Y: cy + superScale*extent},
		},
		edges: make(map[edge]int),
	}
	t.addTriangle(0, 1, 2)
	return t
}

func (t *triangulation) addTriangle(a, b, c int) int {
	ti := len(t.tris)
	t.tris = append(t.tris, triangle{v: [3]int{a, b, c}})
	for i := 0; i < 3; i++ {
		t.edges[t.tris[ti].edge(i)] = ti
	}
	return ti
}

func (t *triangulation) removeTriangle(ti int) {
	tri := &t.tris[ti]
	for i := 0; i < 3; i++ {
		e := tri.edge(i)
		if owner, ok := t.edges[e]; ok && owner == ti {
			delete(t.edges, e)
		}
	}
	tri.dead = true
	t.dead++
}

// neighbor returns the triangle across edge i of triangle ti.
func (t *triangulation) neighbor(ti, i int) (int, bool) {
	n, ok := t.edges[t.tris[ti].edge(i).twin()]
	return n, ok
}

func (t *triangulation) hasEdge(a, b int) bool {
	_, ok := t.edges[edge{a, b}]
	if !ok {
		_, ok = t.edges[edge{b, a}]
	}
	return ok
}

// find looks up the live triangle with the given corners.
func (t *triangulation) find(v [3]int) (int, bool) {
	ti, ok := t.edges[edge{v[0], v[1]}]
	if !ok || t.tris[ti].dead {
		return 0, false
	}
	for _, c := range t.tris[ti].v {
		if c == v[2] {
			return ti, true
		}
	}
	return 0, false
}

func (t *triangulation) corners(ti int) (a, b, c geom.Point) {
	v := t.tris[ti].v
	return t.verts[v[0]], t.verts[v[1]], t.verts[v[2]]
}

func (t *triangulation) touchesSuper(ti int) bool {
	for _, v := range t.tris[ti].v {
		if v < superVertices {
			return true
		}
	}
	return false
}

func (t *triangulation) contains(ti int, p geom.Point) bool {
	for i := 0; i < 3; i++ {
		e := t.tris[ti].edge(i)
		if geom.Orient(t.verts[e.a], t.verts[e.b], p) < 0 {
			return false
		}
	}
	return true
}

// locate finds a live triangle containing p by walking towards it from the
// most recently created triangle, falling back to a scan if the walk cycles.
func (t *triangulation) locate(p geom.Point) int {
	ti := t.last
	if ti >= len(t.tris) || t.tris[ti].dead {
		ti = t.anyLive()
	}
	limit := len(t.tris) - t.dead + 3
walk:
	for step := 0; step < limit; step++ {
		// Rotating the first edge tested keeps the walk from bouncing
		// between two triangles forever.
		for k := 0; k < 3; k++ {
			i := (k + step) % 3
			e := t.tris[ti].edge(i)
			if geom.Orient(t.verts[e.a], t.verts[e.b], p) < 0 {
				n, ok := t.neighbor(ti, i)
				if !ok {
					fatalf("point (%g, %g) lies outside the triangulation", p.X, p.Y)
				}
				ti = n
				continue walk
			}
		}
		return ti
	}
	for i := range t.tris {
		if !t.tris[i].dead && t.contains(i, p) {
			return i
		}
	}
	fatalf("no triangle contains point (%g, %g)", p.X, p.Y)
	return -1
}

func (t *triangulation) anyLive() int {
	for i := len(t.tris) - 1; i >= 0; i-- {
		if !t.tris[i].dead {
			return i
		}
	}
	fatalf("triangulation has no live triangles")
	return -1
}

// insert adds p and restores the Delaunay property around it. It returns the
// index of the new vertex, or of an existing vertex that p coincides with.
func (t *triangulation) insert(p geom.Point) int {
	start := t.locate(p)
	for _, v := range t.tris[start].v {
		if geom.SamePoint(t.verts[v], p) {
			return v
		}
	}

	cavity := []int{start}
	inCavity := map[int]bool{start: true}
	for q := 0; q < len(cavity); q++ {
		ti := cavity[q]
		for i := 0; i < 3; i++ {
			n, ok := t.neighbor(ti, i)
			if !ok || inCavity[n] {
				continue
			}
			a, b, c := t.corners(n)
			if geom.InCircle(a, b, c, p) > 0 {
				inCavity[n] = true
				cavity = append(cavity, n)
			}
		}
	}

	// Rounding can leave the cavity not quite star shaped around p. Any
	// boundary edge that p does not see from the inside pulls the triangle
	// behind it into the cavity.
	var boundary []edge
	for {
		boundary = boundary[:0]
		grown := false
		for _, ti := range cavity {
			for i := 0; i < 3; i++ {
				n, ok := t.neighbor(ti, i)
				if ok && inCavity[n] {
					continue
				}
				e := t.tris[ti].edge(i)
				if geom.Orient(t.verts[e.a], t.verts[e.b], p) <= 0 {
					if !ok {
						fatalf("cannot insert point (%g, %g) on the triangulation hull", p.X, p.Y)
					}
					inCavity[n] = true
					cavity = append(cavity, n)
					grown = true
					continue
				}
				boundary = append(boundary, e)
			}
		}
		if !grown {
			break
		}
	}

	idx := len(t.verts)
	t.verts = append(t.verts, p)
	for _, ti := range cavity {
		t.removeTriangle(ti)
	}
	for _, e := range boundary {
		t.last = t.addTriangle(e.a, e.b, idx)
	}
	if t.dead > 1024 && t.dead > len(t.tris)/2 {
		t.compact()
	}
	return idx
}

// compact drops dead triangles and rebuilds the edge map.
func (t *triangulation) compact() {
	live := t.tris[:0]
	for _, tri := range t.tris {
		if !tri.dead {
			live = append(live, tri)
		}
	}
	t.tris = live
	t.dead = 0
	t.edges = make(map[edge]int, 3*len(live))
	for ti := range t.tris {
		for i := 0; i < 3; i++ {
			t.edges[t.tris[ti].edge(i)] = ti
		}
	}
	t.last = len(t.tris) - 1
}

// live calls fn for every live triangle that does not touch the super
// triangle.
func (t *triangulation) live(fn func(ti int)) {
	for ti := range t.tris {
		if !t.tris[ti].dead && !t.touchesSuper(ti) {
			fn(ti)
		}
	}
}
