package delaunay

import (
	"math"
	"sort"

	"github.com/osuushi/frontmesh/geom"
	"github.com/osuushi/frontmesh/mesh"
)

// conformer recovers boundary segments in a Delaunay triangulation by
// splitting them at midpoints, then refines the enclosed triangles in the
// manner of Ruppert: circumcenters of bad triangles are inserted unless they
// would encroach on a segment, in which case the segment is split instead.
type conformer struct {
	*builder
	// Subsegments keyed with the smaller vertex first.
	subsegs map[edge]struct{}
	region  geom.Region
	opts    Options
	// Shortest subsegment worth splitting. Anything shorter means the
	// boundary cannot be recovered.
	minLength float64
}

func newConformer(b *builder, segments []mesh.Segment, region geom.Region, opts Options) *conformer {
	if opts.MaxSteiner <= 0 {
		opts.MaxSteiner = DefaultMaxSteiner
	}
	c := &conformer{
		builder: b,
		subsegs: make(map[edge]struct{}, len(segments)),
		region:  region,
		opts:    opts,
	}
	extent := geom.Distance(b.verts[0], b.verts[1]) / superScale
	c.minLength = extent * 1e-9
	for _, s := range segments {
		c.addSubseg(b.inputMap[s[0]], b.inputMap[s[1]])
	}
	return c
}

func key(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

func (c *conformer) addSubseg(a, b int) {
	if a != b {
		c.subsegs[key(a, b)] = struct{}{}
	}
}

func (c *conformer) isSubseg(a, b int) bool {
	_, ok := c.subsegs[key(a, b)]
	return ok
}

func (c *conformer) sortedSubsegs() []edge {
	list := make([]edge, 0, len(c.subsegs))
	for s := range c.subsegs {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].a != list[j].a {
			return list[i].a < list[j].a
		}
		return list[i].b < list[j].b
	})
	return list
}

func (c *conformer) exhausted() bool {
	return len(c.steiner) >= c.opts.MaxSteiner
}

// encroached reports whether the vertex opposite s in either adjacent
// triangle lies inside the diametral circle of s.
func (c *conformer) encroached(s edge) bool {
	a, b := c.verts[s.a], c.verts[s.b]
	for _, e := range []edge{s, s.twin()} {
		ti, ok := c.edges[e]
		if !ok {
			continue
		}
		for _, v := range c.tris[ti].v {
			if v != s.a && v != s.b && v >= superVertices && geom.InDiametralCircle(a, b, c.verts[v]) {
				return true
			}
		}
	}
	return false
}

func (c *conformer) split(s edge) {
	a, b := c.verts[s.a], c.verts[s.b]
	if geom.Distance(a, b) < 2*c.minLength {
		throw(geom.GeometryErrorf("segment (%g, %g)-(%g, %g) cannot be recovered", a.X, a.Y, b.X, b.Y))
	}
	m := c.addSteiner(geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2})
	delete(c.subsegs, s)
	c.addSubseg(s.a, m)
	c.addSubseg(m, s.b)
}

// recoverSegments splits subsegments until every one of them is an edge of
// the triangulation and none is encroached.
func (c *conformer) recoverSegments() {
	for {
		changed := false
		for _, s := range c.sortedSubsegs() {
			if c.hasEdge(s.a, s.b) && !c.encroached(s) {
				continue
			}
			// Recovery may overdraw the refinement budget, since refinement
			// can stop with segments still missing.
			if len(c.steiner) >= 2*c.opts.MaxSteiner {
				throw(geom.GeometryErrorf("steiner budget of %d exhausted while recovering boundary segments", c.opts.MaxSteiner))
			}
			c.split(s)
			changed = true
		}
		if !changed {
			return
		}
	}
}

// classify flood fills from the super triangle, flipping inside/outside each
// time a subsegment is crossed. It assumes every subsegment is an edge.
func (c *conformer) classify() map[int]bool {
	parity := make(map[int]bool, len(c.tris))
	visited := make(map[int]bool, len(c.tris))
	var queue []int
	for ti := range c.tris {
		if !c.tris[ti].dead && c.touchesSuper(ti) {
			visited[ti] = true
			queue = append(queue, ti)
		}
	}
	for q := 0; q < len(queue); q++ {
		ti := queue[q]
		for i := 0; i < 3; i++ {
			n, ok := c.neighbor(ti, i)
			if !ok || visited[n] {
				continue
			}
			e := c.tris[ti].edge(i)
			visited[n] = true
			parity[n] = parity[ti] != c.isSubseg(e.a, e.b)
			queue = append(queue, n)
		}
	}
	return parity
}

// minAngle is the smallest interior angle of triangle ti in degrees. The
// smallest angle is opposite the shortest edge, and the law of sines relates
// it to the circumradius.
func (c *conformer) minAngle(ti int) float64 {
	a, b, p := c.corners(ti)
	ab, bp, pa := geom.Distance(a, b), geom.Distance(b, p), geom.Distance(p, a)
	shortest := math.Min(ab, math.Min(bp, pa))
	area := geom.Area(a, b, p)
	if area == 0 {
		return 0
	}
	circumradius := ab * bp * pa / (4 * area)
	return math.Asin(math.Min(1, shortest/(2*circumradius))) * 180 / math.Pi
}

func (c *conformer) isBad(ti int) bool {
	if c.opts.MinAngle > 0 && c.minAngle(ti) < c.opts.MinAngle {
		return true
	}
	if c.opts.MaxArea > 0 && geom.Area(c.corners(ti)) > c.opts.MaxArea {
		return true
	}
	return false
}

// encroachedBy lists the subsegments whose diametral circle contains p.
func (c *conformer) encroachedBy(p geom.Point) []edge {
	var list []edge
	for _, s := range c.sortedSubsegs() {
		if geom.InDiametralCircle(c.verts[s.a], c.verts[s.b], p) {
			list = append(list, s)
		}
	}
	return list
}

func (c *conformer) refine() {
	if c.opts.MinAngle <= 0 && c.opts.MaxArea <= 0 {
		return
	}
	for !c.exhausted() {
		c.recoverSegments()
		inside := c.classify()

		type candidate struct {
			v     [3]int
			angle float64
		}
		var bad []candidate
		for ti, in := range inside {
			if in && !c.tris[ti].dead && c.isBad(ti) {
				bad = append(bad, candidate{c.tris[ti].v, c.minAngle(ti)})
			}
		}
		if len(bad) == 0 {
			return
		}
		// Worst first; ties broken by vertices for a stable order.
		sort.Slice(bad, func(i, j int) bool {
			if bad[i].angle != bad[j].angle {
				return bad[i].angle < bad[j].angle
			}
			for k := 0; k < 3; k++ {
				if bad[i].v[k] != bad[j].v[k] {
					return bad[i].v[k] < bad[j].v[k]
				}
			}
			return false
		})

		inserted := 0
		for _, cand := range bad {
			if c.exhausted() {
				return
			}
			ti, ok := c.find(cand.v)
			if !ok {
				continue
			}
			center, ok := geom.Circumcenter(c.corners(ti))
			if !ok {
				continue
			}
			if encroached := c.encroachedBy(center); len(encroached) > 0 {
				for _, s := range encroached {
					if _, still := c.subsegs[s]; still && !c.exhausted() {
						c.split(s)
						inserted++
					}
				}
				continue
			}
			if !c.region.Contains(center) {
				// Oversized triangles still get split, at their centroid.
				if c.opts.MaxArea <= 0 || geom.Area(c.corners(ti)) <= c.opts.MaxArea {
					continue
				}
				center = geom.Centroid(c.corners(ti))
			}
			before := len(c.steiner)
			c.addSteiner(center)
			if len(c.steiner) > before {
				inserted++
			}
		}
		if inserted == 0 {
			return
		}
	}
}
