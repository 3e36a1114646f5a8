package mesh

import "github.com/osuushi/frontmesh/geom"

// Loops walks a set of segments and returns each closed loop as an ordered
// list of point indices. Every index used by a segment must have exactly two
// incident segments; anything else is an open or branching chain and yields a
// GeometryError. Segment validity against actual coordinates (lengths,
// crossings) is the caller's concern.
func Loops(segments []Segment) ([][]int, error) {
	incident := make(map[int][]int)
	for i, s := range segments {
		if s[0] == s[1] {
			return nil, geom.GeometryErrorf("segment %d joins index %d to itself", i, s[0])
		}
		incident[s[0]] = append(incident[s[0]], i)
		incident[s[1]] = append(incident[s[1]], i)
	}
	for _, s := range segments {
		for _, v := range s {
			if n := len(incident[v]); n != 2 {
				return nil, geom.GeometryErrorf("index %d has %d incident segments, want 2", v, n)
			}
		}
	}

	used := make([]bool, len(segments))
	var loops [][]int
	for start := range segments {
		if used[start] {
			continue
		}
		used[start] = true
		first := segments[start][0]
		loop := []int{first}
		current := segments[start][1]
		previous := start
		for current != first {
			loop = append(loop, current)
			next := incident[current][0]
			if next == previous {
				next = incident[current][1]
			}
			if used[next] {
				return nil, geom.GeometryErrorf("segment %d revisited while walking loop from index %d", next, first)
			}
			used[next] = true
			if segments[next][0] == current {
				current = segments[next][1]
			} else {
				current = segments[next][0]
			}
			previous = next
		}
		if len(loop) < 3 {
			return nil, geom.GeometryErrorf("loop through index %d has only %d points", first, len(loop))
		}
		loops = append(loops, loop)
	}
	return loops, nil
}

// Region builds the even-odd region bounded by the given loops.
func Region(points []geom.Point, loops [][]int) geom.Region {
	region := make(geom.Region, 0, len(loops))
	for _, loop := range loops {
		poly := geom.Polygon{Points: make([]geom.Point, len(loop))}
		for i, idx := range loop {
			poly.Points[i] = points[idx]
		}
		region = append(region, poly)
	}
	return region
}
