// Package mesh holds the result of a triangulation: a vertex array and the
// triangles that index into it.
package mesh

import "github.com/osuushi/frontmesh/geom"

// Triangle is an ordered triple of indices into a Mesh's vertex array. The
// winding is not guaranteed.
type Triangle [3]int

// Segment is a required boundary edge given as two indices into a point set.
type Segment [2]int

// Mesh is a snapshot produced by a single triangulation call. It is never
// modified once returned: refinement derives a new point set and asks for a
// new Mesh instead.
type Mesh struct {
	Vertices  []geom.Point
	Triangles []Triangle
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// Corners returns the three vertex positions of triangle i.
func (m *Mesh) Corners(i int) (a, b, c geom.Point) {
	tri := m.Triangles[i]
	return m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
}

func (m *Mesh) Centroid(i int) geom.Point {
	return geom.Centroid(m.Corners(i))
}

// Points returns a copy of the vertex array, suitable as the start of a new
// point set.
func (m *Mesh) Points() []geom.Point {
	points := make([]geom.Point, len(m.Vertices))
	copy(points, m.Vertices)
	return points
}
