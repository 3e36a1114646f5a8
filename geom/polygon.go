package geom

// Polygon is a closed ring of points. The closing edge from the last point
// back to the first is implicit.
type Polygon struct {
	Points []Point
}

// Even-odd point-in-polygon test. A point exactly on an edge may land on
// either side.
func (poly Polygon) ContainsPointByEvenOdd(p Point) bool {
	return poly.CrossingCount(p)%2 == 1
}

// Crossing count of a ray cast from p towards +X.
func (poly Polygon) CrossingCount(p Point) int {
	crossingCount := 0
	for i, vertex := range poly.Points {
		nextVertex := poly.Points[CircularIndex(i+1, len(poly.Points))]
		if (vertex.Y > p.Y) == (nextVertex.Y > p.Y) {
			continue
		}
		t := (p.Y - vertex.Y) / (nextVertex.Y - vertex.Y)
		if vertex.X+t*(nextVertex.X-vertex.X) > p.X {
			crossingCount++
		}
	}
	return crossingCount
}

func (poly Polygon) Reverse() Polygon {
	newPoly := Polygon{Points: make([]Point, 0, len(poly.Points))}
	for i := len(poly.Points) - 1; i >= 0; i-- {
		newPoly.Points = append(newPoly.Points, poly.Points[i])
	}
	return newPoly
}

// SignedArea is positive for counterclockwise rings.
func (poly Polygon) SignedArea() float64 {
	var sum float64
	for i, p := range poly.Points {
		q := poly.Points[CircularIndex(i+1, len(poly.Points))]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Region is a set of rings combined under the even-odd rule, so a ring nested
// inside another ring is a hole.
type Region []Polygon

func (r Region) Contains(p Point) bool {
	count := 0
	for _, poly := range r {
		count += poly.CrossingCount(p)
	}
	return count%2 == 1
}
