/*
File contains the point type that is common to this project. Points are
plain values, so copying a slice of them copies the coordinates as well,
which is what keeps History records independent of each other.
*/
package common

import "fmt"

// Point is a 2-D coordinate. It marshals to JSON as [x, y].
type Point [2]float64

// NewPoint creates a Point from a coordinate slice as received over the wire.
// Returns an err if the slice does not have exactly two elements.
func NewPoint(xy []float64) (Point, error) {
	if len(xy) != 2 {
		return Point{}, fmt.Errorf("point must have exactly 2 coordinates, got %d", len(xy))
	}
	return Point{xy[0], xy[1]}, nil
}

// X gives the first coordinate.
func (p Point) X() float64 { return p[0] }

// Y gives the second coordinate.
func (p Point) Y() float64 { return p[1] }

// Vec gives the point as a freshly allocated slice (for the gonum helpers
// in pkg/mathutils, which work on []float64).
func (p Point) Vec() []float64 { return []float64{p[0], p[1]} }

// ClonePoints copies a point slice. Never returns nil, so that empty
// clusters serialize as [] rather than null.
func ClonePoints(points []Point) []Point {
	res := make([]Point, len(points))
	copy(res, points)
	return res
}

// PointGenerator returns a generator over 'points' (false=stop), which is the
// iteration style used by pkg/searchutils.
func PointGenerator(points []Point) func() (Point, bool) {
	i := 0
	return func() (Point, bool) {
		if i >= len(points) {
			return Point{}, false
		}
		i++
		return points[i-1], true
	}
}
