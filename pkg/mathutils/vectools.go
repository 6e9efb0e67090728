package mathutils

import (
	"gonum.org/v1/gonum/floats"
)

// axes splits points into one slice per coordinate.
func axes(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p[0], p[1]
	}
	return xs, ys
}

// Mean computes the coordinate-wise arithmetic mean of points. The bool is
// false if there is nothing to average.
func Mean(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	xs, ys := axes(points)
	n := float64(len(points))
	return Point{floats.Sum(xs) / n, floats.Sum(ys) / n}, true
}

// Bounds gives the axis-aligned bounding box of points as (min, max)
// corners. The bool is false if points is empty (bounds are undefined).
func Bounds(points []Point) (lo, hi Point, ok bool) {
	if len(points) == 0 {
		return Point{}, Point{}, false
	}
	xs, ys := axes(points)
	lo = Point{floats.Min(xs), floats.Min(ys)}
	hi = Point{floats.Max(xs), floats.Max(ys)}
	return lo, hi, true
}

// Lerp maps 't' in [0, 1) onto [lo, hi).
func Lerp(lo, hi, t float64) float64 {
	return lo + t*(hi-lo)
}
