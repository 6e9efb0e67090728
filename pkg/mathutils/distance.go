/*
This file contains a few functions which help with finding the distance
between points. Only the euclidean metric is used in this project.

*/

package mathutils

import (
	"kstep/pkg/kmeans/common"
	"math"

	"gonum.org/v1/gonum/floats"
)

type Point = common.Point

// EuclideanDistance finds the euclidean distance between two points.
func EuclideanDistance(p, q Point) float64 {
	return floats.Distance(p.Vec(), q.Vec(), 2)
}

// SquaredDistance is EuclideanDistance squared.
func SquaredDistance(p, q Point) float64 {
	d := EuclideanDistance(p, q)
	return d * d
}

// NearestDistance finds the distance between 'p' and the closest of 'others'.
// Returns +Inf if 'others' is empty.
func NearestDistance(p Point, others []Point) float64 {
	res := math.Inf(1)
	for _, o := range others {
		if d := EuclideanDistance(p, o); d < res {
			res = d
		}
	}
	return res
}
