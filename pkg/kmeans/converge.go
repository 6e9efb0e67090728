package kmeans

import "kstep/pkg/mathutils"

// DefaultTolerance is the largest centroid movement still considered settled.
const DefaultTolerance = 1e-4

// HasConverged reports whether every centroid moved at most 'tol' between
// 'old' and 'new'. Centroids are paired by index only. Sets of different
// length never converge; empty sets always do. A NaN distance is movement.
func HasConverged(old, new []Point, tol float64) bool {
	if len(old) != len(new) {
		return false
	}
	for i := range old {
		if !(mathutils.EuclideanDistance(old[i], new[i]) <= tol) {
			return false
		}
	}
	return true
}
