package kmeans

import (
	"kstep/pkg/kmeans/common"
	"kstep/pkg/mathutils"
	"kstep/pkg/searchutils"

	"gonum.org/v1/gonum/floats"
)

// InitArgs contain arguments for InitCentroids.
type InitArgs struct {
	Points []Point
	// K must already be clamped by the caller (see Run).
	K      int
	Method Method
	// Only used (and required) for MethodManual.
	InitialCentroids []Point
	// Not consumed by MethodManual.
	Rand RandSource
}

// InitCentroids produces the starting centroid set of length args.K using
// the selected method.
func InitCentroids(args InitArgs) ([]Point, error) {
	switch args.Method {
	case MethodRandom:
		return initRandom(args.Points, args.K, args.Rand)
	case MethodFarthestFirst:
		return initFarthestFirst(args.Points, args.K, args.Rand)
	case MethodKMeansPP:
		return initKMeansPP(args.Points, args.K, args.Rand)
	case MethodManual:
		return initManual(args.InitialCentroids, args.K)
	default:
		return nil, ErrUnsupportedMethod
	}
}

// initRandom draws k points uniformly inside the bounding box of the data.
// When every point is needed anyway, the points themselves are used.
func initRandom(points []Point, k int, rnd RandSource) ([]Point, error) {
	lo, hi, ok := mathutils.Bounds(points)
	if !ok {
		return nil, ErrEmptyData
	}
	if k == len(points) {
		return common.ClonePoints(points), nil
	}
	res := make([]Point, k)
	for i := range res {
		x := mathutils.Lerp(lo[0], hi[0], rnd.Float64())
		y := mathutils.Lerp(lo[1], hi[1], rnd.Float64())
		res[i] = Point{x, y}
	}
	return res, nil
}

// initFarthestFirst picks a random point first, then repeatedly the point
// whose nearest chosen centroid is farthest away (first one on ties).
func initFarthestFirst(points []Point, k int, rnd RandSource) ([]Point, error) {
	if len(points) == 0 {
		return nil, ErrEmptyData
	}
	res := make([]Point, 0, k)
	res = append(res, points[rnd.Intn(len(points))])
	for len(res) < k {
		res = append(res, points[searchutils.FarthestFromSetIndex(points, res)])
	}
	return res, nil
}

// initKMeansPP picks a random point first, then samples the remaining
// centroids with probability proportional to the squared distance to the
// nearest chosen centroid. A single uniform draw is compared against the
// cumulative distribution and the first index above it wins.
func initKMeansPP(points []Point, k int, rnd RandSource) ([]Point, error) {
	if len(points) == 0 {
		return nil, ErrEmptyData
	}
	res := make([]Point, 0, k)
	res = append(res, points[rnd.Intn(len(points))])

	weights := make([]float64, len(points))
	cumulative := make([]float64, len(points))
	for len(res) < k {
		for i, p := range points {
			d := mathutils.NearestDistance(p, res)
			weights[i] = d * d
		}
		total := floats.Sum(weights)
		// Every point sits on a centroid already; nothing to weigh by.
		if total == 0 {
			res = append(res, points[rnd.Intn(len(points))])
			continue
		}
		floats.Scale(1/total, weights)
		floats.CumSum(cumulative, weights)
		res = append(res, points[pickCumulative(cumulative, weights, rnd.Float64())])
	}
	return res, nil
}

// pickCumulative gives the first index whose cumulative probability exceeds
// 'r'. Rounding can leave the last cumulative value just below 1, in which
// case the last index with a positive weight is used.
func pickCumulative(cumulative, weights []float64, r float64) int {
	for i, c := range cumulative {
		if r < c {
			return i
		}
	}
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

// initManual uses caller supplied centroids, which must match k exactly.
func initManual(centroids []Point, k int) ([]Point, error) {
	if len(centroids) != k {
		return nil, &CentroidCountError{Got: len(centroids), Want: k}
	}
	return common.ClonePoints(centroids), nil
}
