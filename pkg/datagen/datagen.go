/*
Package datagen creates synthetic point sets, for the dataset endpoint of the
API (a fresh cloud of points to cluster) and for tests.
*/
package datagen

import (
	"kstep/pkg/kmeans/common"
	"kstep/pkg/mathutils"
)

type Point = common.Point

// Default extent of generated data; matches the fixed axes of the chart page.
const (
	DefaultMin = -10.0
	DefaultMax = 10.0
)

// UniformArgs contain arguments for Uniform.
type UniformArgs struct {
	N    int
	Min  float64
	Max  float64
	Rand common.RandSource
}

// Uniform draws args.N points uniformly in [Min, Max) on both axes. Min and
// Max default to DefaultMin and DefaultMax when both are zero.
func Uniform(args UniformArgs) []Point {
	if args.N <= 0 {
		return []Point{}
	}
	if args.Min == 0 && args.Max == 0 {
		args.Min, args.Max = DefaultMin, DefaultMax
	}
	res := make([]Point, args.N)
	for i := range res {
		res[i] = Point{
			mathutils.Lerp(args.Min, args.Max, args.Rand.Float64()),
			mathutils.Lerp(args.Min, args.Max, args.Rand.Float64()),
		}
	}
	return res
}

// BlobsArgs contain arguments for Blobs.
type BlobsArgs struct {
	Centers []Point
	// Points per center.
	PerBlob int
	// Half the side of the square each blob is scattered in.
	Spread float64
	Rand   common.RandSource
}

// Blobs scatters args.PerBlob points around every center. Points are
// grouped by center, in center order.
func Blobs(args BlobsArgs) []Point {
	if args.PerBlob <= 0 {
		return []Point{}
	}
	res := make([]Point, 0, len(args.Centers)*args.PerBlob)
	for _, c := range args.Centers {
		for i := 0; i < args.PerBlob; i++ {
			res = append(res, Point{
				mathutils.Lerp(c[0]-args.Spread, c[0]+args.Spread, args.Rand.Float64()),
				mathutils.Lerp(c[1]-args.Spread, c[1]+args.Spread, args.Rand.Float64()),
			})
		}
	}
	return res
}
