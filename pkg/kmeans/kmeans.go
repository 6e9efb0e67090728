/*
Package kmeans computes iterative k-means over 2-D points and keeps every
intermediate state, so that a caller can step through (or animate) how the
centroids settle.

A run is: initialize centroids once (see Method), record the initial
assignment, then repeat assign -> update -> convergence check until the
centroids settle or the iteration cap is hit. Reaching the cap is a normal
way to stop, not an error.

Nothing here is shared between runs; randomness comes from the RandSource in
RunArgs, so a seeded source gives a reproducible History.
*/
package kmeans

import (
	"kstep/pkg/kmeans/common"
)

// Defaults for the zero values in RunArgs.
const (
	DefaultMaxIterations = 100
	DefaultMaxK          = 100
)

// RunArgs contain arguments for Run. Points, K and Method are required.
type RunArgs struct {
	Points []Point
	// Requested number of clusters. Clamped to MaxK and len(Points).
	K      int
	Method Method
	// Required for MethodManual, ignored otherwise.
	InitialCentroids []Point

	// Rand defaults to a clock-seeded generator owned by this run.
	Rand RandSource
	// MaxIterations defaults to DefaultMaxIterations.
	MaxIterations int
	// Tolerance defaults to DefaultTolerance.
	Tolerance float64
	// MaxK defaults to DefaultMaxK.
	MaxK int
}

func (args *RunArgs) setDefaults() {
	if args.Rand == nil {
		args.Rand = common.NewRand(0)
	}
	if args.MaxIterations <= 0 {
		args.MaxIterations = DefaultMaxIterations
	}
	if args.Tolerance <= 0 {
		args.Tolerance = DefaultTolerance
	}
	if args.MaxK <= 0 {
		args.MaxK = DefaultMaxK
	}
}

// ClampK gives the k actually used for 'requested' clusters over 'n' points.
func ClampK(requested, maxK, n int) int {
	k := requested
	if k > maxK {
		k = maxK
	}
	if k > n {
		k = n
	}
	return k
}

// Run performs a full k-means run and returns its History. Any error (bad
// method, mismatched manual centroids, no data, k < 1) aborts the run before
// the first record and no History is returned.
func Run(args RunArgs) (History, error) {
	args.setDefaults()
	if len(args.Points) == 0 {
		return nil, ErrEmptyData
	}
	if args.K < 1 {
		return nil, ErrInvalidK
	}
	k := ClampK(args.K, args.MaxK, len(args.Points))

	centroids, err := InitCentroids(InitArgs{
		Points:           args.Points,
		K:                k,
		Method:           args.Method,
		InitialCentroids: args.InitialCentroids,
		Rand:             args.Rand,
	})
	if err != nil {
		return nil, err
	}

	history := make(History, 0, args.MaxIterations+1)
	history = append(history, newRecord(centroids, AssignClusters(args.Points, centroids)))

	for i := 0; i < args.MaxIterations; i++ {
		clusters := AssignClusters(args.Points, centroids)
		next := UpdateCentroids(clusters, args.Rand)
		history = append(history, newRecord(next, clusters))
		if HasConverged(centroids, next, args.Tolerance) {
			break
		}
		centroids = next
	}
	return history, nil
}
