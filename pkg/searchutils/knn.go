/*
This file contains a few funcs which do 'normal' k-nearest (or furthest)
searching over points. The main implementation is with KNNBrute(...), while
the other exported funcs (below it) are just convenience funcs/prefabs which
configure KNNBrute.

All searches keep the first occurrence when scores are equal, so a pool
scanned in index order resolves ties to the lowest index.
*/

package searchutils

import (
	"kstep/pkg/kmeans/common"
	"kstep/pkg/mathutils"
	"math"
)

type Point = common.Point

// Internal type for tracking searched elements that are best..
type resultItem struct {
	// The search funcs operate on generators and return a slice of indexes
	// which represent elements in those generators.
	index int
	// Used in search funcs to keep track of relevance.
	score float64
	// Used as a signal for whether or not the instance of resultItem
	// is actually used and not just initialised.
	set bool
}

// bubble inserts the 'insertee' into 'items' in an ordered manner (in place),
// without changing the length of 'items' (i.e a value will be lost). The order
// is specified with the related arg. Only works as expected if 'items' is
// already sorted. Equal scores never displace each other, which is what
// makes the first occurrence win.
// 		Example(0, [1,2,3], true) -> [0,1,2]
// 		Example(3, [2,1,0], false) -> [3,2,1]
func bubble(insertee *resultItem, items []resultItem, ascending bool) {
	for i := 0; i < len(items); i++ {
		// '|| !items[i].set' means that a slot can be taken if it is inactive.
		if (insertee.score > items[i].score || !items[i].set) && !ascending {
			*insertee, items[i] = items[i], *insertee
		}
		if (insertee.score < items[i].score || !items[i].set) && ascending {
			*insertee, items[i] = items[i], *insertee
		}
	}
}

// resItems2Indexes simply converts a slice of resultItems to a slice of contained index values.
func resItems2Indexes(items []resultItem) []int {
	res := make([]int, 0, len(items))
	for i := 0; i < len(items); i++ {
		if items[i].set {
			res = append(res, items[i].index)
		}
	}
	return res
}

// KNNBruteArgs contain arguments for KNNBrute. All args must be specified.
type KNNBruteArgs struct {
	// Generator which returns all candidate points (bool=false signals end).
	PoolGenerator func() (Point, bool)
	// Number of indexes to return at most.
	K int
	// Specifies how scores are ranked. With a distance as ScoreFunc,
	// Ascending=true finds the nearest and Ascending=false the furthest.
	Ascending bool
	// ScoreFunc scores a single candidate.
	ScoreFunc func(Point) float64
}

// KNNBrute is a general-purpose linear search for finding the k best scoring
// candidates of a pool, returning their indexes (best first). See
// KNNBruteArgs (accepted argument) for more info.
func KNNBrute(args KNNBruteArgs) []int {
	if args.K <= 0 {
		return []int{}
	}
	res := make([]resultItem, args.K)
	// Worst possible score; used for unset slots.
	worst := math.Inf(1)
	if !args.Ascending {
		worst = math.Inf(-1)
	}
	for i := 0; i < args.K; i++ {
		res[i].score = worst
	}
	i := 0
	for {
		p, cont := args.PoolGenerator()
		if !cont {
			break
		}
		score := args.ScoreFunc(p)
		// NaN never ranks.
		if !math.IsNaN(score) {
			newSlot := &resultItem{i, score, true}
			bubble(newSlot, res, args.Ascending)
		}
		i++
	}
	return resItems2Indexes(res)
}

// KNNEuc finds 'k' nearest points to 'target' using euclidean distance. The
// return is a slice of indexes referencing the pool.
func KNNEuc(target Point, poolGenerator func() (Point, bool), k int) []int {
	return KNNBrute(KNNBruteArgs{
		PoolGenerator: poolGenerator,
		K:             k,
		Ascending:     true,
		ScoreFunc:     func(p Point) float64 { return mathutils.EuclideanDistance(target, p) },
	})
}

// NearestIndex gives the index of the point in 'pool' closest to 'target',
// or -1 if pool is empty.
func NearestIndex(target Point, pool []Point) int {
	res := KNNEuc(target, common.PointGenerator(pool), 1)
	if len(res) == 0 {
		return -1
	}
	return res[0]
}

// FarthestFromSetIndex gives the index of the point in 'pool' whose distance
// to its nearest member of 'set' is the largest, or -1 if pool is empty.
func FarthestFromSetIndex(pool []Point, set []Point) int {
	res := KNNBrute(KNNBruteArgs{
		PoolGenerator: common.PointGenerator(pool),
		K:             1,
		Ascending:     false,
		ScoreFunc:     func(p Point) float64 { return mathutils.NearestDistance(p, set) },
	})
	if len(res) == 0 {
		return -1
	}
	return res[0]
}
