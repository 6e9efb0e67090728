/*
Test utils for the core and pkg packages. Contains a scripted random source
(so that "random" code paths can be pinned down exactly), a few prefab
datasets and assertions for properties every History must have.
*/
package testutils

import (
	"kstep/pkg/kmeans"
	"kstep/pkg/kmeans/common"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

type Point = common.Point

// Iface hint:
var _ common.RandSource = new(SeqRand)

// SeqRand is a common.RandSource that replays fixed values, cycling when it
// runs out. Intn values are reduced modulo n.
type SeqRand struct {
	Floats []float64
	Ints   []int

	floatDraws int
	intDraws   int
}

// Float64 gives the next scripted float (0 if none are scripted).
func (r *SeqRand) Float64() float64 {
	defer func() { r.floatDraws++ }()
	if len(r.Floats) == 0 {
		return 0
	}
	return r.Floats[r.floatDraws%len(r.Floats)]
}

// Intn gives the next scripted int modulo n (0 if none are scripted).
func (r *SeqRand) Intn(n int) int {
	defer func() { r.intDraws++ }()
	if len(r.Ints) == 0 {
		return 0
	}
	return r.Ints[r.intDraws%len(r.Ints)] % n
}

// Draws gives how many values were consumed so far.
func (r *SeqRand) Draws() int { return r.floatDraws + r.intDraws }

// Square gives the four-point example set: two vertical pairs 10 apart.
func Square() []Point {
	return []Point{{0, 0}, {0, 2}, {10, 0}, {10, 2}}
}

// FarAway gives a small set far outside the [-10, 10] reseed range, which
// keeps any additional centroid's cluster empty forever.
func FarAway() []Point {
	return []Point{{1000, 1000}, {1000, 1001}}
}

// SortedPoints returns a sorted copy of points, for multiset comparisons.
func SortedPoints(points []Point) []Point {
	res := common.ClonePoints(points)
	sort.Slice(res, func(i, j int) bool {
		if res[i][0] != res[j][0] {
			return res[i][0] < res[j][0]
		}
		return res[i][1] < res[j][1]
	})
	return res
}

// RequirePartition checks that every record of 'h' partitions 'points'
// exactly, and that centroid and cluster counts line up with 'maxK'.
func RequirePartition(t testing.TB, points []Point, h kmeans.History, maxK int) {
	t.Helper()
	require.NotEmpty(t, h, "history must have at least the initial record")
	want := SortedPoints(points)
	for i, rec := range h {
		require.Len(t, rec.Clusters, len(rec.Centroids), "record %d: clusters vs centroids", i)
		require.GreaterOrEqual(t, rec.K(), 1, "record %d", i)
		require.LessOrEqual(t, rec.K(), maxK, "record %d", i)
		require.LessOrEqual(t, rec.K(), len(points), "record %d", i)

		var all []Point
		for _, c := range rec.Clusters {
			all = append(all, c...)
		}
		require.Equal(t, want, SortedPoints(all), "record %d is not a partition", i)
	}
}
