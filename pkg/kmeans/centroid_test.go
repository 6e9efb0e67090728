package kmeans

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays values; a small local stand-in for core/testutils.SeqRand
// (which can't be imported here without a cycle).
type scriptedRand struct {
	floats []float64
	ints   []int
	draws  int
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[r.draws%len(r.floats)]
	r.draws++
	return v
}

func (r *scriptedRand) Intn(n int) int {
	v := r.ints[r.draws%len(r.ints)] % n
	r.draws++
	return v
}

var square = []Point{{0, 0}, {0, 2}, {10, 0}, {10, 2}}

func TestInitRandomAllPoints(t *testing.T) {
	rnd := &scriptedRand{floats: []float64{0.5}}
	got, err := InitCentroids(InitArgs{Points: square, K: 4, Method: MethodRandom, Rand: rnd})
	require.NoError(t, err)
	assert.Equal(t, square, got)
	assert.Equal(t, 0, rnd.draws, "the shortcut must not consume randomness")

	got[0] = Point{99, 99}
	assert.Equal(t, Point{0, 0}, square[0], "centroids must not alias the input")
}

func TestInitRandomInBounds(t *testing.T) {
	rnd := &scriptedRand{floats: []float64{0.1, 0.5, 0.9, 0.0}}
	got, err := InitCentroids(InitArgs{Points: square, K: 2, Method: MethodRandom, Rand: rnd})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 1.0, got[0][0], 1e-12)
	assert.InDelta(t, 1.0, got[0][1], 1e-12)
	assert.InDelta(t, 9.0, got[1][0], 1e-12)
	assert.InDelta(t, 0.0, got[1][1], 1e-12)
}

func TestInitRandomEmpty(t *testing.T) {
	_, err := InitCentroids(InitArgs{Points: nil, K: 1, Method: MethodRandom, Rand: &scriptedRand{floats: []float64{0}}})
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestInitFarthestFirst(t *testing.T) {
	rnd := &scriptedRand{ints: []int{0}}
	got, err := InitCentroids(InitArgs{Points: square, K: 3, Method: MethodFarthestFirst, Rand: rnd})
	require.NoError(t, err)
	// {10,2} is farthest from {0,0}; then {0,2} and {10,0} tie at 2 and the
	// first one in iteration order wins.
	assert.Equal(t, []Point{{0, 0}, {10, 2}, {0, 2}}, got)
	assert.Equal(t, 1, rnd.draws, "only the first pick is random")
}

func TestInitKMeansPP(t *testing.T) {
	// Weights from {0,0}: 0, 4, 100, 104 -> cumulative 0, .019, .5, 1.
	for _, tc := range []struct {
		r    float64
		want Point
	}{
		{0.01, Point{0, 2}},
		{0.3, Point{10, 0}},
		{0.6, Point{10, 2}},
		{0.99, Point{10, 2}},
	} {
		rnd := &scriptedRand{ints: []int{0}, floats: []float64{tc.r}}
		got, err := initKMeansPP(square, 2, rnd)
		require.NoError(t, err)
		assert.Equal(t, []Point{{0, 0}, tc.want}, got, "r=%v", tc.r)
	}
}

func TestInitKMeansPPDuplicates(t *testing.T) {
	pts := []Point{{1, 1}, {1, 1}, {1, 1}}
	rnd := &scriptedRand{ints: []int{2}, floats: []float64{0.5}}
	got, err := InitCentroids(InitArgs{Points: pts, K: 3, Method: MethodKMeansPP, Rand: rnd})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestPickCumulativeRounding(t *testing.T) {
	weights := []float64{0.5, 0.4999999, 0}
	cumulative := []float64{0.5, 0.9999999, 0.9999999}
	assert.Equal(t, 0, pickCumulative(cumulative, weights, 0.2))
	assert.Equal(t, 1, pickCumulative(cumulative, weights, 0.99999995))
}

func TestInitManual(t *testing.T) {
	rnd := &scriptedRand{floats: []float64{0.5}}
	manual := []Point{{0, 0}, {10, 0}}
	got, err := InitCentroids(InitArgs{Points: square, K: 2, Method: MethodManual, InitialCentroids: manual, Rand: rnd})
	require.NoError(t, err)
	assert.Equal(t, manual, got)
	assert.Equal(t, 0, rnd.draws)

	_, err = InitCentroids(InitArgs{Points: square, K: 3, Method: MethodManual, InitialCentroids: manual})
	require.ErrorIs(t, err, ErrCentroidCount)
	var cce *CentroidCountError
	require.True(t, errors.As(err, &cce))
	assert.Equal(t, 2, cce.Got)
	assert.Equal(t, 3, cce.Want)
	assert.Contains(t, err.Error(), "(2) does not match k (3)")
}

func TestInitUnsupported(t *testing.T) {
	_, err := InitCentroids(InitArgs{Points: square, K: 2, Method: Method(42)})
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestAssignClusters(t *testing.T) {
	clusters := AssignClusters(square, []Point{{0, 0}, {10, 0}})
	assert.Equal(t, []Cluster{{{0, 0}, {0, 2}}, {{10, 0}, {10, 2}}}, clusters)

	// k=1 takes everything.
	clusters = AssignClusters(square, []Point{{100, 100}})
	assert.Equal(t, []Cluster{Cluster(square)}, clusters)

	// Empty clusters stay non-nil.
	clusters = AssignClusters(square, []Point{{0, 0}, {500, 500}})
	require.Len(t, clusters, 2)
	assert.NotNil(t, clusters[1])
	assert.Empty(t, clusters[1])
}

func TestAssignClustersTie(t *testing.T) {
	// {0,0} is exactly 1 from both centroids; lowest index wins.
	clusters := AssignClusters([]Point{{0, 0}}, []Point{{1, 0}, {-1, 0}})
	assert.Len(t, clusters[0], 1)
	assert.Empty(t, clusters[1])

	clusters = AssignClusters([]Point{{0, 0}}, []Point{{0, -3}, {3, 0}, {0, 3}})
	assert.Len(t, clusters[0], 1)
}

func TestUpdateCentroids(t *testing.T) {
	rnd := &scriptedRand{floats: []float64{0.75, 0.25}}
	got := UpdateCentroids([]Cluster{{{0, 0}, {0, 2}}, {}, {{4, 4}}}, rnd)
	require.Len(t, got, 3)
	assert.Equal(t, Point{0, 1}, got[0])
	assert.Equal(t, Point{5, -5}, got[1])
	assert.Equal(t, Point{4, 4}, got[2])
	assert.Equal(t, 2, rnd.draws)
}

func TestHasConverged(t *testing.T) {
	a := []Point{{0, 0}, {5, 5}}
	assert.True(t, HasConverged(a, a, DefaultTolerance))
	assert.True(t, HasConverged(a, []Point{{0.5e-4, 0}, {5, 5}}, DefaultTolerance))
	assert.False(t, HasConverged(a, []Point{{2e-4, 0}, {5, 5}}, DefaultTolerance))
	assert.True(t, HasConverged(nil, nil, DefaultTolerance))
	assert.False(t, HasConverged(a, a[:1], DefaultTolerance))
	// Positional: a swap is movement.
	assert.False(t, HasConverged(a, []Point{{5, 5}, {0, 0}}, DefaultTolerance))
	// NaN distances are never within tolerance.
	nan := []Point{{math.NaN(), 0}, {5, 5}}
	assert.False(t, HasConverged(a, nan, DefaultTolerance))
	assert.False(t, HasConverged(nan, nan, DefaultTolerance))
}

func TestAssignClustersNaNCentroid(t *testing.T) {
	got := AssignClusters(square, []Point{{math.NaN(), 0}})
	require.Len(t, got, 1)
	assert.Equal(t, Cluster(square), got[0])
}

func TestMethodNames(t *testing.T) {
	for _, m := range Methods() {
		parsed, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	assert.Equal(t, "Farthest First", MethodFarthestFirst.String())
	assert.Equal(t, "KMeans++", MethodKMeansPP.String())

	_, err := ParseMethod("random")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
	assert.Equal(t, "Method(9)", Method(9).String())
}

func TestMethodJSON(t *testing.T) {
	var v struct {
		M Method `json:"m"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"m":"Manual"}`), &v))
	assert.Equal(t, MethodManual, v.M)
	assert.Error(t, json.Unmarshal([]byte(`{"m":"Bogus"}`), &v))

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"m":"Manual"}`, string(b))
}

func TestHistoryHelpers(t *testing.T) {
	var empty History
	_, ok := empty.Last()
	assert.False(t, ok)
	assert.False(t, empty.Converged(DefaultTolerance))
	assert.Equal(t, 0, empty.Steps())

	h := History{
		newRecord([]Point{{0, 0}}, []Cluster{{}}),
		newRecord([]Point{{0, 0}}, []Cluster{{}}),
	}
	last, ok := h.Last()
	assert.True(t, ok)
	assert.Equal(t, 1, last.K())
	assert.True(t, h.Converged(DefaultTolerance))
	assert.Equal(t, 1, h.Steps())
}
