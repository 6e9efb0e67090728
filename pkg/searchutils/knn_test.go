package searchutils

import (
	"kstep/pkg/kmeans/common"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBubble(t *testing.T) {
	insertee := resultItem{3, 3, true}
	res := []resultItem{
		{2, 2, true},
		{1, 1, true},
		{0, 0, true},
	}
	bubble(&insertee, res, false)
	if res[0].index != 3 || res[1].index != 2 || res[2].index != 1 {
		t.Errorf("unordered on bubble up: %v", res)
	}
	insertee = resultItem{0, 0, true}
	res = []resultItem{
		{1, 1, true},
		{2, 2, true},
		{3, 3, true},
	}
	bubble(&insertee, res, true)
	if res[0].index != 0 || res[1].index != 1 || res[2].index != 2 {
		t.Errorf("unordered on bubble down: %v", res)
	}
}

func TestBubbleKeepsFirstOnTie(t *testing.T) {
	res := []resultItem{{0, 1, true}, {}}
	insertee := resultItem{1, 1, true}
	bubble(&insertee, res, true)
	assert.Equal(t, 0, res[0].index)
	assert.Equal(t, 1, res[1].index)
}

func TestKNNEuc(t *testing.T) {
	pool := []Point{{5, 5}, {1, 1}, {3, 3}, {0, 1}}
	res := KNNEuc(Point{0, 0}, common.PointGenerator(pool), 3)
	assert.Equal(t, []int{3, 1, 2}, res)

	// k larger than the pool only yields what exists.
	res = KNNEuc(Point{0, 0}, common.PointGenerator(pool[:2]), 5)
	assert.Equal(t, []int{1, 0}, res)

	assert.Empty(t, KNNEuc(Point{0, 0}, common.PointGenerator(pool), 0))
}

func TestNearestIndex(t *testing.T) {
	centroids := []Point{{10, 0}, {-1, 0}, {1, 0}}
	// Exact tie between index 1 and 2 resolves to the lowest index.
	assert.Equal(t, 1, NearestIndex(Point{0, 0}, centroids))
	assert.Equal(t, 0, NearestIndex(Point{9, 9}, centroids))
	assert.Equal(t, -1, NearestIndex(Point{0, 0}, nil))
}

func TestFarthestFromSetIndex(t *testing.T) {
	pool := []Point{{0, 0}, {1, 0}, {5, 0}, {-5, 0}}
	set := []Point{{0, 0}}
	// {5,0} and {-5,0} tie; the first one wins.
	assert.Equal(t, 2, FarthestFromSetIndex(pool, set))

	set = append(set, Point{5, 0})
	assert.Equal(t, 3, FarthestFromSetIndex(pool, set))

	// Nothing chosen yet: every score is +Inf, so the first point is picked.
	assert.Equal(t, 0, FarthestFromSetIndex(pool, nil))
	assert.Equal(t, -1, FarthestFromSetIndex(nil, set))
}
