package datagen

import (
	"kstep/pkg/kmeans/common"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformBounds(t *testing.T) {
	pts := Uniform(UniformArgs{N: 500, Rand: common.NewRand(7)})
	assert.Len(t, pts, 500)
	for _, p := range pts {
		assert.GreaterOrEqual(t, p[0], DefaultMin)
		assert.Less(t, p[0], DefaultMax)
		assert.GreaterOrEqual(t, p[1], DefaultMin)
		assert.Less(t, p[1], DefaultMax)
	}
}

func TestUniformCustomRange(t *testing.T) {
	pts := Uniform(UniformArgs{N: 50, Min: 100, Max: 101, Rand: common.NewRand(7)})
	for _, p := range pts {
		assert.GreaterOrEqual(t, p[0], 100.0)
		assert.Less(t, p[1], 101.0)
	}
}

func TestUniformSeeded(t *testing.T) {
	a := Uniform(UniformArgs{N: 10, Rand: common.NewRand(3)})
	b := Uniform(UniformArgs{N: 10, Rand: common.NewRand(3)})
	assert.Equal(t, a, b)
}

func TestUniformEmpty(t *testing.T) {
	assert.Empty(t, Uniform(UniformArgs{N: 0, Rand: common.NewRand(1)}))
	assert.NotNil(t, Uniform(UniformArgs{N: -1, Rand: common.NewRand(1)}))
}

func TestBlobs(t *testing.T) {
	centers := []Point{{0, 0}, {50, 50}}
	pts := Blobs(BlobsArgs{Centers: centers, PerBlob: 20, Spread: 1, Rand: common.NewRand(11)})
	assert.Len(t, pts, 40)
	for i, p := range pts {
		c := centers[i/20]
		assert.InDelta(t, c[0], p[0], 1)
		assert.InDelta(t, c[1], p[1], 1)
	}
}
