package kmeans

import (
	"kstep/pkg/mathutils"
	"kstep/pkg/searchutils"
)

// Range used when an empty cluster is given a new centroid. It is fixed and
// independent of the data's own bounds.
const (
	ReseedMin = -10.0
	ReseedMax = 10.0
)

// AssignClusters partitions points by nearest centroid (euclidean). Points
// equally close to several centroids go to the lowest index. The result has
// one (possibly empty, never nil) cluster per centroid. A point with no
// comparable distance (every distance NaN) goes to the first cluster.
func AssignClusters(points []Point, centroids []Point) []Cluster {
	clusters := make([]Cluster, len(centroids))
	for i := range clusters {
		clusters[i] = Cluster{}
	}
	if len(centroids) == 0 {
		return clusters
	}
	for _, p := range points {
		i := searchutils.NearestIndex(p, centroids)
		if i < 0 {
			i = 0
		}
		clusters[i] = append(clusters[i], p)
	}
	return clusters
}

// UpdateCentroids computes a new centroid set from clusters, each centroid
// being the mean of its cluster. An empty cluster gets a point drawn
// uniformly from [ReseedMin, ReseedMax] on each axis.
func UpdateCentroids(clusters []Cluster, rnd RandSource) []Point {
	res := make([]Point, len(clusters))
	for i, c := range clusters {
		if mean, ok := mathutils.Mean(c); ok {
			res[i] = mean
			continue
		}
		res[i] = Point{
			mathutils.Lerp(ReseedMin, ReseedMax, rnd.Float64()),
			mathutils.Lerp(ReseedMin, ReseedMax, rnd.Float64()),
		}
	}
	return res
}
