package kmeans

import (
	"kstep/pkg/kmeans/common"
)

// Aliases for readability.
type Point = common.Point
type RandSource = common.RandSource

// Cluster holds the points currently assigned to one centroid. May be empty.
type Cluster []Point

// Record is the state of a run after one step: a centroid set and the
// cluster set that is positionally aligned with it (Clusters[i] belongs to
// Centroids[i]). Records own their slices; nothing is shared between them.
type Record struct {
	Centroids []Point
	Clusters  []Cluster
}

// K gives the number of centroids in the record.
func (r Record) K() int { return len(r.Centroids) }

// History is the append-only trace of a run. The first record is the state
// right after initialization, the last is either converged or the state at
// the iteration cap.
type History []Record

// Last gives the final record. The bool is false for an empty History.
func (h History) Last() (Record, bool) {
	if len(h) == 0 {
		return Record{}, false
	}
	return h[len(h)-1], true
}

// Steps gives the number of update steps taken (records after the initial one).
func (h History) Steps() int {
	if len(h) == 0 {
		return 0
	}
	return len(h) - 1
}

// Converged reports whether the run stopped because the centroids settled,
// i.e. whether the last two centroid sets are within 'tol' of each other.
// A History with fewer than two records never took a step and is not
// considered converged.
func (h History) Converged(tol float64) bool {
	if len(h) < 2 {
		return false
	}
	return HasConverged(h[len(h)-2].Centroids, h[len(h)-1].Centroids, tol)
}

// cloneClusters deep copies a cluster set.
func cloneClusters(clusters []Cluster) []Cluster {
	res := make([]Cluster, len(clusters))
	for i, c := range clusters {
		res[i] = common.ClonePoints(c)
	}
	return res
}

// newRecord snapshots centroids and clusters by value.
func newRecord(centroids []Point, clusters []Cluster) Record {
	return Record{
		Centroids: common.ClonePoints(centroids),
		Clusters:  cloneClusters(clusters),
	}
}
