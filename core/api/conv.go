package api

import (
	"errors"
	"fmt"
	"kstep/cfg"
	"kstep/pkg/kmeans"
	"kstep/pkg/kmeans/common"
)

// Body of POST /api/kmeans and POST /api/kmeans/chart. Points are plain
// number arrays on the wire so that bad lengths can be reported per point.
type kmeansRequest struct {
	Data [][]float64 `json:"data"`
	K    int         `json:"k"`
	// Defaults to "Random" when omitted.
	Method           *string     `json:"initialization_method"`
	InitialCentroids [][]float64 `json:"initial_centroids"`
	// Optional; falls back to the configured seed. An explicit 0 is
	// rejected, since 0 selects a clock seed and would not reproduce.
	Seed *int64 `json:"seed"`
}

var errZeroSeed = errors.New("seed must be non-zero")

// Body of a successful POST /api/kmeans.
type kmeansResponse struct {
	History []historyStep `json:"history"`
}

// historyStep is one record on the wire: [centroids, clusters].
type historyStep [2]interface{}

type datasetResponse struct {
	Data []common.Point `json:"data"`
}

// missingRequired reports an absent or empty data list, or an absent (zero) k.
func (req *kmeansRequest) missingRequired() bool {
	return len(req.Data) == 0 || req.K == 0
}

func (req *kmeansRequest) methodName() string {
	if req.Method == nil {
		return kmeans.MethodRandom.String()
	}
	return *req.Method
}

// conv [][]float64 -> []common.Point. 'field' names the list in errors.
func toPoints(field string, raw [][]float64) ([]common.Point, error) {
	res := make([]common.Point, len(raw))
	for i, xy := range raw {
		p, err := common.NewPoint(xy)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		res[i] = p
	}
	return res, nil
}

// toRunArgs converts a request into engine args, applying the limits in 'c'.
// Errors here are client errors.
func (req *kmeansRequest) toRunArgs(c cfg.KMeansConfig) (kmeans.RunArgs, error) {
	method, err := kmeans.ParseMethod(req.methodName())
	if err != nil {
		return kmeans.RunArgs{}, err
	}
	points, err := toPoints("data", req.Data)
	if err != nil {
		return kmeans.RunArgs{}, err
	}
	initial, err := toPoints("initial_centroids", req.InitialCentroids)
	if err != nil {
		return kmeans.RunArgs{}, err
	}
	seed := c.Seed
	if req.Seed != nil {
		if *req.Seed == 0 {
			return kmeans.RunArgs{}, errZeroSeed
		}
		seed = *req.Seed
	}
	return kmeans.RunArgs{
		Points:           points,
		K:                req.K,
		Method:           method,
		InitialCentroids: initial,
		Rand:             common.NewRand(seed),
		MaxIterations:    c.MaxIterations,
		Tolerance:        c.Tolerance,
		MaxK:             c.MaxK,
	}, nil
}

// conv kmeans.History -> wire form.
func historyToSteps(h kmeans.History) []historyStep {
	res := make([]historyStep, len(h))
	for i, rec := range h {
		res[i] = historyStep{rec.Centroids, rec.Clusters}
	}
	return res
}
