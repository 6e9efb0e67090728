package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedMethod is returned for an initialization method that is
	// not one of the known Method values.
	ErrUnsupportedMethod = errors.New("unsupported initialization method")
	// ErrCentroidCount is wrapped by CentroidCountError.
	ErrCentroidCount = errors.New("initial centroid count does not match k")
	// ErrEmptyData is returned when there are no points to cluster.
	ErrEmptyData = errors.New("no data points to cluster")
	// ErrInvalidK is returned when the requested k is less than 1.
	ErrInvalidK = errors.New("k must be at least 1")
)

// CentroidCountError reports a Manual initialization where the number of
// supplied centroids differs from (clamped) k.
type CentroidCountError struct {
	Got  int
	Want int
}

func (e *CentroidCountError) Error() string {
	return fmt.Sprintf("number of initial centroids provided (%d) does not match k (%d)", e.Got, e.Want)
}

func (e *CentroidCountError) Unwrap() error { return ErrCentroidCount }
