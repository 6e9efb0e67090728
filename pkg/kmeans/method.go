package kmeans

import "fmt"

// Method selects how the initial centroids are produced.
type Method int

const (
	// MethodRandom draws centroids uniformly inside the bounding box of the data.
	MethodRandom Method = iota
	// MethodFarthestFirst repeatedly picks the point farthest from the chosen centroids.
	MethodFarthestFirst
	// MethodKMeansPP samples points weighted by squared distance to the chosen centroids.
	MethodKMeansPP
	// MethodManual uses centroids supplied by the caller.
	MethodManual
)

// Wire names, as used by the API.
var methodNames = map[Method]string{
	MethodRandom:        "Random",
	MethodFarthestFirst: "Farthest First",
	MethodKMeansPP:      "KMeans++",
	MethodManual:        "Manual",
}

// Methods lists all known methods in declaration order.
func Methods() []Method {
	return []Method{MethodRandom, MethodFarthestFirst, MethodKMeansPP, MethodManual}
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a wire name onto a Method.
func ParseMethod(s string) (Method, error) {
	for _, m := range Methods() {
		if methodNames[m] == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
}

// UnmarshalText makes Method usable directly in decoded config and JSON.
func (m *Method) UnmarshalText(b []byte) error {
	parsed, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText is the counterpart of UnmarshalText.
func (m Method) MarshalText() ([]byte, error) {
	s, ok := methodNames[m]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMethod, int(m))
	}
	return []byte(s), nil
}
