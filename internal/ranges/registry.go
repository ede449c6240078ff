package ranges

import (
	"fmt"
)

// RangeBound is the inclusive acceptable interval for a parameter
type RangeBound struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within [Min, Max]
func (b RangeBound) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// DefaultBounds returns the documented default ranges.
func DefaultBounds() map[Parameter]RangeBound {
	return map[Parameter]RangeBound{
		PH:        {Min: 5.5, Max: 6.5},
		EC:        {Min: 800, Max: 1500},
		WaterTemp: {Min: 18, Max: 24},
		AirTemp:   {Min: 18, Max: 28},
		Humidity:  {Min: 50, Max: 70},
	}
}

// Registry holds the configured acceptable ranges. It is immutable after construction
// and safe to share between goroutines.
type Registry struct {
	bounds map[Parameter]RangeBound
}

// NewRegistry builds a registry covering every bounded parameter.
// A bound with a zero threshold or min > max is rejected.
func NewRegistry(bounds map[Parameter]RangeBound) (*Registry, error) {
	r := &Registry{bounds: make(map[Parameter]RangeBound, len(bounds))}
	for _, p := range Bounded() {
		b, ok := bounds[p]
		if !ok {
			return nil, fmt.Errorf("missing range for parameter %s", p)
		}
		if err := CheckBound(b); err != nil {
			return nil, fmt.Errorf("invalid range for parameter %s: %w", p, err)
		}
		r.bounds[p] = b
	}
	return r, nil
}

// MustDefaultRegistry returns a registry with the documented defaults
func MustDefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultBounds())
	if err != nil {
		panic(err)
	}
	return r
}

// CheckBound validates a single bound: thresholds must be non-zero and ordered
func CheckBound(b RangeBound) error {
	if b.Min == 0 || b.Max == 0 {
		return fmt.Errorf("zero threshold [%v, %v]", b.Min, b.Max)
	}
	if b.Min > b.Max {
		return fmt.Errorf("min %v greater than max %v", b.Min, b.Max)
	}
	return nil
}

// Bound returns the range for p. It is total over Bounded(); other parameters
// return the zero bound and false.
func (r *Registry) Bound(p Parameter) (RangeBound, bool) {
	b, ok := r.bounds[p]
	return b, ok
}

// Snapshot returns a copy of all bounds
func (r *Registry) Snapshot() map[Parameter]RangeBound {
	out := make(map[Parameter]RangeBound, len(r.bounds))
	for k, v := range r.bounds {
		out[k] = v
	}
	return out
}
