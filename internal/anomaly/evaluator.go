package anomaly

import (
	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/ranges"
)

// Candidate is a single out-of-range parameter found in a reading
type Candidate struct {
	Parameter ranges.Parameter
	Condition ranges.Condition
	Value     float64
	Threshold float64
}

// Label returns the localized condition, e.g. "alto" or "baja"
func (c Candidate) Label() string {
	return c.Parameter.Label(c.Condition)
}

// Evaluator compares readings against the configured ranges
type Evaluator struct {
	registry *ranges.Registry
}

// NewEvaluator creates a new evaluator backed by registry
func NewEvaluator(registry *ranges.Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Evaluate returns one candidate per parameter outside its range, in the
// fixed order pH, ec, waterTemp, airTemp, humidity. Values on a bound are in range.
func (e *Evaluator) Evaluate(reading *db.SensorReading) []Candidate {
	var candidates []Candidate

	for _, p := range ranges.Bounded() {
		bound, ok := e.registry.Bound(p)
		if !ok {
			continue
		}
		value, ok := reading.Value(p)
		if !ok {
			continue
		}

		switch {
		case value < bound.Min:
			candidates = append(candidates, Candidate{Parameter: p, Condition: ranges.Low, Value: value, Threshold: bound.Min})
		case value > bound.Max:
			candidates = append(candidates, Candidate{Parameter: p, Condition: ranges.High, Value: value, Threshold: bound.Max})
		}
	}

	return candidates
}
