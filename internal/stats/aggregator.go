package stats

import (
	"encoding/json"
	"math"
	"time"

	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/ranges"
)

// Summary holds aggregate values for one parameter
type Summary struct {
	Avg     float64 `json:"avg"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Current float64 `json:"current"`
}

// Aggregate computes avg/min/max over readings ordered most-recent-first.
// Current is the first value present, not the latest timestamp. Returns nil when
// no reading carries the parameter. No time filtering is done here.
func Aggregate(readings []db.SensorReading, p ranges.Parameter) *Summary {
	var (
		count    int
		sum      float64
		min, max float64
		current  float64
	)

	for _, r := range readings {
		v, ok := r.Value(p)
		if !ok {
			continue
		}
		if count == 0 {
			current, min, max = v, v, v
		}
		sum += v
		min = math.Min(min, v)
		max = math.Max(max, v)
		count++
	}

	if count == 0 {
		return nil
	}

	return &Summary{
		Avg:     round2(sum / float64(count)),
		Min:     round2(min),
		Max:     round2(max),
		Current: current,
	}
}

// WindowStats is the per-parameter summary of a time window
type WindowStats struct {
	Parameters map[ranges.Parameter]*Summary
	DataPoints int
}

// MarshalJSON flattens the per-parameter summaries next to dataPoints
func (ws *WindowStats) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(ws.Parameters)+1)
	for p, s := range ws.Parameters {
		out[string(p)] = s
	}
	out["dataPoints"] = ws.DataPoints
	return json.Marshal(out)
}

// Cutoff returns the start of a window of the given hours ending at now
func Cutoff(now time.Time, hours int) time.Time {
	return now.Add(-time.Duration(hours) * time.Hour)
}

// FilterSince keeps readings strictly newer than cutoff, preserving order
func FilterSince(readings []db.SensorReading, cutoff time.Time) []db.SensorReading {
	out := make([]db.SensorReading, 0, len(readings))
	for _, r := range readings {
		if r.Timestamp.After(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// Summarize aggregates every measured parameter. It returns nil for an empty input.
func Summarize(readings []db.SensorReading) *WindowStats {
	if len(readings) == 0 {
		return nil
	}

	ws := &WindowStats{
		Parameters: make(map[ranges.Parameter]*Summary, len(ranges.All())),
		DataPoints: len(readings),
	}
	for _, p := range ranges.All() {
		ws.Parameters[p] = Aggregate(readings, p)
	}
	return ws
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
