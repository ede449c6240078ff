package anomaly

import (
	"math"

	"github.com/septivank/hydro-telemetry-service/internal/db"
)

// Classifier assigns a severity tier from the relative deviation beyond a threshold
type Classifier struct {
	highPercent     float64
	criticalPercent float64
}

// NewClassifier creates a classifier. Deviations above criticalPercent are critical,
// above highPercent are high, anything else is medium.
func NewClassifier(highPercent, criticalPercent float64) *Classifier {
	return &Classifier{
		highPercent:     highPercent,
		criticalPercent: criticalPercent,
	}
}

// DefaultClassifier uses the 10% / 20% cutoffs
func DefaultClassifier() *Classifier {
	return NewClassifier(10, 20)
}

// PercentDiff returns |value - threshold| / |threshold| * 100. threshold must be non-zero.
func PercentDiff(value, threshold float64) float64 {
	return math.Abs(value-threshold) / math.Abs(threshold) * 100
}

// Classify returns the severity for value having crossed threshold
func (c *Classifier) Classify(value, threshold float64) db.Severity {
	diff := PercentDiff(value, threshold)

	switch {
	case diff > c.criticalPercent:
		return db.SeverityCritical
	case diff > c.highPercent:
		return db.SeverityHigh
	default:
		return db.SeverityMedium
	}
}
