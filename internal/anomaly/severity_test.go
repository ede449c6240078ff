package anomaly_test

import (
	"math"
	"testing"

	"github.com/septivank/hydro-telemetry-service/internal/anomaly"
	"github.com/septivank/hydro-telemetry-service/internal/db"
)

func TestClassify_Medium(t *testing.T) {
	classifier := anomaly.DefaultClassifier()

	diff := anomaly.PercentDiff(7.0, 6.5)
	if math.Abs(diff-7.6923) > 0.001 {
		t.Errorf("Expected ~7.69%%, got %f", diff)
	}

	if got := classifier.Classify(7.0, 6.5); got != db.SeverityMedium {
		t.Errorf("Expected medium, got %s", got)
	}
}

func TestClassify_Critical(t *testing.T) {
	classifier := anomaly.DefaultClassifier()

	if got := classifier.Classify(2000, 1500); got != db.SeverityCritical {
		t.Errorf("Expected critical, got %s", got)
	}
}

func TestClassify_Tiers(t *testing.T) {
	classifier := anomaly.DefaultClassifier()

	tests := []struct {
		name      string
		value     float64
		threshold float64
		want      db.Severity
	}{
		{"exactly ten percent", 110, 100, db.SeverityMedium},
		{"just above ten percent", 110.5, 100, db.SeverityHigh},
		{"exactly twenty percent", 120, 100, db.SeverityHigh},
		{"just above twenty percent", 120.5, 100, db.SeverityCritical},
		{"below threshold", 40, 50, db.SeverityHigh},
		{"far below threshold", 10, 50, db.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Classify(tt.value, tt.threshold); got != tt.want {
				t.Errorf("Classify(%v, %v) = %s, want %s", tt.value, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestClassify_CustomCutoffs(t *testing.T) {
	classifier := anomaly.NewClassifier(5, 50)

	if got := classifier.Classify(130, 100); got != db.SeverityHigh {
		t.Errorf("Expected high with custom cutoffs, got %s", got)
	}
}
