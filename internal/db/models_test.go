package db_test

import (
	"math"
	"testing"

	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/ranges"
)

func TestSensorReadingValue(t *testing.T) {
	r := db.SensorReading{PH: 6.1, EC: math.NaN(), LightLevel: 300}

	if v, ok := r.Value(ranges.PH); !ok || v != 6.1 {
		t.Errorf("Expected pH 6.1, got %v %v", v, ok)
	}
	if _, ok := r.Value(ranges.EC); ok {
		t.Error("Expected NaN EC to count as missing")
	}
	if v, ok := r.Value(ranges.LightLevel); !ok || v != 300 {
		t.Errorf("Expected lightLevel 300, got %v %v", v, ok)
	}
	if _, ok := r.Value(ranges.Parameter("co2")); ok {
		t.Error("Expected unknown parameter to be missing")
	}
}
