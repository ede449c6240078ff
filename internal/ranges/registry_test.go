package ranges_test

import (
	"testing"

	"github.com/septivank/hydro-telemetry-service/internal/ranges"
)

func TestNewRegistry_Defaults(t *testing.T) {
	registry, err := ranges.NewRegistry(ranges.DefaultBounds())
	if err != nil {
		t.Fatalf("Expected default bounds to be valid, got: %v", err)
	}

	for _, p := range ranges.Bounded() {
		if _, ok := registry.Bound(p); !ok {
			t.Errorf("Expected bound for %s", p)
		}
	}

	ec, _ := registry.Bound(ranges.EC)
	if ec.Min != 800 || ec.Max != 1500 {
		t.Errorf("Unexpected EC bound: %+v", ec)
	}
}

func TestNewRegistry_MissingParameter(t *testing.T) {
	bounds := ranges.DefaultBounds()
	delete(bounds, ranges.Humidity)

	if _, err := ranges.NewRegistry(bounds); err == nil {
		t.Error("Expected error for missing humidity bound")
	}
}

func TestNewRegistry_ZeroThreshold(t *testing.T) {
	bounds := ranges.DefaultBounds()
	bounds[ranges.PH] = ranges.RangeBound{Min: 0, Max: 6.5}

	if _, err := ranges.NewRegistry(bounds); err == nil {
		t.Error("Expected error for zero threshold")
	}
}

func TestRegistry_LightLevelUnbounded(t *testing.T) {
	registry := ranges.MustDefaultRegistry()

	if _, ok := registry.Bound(ranges.LightLevel); ok {
		t.Error("lightLevel must not have a range")
	}
}

func TestRegistry_SnapshotIsCopy(t *testing.T) {
	registry := ranges.MustDefaultRegistry()

	snapshot := registry.Snapshot()
	snapshot[ranges.PH] = ranges.RangeBound{Min: 1, Max: 2}

	ph, _ := registry.Bound(ranges.PH)
	if ph.Min != 5.5 {
		t.Errorf("Registry mutated through snapshot: %+v", ph)
	}
}

func TestParameterLabels(t *testing.T) {
	tests := []struct {
		param ranges.Parameter
		cond  ranges.Condition
		want  string
	}{
		{ranges.PH, ranges.Low, "bajo"},
		{ranges.PH, ranges.High, "alto"},
		{ranges.EC, ranges.Low, "baja"},
		{ranges.Humidity, ranges.High, "alta"},
	}

	for _, tt := range tests {
		if got := tt.param.Label(tt.cond); got != tt.want {
			t.Errorf("%s %s: expected %s, got %s", tt.param, tt.cond, tt.want, got)
		}
	}
}
