package alerts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/septivank/hydro-telemetry-service/internal/alerts"
	"github.com/septivank/hydro-telemetry-service/internal/anomaly"
	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/ranges"
	"go.uber.org/zap"
)

// flakyStore fails the n-th InsertAlert call (1-based)
type flakyStore struct {
	failOn int
	calls  int
	saved  []db.Alert
}

func (s *flakyStore) InsertAlert(_ context.Context, alert *db.Alert) error {
	s.calls++
	if s.calls == s.failOn {
		return errors.New("store unavailable")
	}
	alert.ID = uuid.New()
	s.saved = append(s.saved, *alert)
	return nil
}

func (s *flakyStore) ListActiveAlerts(context.Context, string) ([]db.Alert, error) {
	return s.saved, nil
}

func (s *flakyStore) ResolveAlert(context.Context, uuid.UUID, time.Time) error {
	return nil
}

var fixedNow = time.Date(2025, 12, 29, 10, 0, 0, 0, time.UTC)

func newEmitter(store *flakyStore) *alerts.Emitter {
	return alerts.NewEmitter(store, anomaly.DefaultClassifier(), zap.NewNop(), func() time.Time { return fixedNow })
}

func TestMessage(t *testing.T) {
	c := anomaly.Candidate{Parameter: ranges.PH, Condition: ranges.High, Value: 7, Threshold: 6.5}

	if got := alerts.Message(c); got != "pH alto: 7 (umbral: 6.5)" {
		t.Errorf("Unexpected message: %q", got)
	}

	c = anomaly.Candidate{Parameter: ranges.WaterTemp, Condition: ranges.Low, Value: 15.25, Threshold: 18}
	if got := alerts.Message(c); got != "Temperatura del agua baja: 15.25 (umbral: 18)" {
		t.Errorf("Unexpected message: %q", got)
	}
}

func TestBuild(t *testing.T) {
	emitter := newEmitter(&flakyStore{})

	alert := emitter.Build("ESP32-001", anomaly.Candidate{
		Parameter: ranges.EC,
		Condition: ranges.High,
		Value:     2000,
		Threshold: 1500,
	})

	if alert.Parameter != "EC" || alert.Condition != "alta" {
		t.Errorf("Unexpected parameter/condition: %s %s", alert.Parameter, alert.Condition)
	}
	if alert.Severity != db.SeverityCritical {
		t.Errorf("Expected critical, got %s", alert.Severity)
	}
	if alert.Resolved {
		t.Error("New alerts must be unresolved")
	}
	if !alert.Timestamp.Equal(fixedNow) {
		t.Errorf("Expected timestamp %v, got %v", fixedNow, alert.Timestamp)
	}
}

func TestEmit_PartialFailure(t *testing.T) {
	store := &flakyStore{failOn: 3}
	emitter := newEmitter(store)

	candidates := []anomaly.Candidate{
		{Parameter: ranges.PH, Condition: ranges.High, Value: 8, Threshold: 6.5},
		{Parameter: ranges.EC, Condition: ranges.Low, Value: 100, Threshold: 800},
		{Parameter: ranges.WaterTemp, Condition: ranges.High, Value: 30, Threshold: 24},
		{Parameter: ranges.AirTemp, Condition: ranges.Low, Value: 10, Threshold: 18},
		{Parameter: ranges.Humidity, Condition: ranges.High, Value: 95, Threshold: 70},
	}

	emissions := emitter.Emit(context.Background(), "ESP32-001", candidates)

	if len(emissions) != 5 {
		t.Fatalf("Expected 5 emissions, got %d", len(emissions))
	}
	if emissions[2].Alert != nil || emissions[2].Err == nil {
		t.Errorf("Expected third emission to fail, got %+v", emissions[2])
	}
	if store.calls != 5 {
		t.Errorf("Expected every candidate to be attempted, got %d calls", store.calls)
	}

	delivered := alerts.Delivered(emissions)
	if len(delivered) != 4 {
		t.Fatalf("Expected 4 delivered alerts, got %d", len(delivered))
	}
	if delivered[2].Parameter != "Temperatura del aire" {
		t.Errorf("Expected order to be preserved, got %s", delivered[2].Parameter)
	}
}

func TestEmit_NoCandidates(t *testing.T) {
	store := &flakyStore{}
	emitter := newEmitter(store)

	emissions := emitter.Emit(context.Background(), "ESP32-001", nil)

	if len(emissions) != 0 || store.calls != 0 {
		t.Errorf("Expected no store writes, got %d emissions, %d calls", len(emissions), store.calls)
	}
}
