package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/septivank/hydro-telemetry-service/internal/alerts"
	"github.com/septivank/hydro-telemetry-service/internal/anomaly"
	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/ranges"
	"github.com/septivank/hydro-telemetry-service/internal/repository"
	"github.com/septivank/hydro-telemetry-service/internal/service"
	"github.com/septivank/hydro-telemetry-service/internal/validator"
	"go.uber.org/zap"
)

var errStoreDown = errors.New("store unavailable")

// memStore is an in-memory store. failAlertOn makes the n-th InsertAlert fail (1-based).
type memStore struct {
	readings    []db.SensorReading
	alerts      []db.Alert
	states      []db.ActuatorState
	alertCalls  int
	failAlertOn int
	failReads   bool
}

func (m *memStore) InsertReading(_ context.Context, r *db.SensorReading) error {
	if m.failReads {
		return &repository.StoreError{Op: "insert reading", Err: errStoreDown}
	}
	r.ID = uuid.New()
	m.readings = append(m.readings, *r)
	return nil
}

func (m *memStore) ListReadings(_ context.Context, deviceID string, limit int) ([]db.SensorReading, error) {
	if m.failReads {
		return nil, &repository.StoreError{Op: "list readings", Err: errStoreDown}
	}
	out := []db.SensorReading{}
	for i := len(m.readings) - 1; i >= 0 && len(out) < limit; i-- {
		if deviceID == "" || m.readings[i].DeviceID == deviceID {
			out = append(out, m.readings[i])
		}
	}
	return out, nil
}

func (m *memStore) InsertAlert(_ context.Context, a *db.Alert) error {
	m.alertCalls++
	if m.alertCalls == m.failAlertOn {
		return &repository.StoreError{Op: "insert alert", Err: errStoreDown}
	}
	a.ID = uuid.New()
	m.alerts = append(m.alerts, *a)
	return nil
}

func (m *memStore) ListActiveAlerts(_ context.Context, deviceID string) ([]db.Alert, error) {
	out := []db.Alert{}
	for i := len(m.alerts) - 1; i >= 0; i-- {
		a := m.alerts[i]
		if !a.Resolved && (deviceID == "" || a.DeviceID == deviceID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) ResolveAlert(_ context.Context, id uuid.UUID, at time.Time) error {
	for i := range m.alerts {
		if m.alerts[i].ID != id {
			continue
		}
		if !m.alerts[i].Resolved {
			m.alerts[i].Resolved = true
			m.alerts[i].ResolvedAt = &at
		}
		return nil
	}
	return &repository.StoreError{Op: "resolve alert", Err: repository.ErrAlertNotFound}
}

func (m *memStore) InsertActuatorState(_ context.Context, s *db.ActuatorState) error {
	s.ID = uuid.New()
	m.states = append(m.states, *s)
	return nil
}

type memCache struct {
	byDevice map[string]db.SensorReading
}

func (c *memCache) Get(_ context.Context, deviceID string) (*db.SensorReading, error) {
	r, ok := c.byDevice[deviceID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (c *memCache) Set(_ context.Context, r *db.SensorReading) error {
	if c.byDevice == nil {
		c.byDevice = map[string]db.SensorReading{}
	}
	c.byDevice[r.DeviceID] = *r
	c.byDevice[""] = *r
	return nil
}

type recordingPublisher struct {
	readings int
	alerts   int
	fail     bool
}

func (p *recordingPublisher) PublishReading(context.Context, *db.SensorReading) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.readings++
	return nil
}

func (p *recordingPublisher) PublishAlert(context.Context, *db.Alert) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.alerts++
	return nil
}

type clock struct {
	t time.Time
}

func (c *clock) Now() time.Time { return c.t }

func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock {
	return &clock{t: time.Date(2025, 12, 29, 10, 0, 0, 0, time.UTC)}
}

type fixture struct {
	store     *memStore
	cache     *memCache
	publisher *recordingPublisher
	clock     *clock
	telemetry *service.TelemetryService
}

func newFixture() *fixture {
	f := &fixture{
		store:     &memStore{},
		cache:     &memCache{},
		publisher: &recordingPublisher{},
		clock:     newClock(),
	}
	logger := zap.NewNop()
	emitter := alerts.NewEmitter(f.store, anomaly.DefaultClassifier(), logger, f.clock.Now)
	f.telemetry = service.NewTelemetryService(
		f.store,
		f.cache,
		validator.NewValidator(),
		anomaly.NewEvaluator(ranges.MustDefaultRegistry()),
		emitter,
		f.publisher,
		logger,
		f.clock.Now,
	)
	return f
}

func goodPayload(deviceID string) map[string]any {
	return map[string]any{
		"deviceId":   deviceID,
		"pH":         6.0,
		"ec":         1200.0,
		"waterTemp":  21.0,
		"airTemp":    24.0,
		"humidity":   60.0,
		"lightLevel": 15000.0,
	}
}

// allOutOfRange breaks every bounded parameter on the high side
func allOutOfRange(deviceID string) map[string]any {
	return map[string]any{
		"deviceId":   deviceID,
		"pH":         7.0,
		"ec":         2000.0,
		"waterTemp":  30.0,
		"airTemp":    35.0,
		"humidity":   90.0,
		"lightLevel": 0.0,
	}
}
