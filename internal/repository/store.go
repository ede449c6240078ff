package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/septivank/hydro-telemetry-service/internal/db"
)

// ErrAlertNotFound is wrapped in a StoreError when resolving an unknown alert
var ErrAlertNotFound = errors.New("alert not found")

// StoreError reports a failure of the backing store
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// ReadingStore persists and lists sensor readings
type ReadingStore interface {
	InsertReading(ctx context.Context, reading *db.SensorReading) error
	// ListReadings returns readings most-recent-first. An empty deviceID matches every device.
	ListReadings(ctx context.Context, deviceID string, limit int) ([]db.SensorReading, error)
}

// AlertStore persists, lists and resolves alerts
type AlertStore interface {
	InsertAlert(ctx context.Context, alert *db.Alert) error
	// ListActiveAlerts returns unresolved alerts most-recent-first
	ListActiveAlerts(ctx context.Context, deviceID string) ([]db.Alert, error)
	// ResolveAlert marks an alert resolved. Resolving twice succeeds and keeps the first resolvedAt.
	ResolveAlert(ctx context.Context, id uuid.UUID, at time.Time) error
}

// ActuatorStore appends desired actuator states
type ActuatorStore interface {
	InsertActuatorState(ctx context.Context, state *db.ActuatorState) error
}
