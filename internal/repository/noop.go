package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/septivank/hydro-telemetry-service/internal/db"
	"go.uber.org/zap"
)

// Noop is used when no database is configured. Writes are acknowledged and
// assigned an id, reads return nothing.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a store that keeps nothing
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) InsertReading(_ context.Context, reading *db.SensorReading) error {
	if reading.ID == uuid.Nil {
		reading.ID = uuid.New()
	}
	n.logger.Debug("noop store: reading received", zap.String("device_id", reading.DeviceID))
	return nil
}

func (n *Noop) ListReadings(context.Context, string, int) ([]db.SensorReading, error) {
	return []db.SensorReading{}, nil
}

func (n *Noop) InsertAlert(_ context.Context, alert *db.Alert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	n.logger.Debug("noop store: alert generated", zap.String("message", alert.Message))
	return nil
}

func (n *Noop) ListActiveAlerts(context.Context, string) ([]db.Alert, error) {
	return []db.Alert{}, nil
}

func (n *Noop) ResolveAlert(context.Context, uuid.UUID, time.Time) error {
	return nil
}

func (n *Noop) InsertActuatorState(_ context.Context, state *db.ActuatorState) error {
	if state.ID == uuid.Nil {
		state.ID = uuid.New()
	}
	n.logger.Debug("noop store: actuator state",
		zap.String("device_id", state.DeviceID),
		zap.String("actuator", string(state.Actuator)),
		zap.Bool("state", state.State),
	)
	return nil
}
