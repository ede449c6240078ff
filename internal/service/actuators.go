package service

import (
	"context"
	"time"

	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/repository"
	"github.com/septivank/hydro-telemetry-service/internal/validator"
	"go.uber.org/zap"
)

// ActuatorService records desired actuator states. Nothing is delivered to devices;
// they are expected to poll.
type ActuatorService struct {
	store     repository.ActuatorStore
	validator *validator.Validator
	logger    *zap.Logger
	now       func() time.Time
}

// NewActuatorService creates a new actuator service. A nil now defaults to time.Now.
func NewActuatorService(store repository.ActuatorStore, validator *validator.Validator, logger *zap.Logger, now func() time.Time) *ActuatorService {
	if now == nil {
		now = time.Now
	}
	return &ActuatorService{store: store, validator: validator, logger: logger, now: now}
}

// Control validates and stores a desired actuator state
func (s *ActuatorService) Control(ctx context.Context, payload map[string]any) (*db.ActuatorState, error) {
	cmd, err := s.validator.ValidateActuatorCommand(payload)
	if err != nil {
		return nil, err
	}

	state := &db.ActuatorState{
		DeviceID:  cmd.DeviceID,
		Actuator:  cmd.Actuator,
		State:     cmd.State,
		Timestamp: s.now(),
	}
	if err := s.store.InsertActuatorState(ctx, state); err != nil {
		s.logger.Error("failed to save actuator state", zap.Error(err), zap.String("device_id", cmd.DeviceID))
		return nil, err
	}

	s.logger.Info("actuator state saved, device must sync",
		zap.String("device_id", state.DeviceID),
		zap.String("actuator", string(state.Actuator)),
		zap.Bool("state", state.State),
	)
	return state, nil
}

// Status returns a placeholder with every actuator off. It does not read device state.
func (s *ActuatorService) Status() map[db.Actuator]bool {
	status := make(map[db.Actuator]bool, len(db.Actuators()))
	for _, a := range db.Actuators() {
		status[a] = false
	}
	return status
}
