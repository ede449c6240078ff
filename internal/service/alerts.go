package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/metrics"
	"github.com/septivank/hydro-telemetry-service/internal/repository"
	"go.uber.org/zap"
)

// AlertService lists and resolves alerts
type AlertService struct {
	store  repository.AlertStore
	logger *zap.Logger
	now    func() time.Time
}

// NewAlertService creates a new alert service. A nil now defaults to time.Now.
func NewAlertService(store repository.AlertStore, logger *zap.Logger, now func() time.Time) *AlertService {
	if now == nil {
		now = time.Now
	}
	return &AlertService{store: store, logger: logger, now: now}
}

// Active returns unresolved alerts, most recent first. An empty deviceID matches every device.
func (s *AlertService) Active(ctx context.Context, deviceID string) ([]db.Alert, error) {
	return s.store.ListActiveAlerts(ctx, deviceID)
}

// Resolve marks an alert resolved. Resolving an already resolved alert succeeds.
// An id that is not a UUID cannot exist and is reported like any unknown alert.
func (s *AlertService) Resolve(ctx context.Context, id string) error {
	alertID, err := uuid.Parse(id)
	if err != nil {
		return &repository.StoreError{
			Op:  "resolve alert",
			Err: fmt.Errorf("%w: %q", repository.ErrAlertNotFound, id),
		}
	}

	if err := s.store.ResolveAlert(ctx, alertID, s.now()); err != nil {
		s.logger.Error("failed to resolve alert", zap.Error(err), zap.String("alert_id", id))
		return err
	}

	metrics.AlertsResolvedTotal.Inc()
	s.logger.Info("alert resolved", zap.String("alert_id", id))
	return nil
}
