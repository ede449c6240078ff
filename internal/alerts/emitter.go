package alerts

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/septivank/hydro-telemetry-service/internal/anomaly"
	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/metrics"
	"github.com/septivank/hydro-telemetry-service/internal/repository"
	"go.uber.org/zap"
)

// Emission is the outcome of persisting one candidate. Alert is nil when Err is set.
type Emission struct {
	Candidate anomaly.Candidate
	Alert     *db.Alert
	Err       error
}

// Emitter turns classified candidates into stored alerts
type Emitter struct {
	store      repository.AlertStore
	classifier *anomaly.Classifier
	logger     *zap.Logger
	now        func() time.Time
}

// NewEmitter creates a new emitter. A nil now defaults to time.Now.
func NewEmitter(store repository.AlertStore, classifier *anomaly.Classifier, logger *zap.Logger, now func() time.Time) *Emitter {
	if now == nil {
		now = time.Now
	}
	return &Emitter{
		store:      store,
		classifier: classifier,
		logger:     logger,
		now:        now,
	}
}

// Build composes the alert record for a candidate without storing it
func (e *Emitter) Build(deviceID string, c anomaly.Candidate) *db.Alert {
	return &db.Alert{
		DeviceID:  deviceID,
		Parameter: c.Parameter.DisplayName(),
		Condition: c.Label(),
		Value:     c.Value,
		Threshold: c.Threshold,
		Message:   Message(c),
		Severity:  e.classifier.Classify(c.Value, c.Threshold),
		Timestamp: e.now(),
		Resolved:  false,
	}
}

// Emit stores one alert per candidate. A failed write is logged and reported in
// its Emission; it never stops the remaining candidates.
func (e *Emitter) Emit(ctx context.Context, deviceID string, candidates []anomaly.Candidate) []Emission {
	emissions := make([]Emission, 0, len(candidates))

	for _, c := range candidates {
		alert := e.Build(deviceID, c)

		if err := e.store.InsertAlert(ctx, alert); err != nil {
			e.logger.Error("failed to emit alert",
				zap.Error(err),
				zap.String("device_id", deviceID),
				zap.String("parameter", string(c.Parameter)),
				zap.Float64("value", c.Value),
				zap.Float64("threshold", c.Threshold),
				zap.String("severity", string(alert.Severity)),
			)
			metrics.AlertEmissionFailuresTotal.WithLabelValues(string(c.Parameter)).Inc()
			emissions = append(emissions, Emission{Candidate: c, Err: err})
			continue
		}

		e.logger.Info("alert generated",
			zap.String("device_id", deviceID),
			zap.String("alert_id", alert.ID.String()),
			zap.String("message", alert.Message),
			zap.String("severity", string(alert.Severity)),
		)
		metrics.AlertsEmittedTotal.WithLabelValues(string(c.Parameter), string(alert.Severity)).Inc()
		emissions = append(emissions, Emission{Candidate: c, Alert: alert})
	}

	return emissions
}

// Delivered returns the alerts that were stored, in candidate order
func Delivered(emissions []Emission) []db.Alert {
	out := make([]db.Alert, 0, len(emissions))
	for _, em := range emissions {
		if em.Alert != nil {
			out = append(out, *em.Alert)
		}
	}
	return out
}

// Message formats "<parameter> <condition>: <value> (umbral: <threshold>)"
func Message(c anomaly.Candidate) string {
	return fmt.Sprintf("%s %s: %s (umbral: %s)",
		c.Parameter.DisplayName(),
		c.Label(),
		formatNumber(c.Value),
		formatNumber(c.Threshold),
	)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
