package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/septivank/hydro-telemetry-service/internal/alerts"
	"github.com/septivank/hydro-telemetry-service/internal/anomaly"
	"github.com/septivank/hydro-telemetry-service/internal/cache"
	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/logging"
	"github.com/septivank/hydro-telemetry-service/internal/metrics"
	"github.com/septivank/hydro-telemetry-service/internal/mq"
	"github.com/septivank/hydro-telemetry-service/internal/repository"
	"github.com/septivank/hydro-telemetry-service/internal/stats"
	"github.com/septivank/hydro-telemetry-service/internal/validator"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 1000
	DefaultStatsHours   = 24
	MaxStatsHours       = 168

	// statsSampleSize is how many recent readings the stats window is cut from
	statsSampleSize = 1000
)

// Ingestion sources, used as a metrics label
const (
	SourceHTTP = "http"
	SourceAMQP = "amqp"
)

// ErrNotFound is returned when a query has no data
var ErrNotFound = errors.New("no data found")

// IngestResult is the outcome of ingesting one reading
type IngestResult struct {
	Reading *db.SensorReading
	// Alerts holds only the alerts that were stored, in evaluation order
	Alerts    []db.Alert
	Emissions []alerts.Emission
}

// StatsReport is the stats of one time window. Stats is nil when the window is empty.
type StatsReport struct {
	Hours int
	Stats *stats.WindowStats
}

// Period renders the window length as "<hours> horas"
func (r *StatsReport) Period() string {
	return fmt.Sprintf("%d horas", r.Hours)
}

// IngestMessage is the AMQP telemetry envelope. A body without "payload" is
// treated as a bare reading.
type IngestMessage struct {
	RequestID string         `json:"request_id"`
	Payload   map[string]any `json:"payload"`
}

// TelemetryService runs the ingestion pipeline and the reading queries
type TelemetryService struct {
	readings  repository.ReadingStore
	latest    cache.LatestCache
	validator *validator.Validator
	evaluator *anomaly.Evaluator
	emitter   *alerts.Emitter
	publisher mq.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewTelemetryService creates a new telemetry service. A nil now defaults to time.Now.
func NewTelemetryService(
	readings repository.ReadingStore,
	latest cache.LatestCache,
	validator *validator.Validator,
	evaluator *anomaly.Evaluator,
	emitter *alerts.Emitter,
	publisher mq.EventPublisher,
	logger *zap.Logger,
	now func() time.Time,
) *TelemetryService {
	if now == nil {
		now = time.Now
	}
	return &TelemetryService{
		readings:  readings,
		latest:    latest,
		validator: validator,
		evaluator: evaluator,
		emitter:   emitter,
		publisher: publisher,
		logger:    logger,
		now:       now,
	}
}

// Ingest validates, stores and evaluates one reading. A ValidationError stops
// processing before anything is written; a StoreError from the reading write is
// returned as is. Alert, cache and event failures never fail the ingestion.
func (s *TelemetryService) Ingest(ctx context.Context, payload map[string]any, source string) (*IngestResult, error) {
	reading, err := s.validator.ValidateReading(payload, s.now())
	if err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				metrics.ValidationErrorsTotal.WithLabelValues(f.Field).Inc()
			}
		}
		metrics.ReadingsIngestedTotal.WithLabelValues(source, "invalid").Inc()
		return nil, err
	}

	logger := logging.WithDevice(s.logger, reading.DeviceID)

	if err := s.readings.InsertReading(ctx, reading); err != nil {
		logger.Error("failed to save reading", zap.Error(err))
		metrics.ReadingsIngestedTotal.WithLabelValues(source, "failed").Inc()
		return nil, err
	}
	metrics.ReadingsIngestedTotal.WithLabelValues(source, "success").Inc()

	if err := s.latest.Set(ctx, reading); err != nil {
		logger.Warn("failed to cache latest reading", zap.Error(err))
	}

	candidates := s.evaluator.Evaluate(reading)
	emissions := s.emitter.Emit(ctx, reading.DeviceID, candidates)
	delivered := alerts.Delivered(emissions)

	s.announce(ctx, logger, reading, delivered)

	logger.Info("reading ingested",
		zap.String("reading_id", reading.ID.String()),
		zap.String("source", source),
		zap.Int("candidates", len(candidates)),
		zap.Int("alerts", len(delivered)),
	)

	return &IngestResult{
		Reading:   reading,
		Alerts:    delivered,
		Emissions: emissions,
	}, nil
}

func (s *TelemetryService) announce(ctx context.Context, logger *zap.Logger, reading *db.SensorReading, delivered []db.Alert) {
	err := s.publisher.PublishReading(ctx, reading)
	for i := range delivered {
		err = multierr.Append(err, s.publisher.PublishAlert(ctx, &delivered[i]))
	}
	for _, e := range multierr.Errors(err) {
		logger.Error("failed to publish event", zap.Error(e))
	}
}

// ProcessMessage is the AMQP entry point. Invalid telemetry is reported as
// mq.ErrPermanent so it is dead-lettered.
func (s *TelemetryService) ProcessMessage(ctx context.Context, body []byte) error {
	payload, requestID, err := decodeMessage(body)
	if err != nil {
		return fmt.Errorf("failed to unmarshal message: %w: %w", mq.ErrPermanent, err)
	}

	logger := s.logger
	if requestID != "" {
		logger = logging.WithRequestID(logger, requestID)
	}

	result, err := s.Ingest(ctx, payload, SourceAMQP)
	if err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			logger.Warn("rejected invalid telemetry", zap.Error(err))
			return fmt.Errorf("%w: %w", mq.ErrPermanent, err)
		}
		return fmt.Errorf("failed to ingest reading: %w", err)
	}

	logger.Debug("message processed successfully", zap.String("reading_id", result.Reading.ID.String()))
	return nil
}

func decodeMessage(body []byte) (map[string]any, string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, "", err
	}

	requestID, _ := raw["request_id"].(string)
	if inner, ok := raw["payload"].(map[string]any); ok {
		return inner, requestID, nil
	}
	return raw, requestID, nil
}

// History returns up to limit readings, most recent first. A non-positive limit
// uses DefaultHistoryLimit.
func (s *TelemetryService) History(ctx context.Context, deviceID string, limit int) ([]db.SensorReading, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.readings.ListReadings(ctx, deviceID, limit)
}

// Latest returns the most recent reading, from the cache when possible
func (s *TelemetryService) Latest(ctx context.Context, deviceID string) (*db.SensorReading, error) {
	cached, err := s.latest.Get(ctx, deviceID)
	if err != nil {
		s.logger.Warn("latest reading cache unavailable", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	readings, err := s.readings.ListReadings(ctx, deviceID, 1)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, ErrNotFound
	}
	return &readings[0], nil
}

// Stats summarizes the readings of the last hours. A non-positive hours uses DefaultStatsHours.
func (s *TelemetryService) Stats(ctx context.Context, deviceID string, hours int) (*StatsReport, error) {
	if hours <= 0 {
		hours = DefaultStatsHours
	}
	if hours > MaxStatsHours {
		hours = MaxStatsHours
	}

	readings, err := s.readings.ListReadings(ctx, deviceID, statsSampleSize)
	if err != nil {
		return nil, err
	}

	window := stats.FilterSince(readings, stats.Cutoff(s.now(), hours))
	return &StatsReport{
		Hours: hours,
		Stats: stats.Summarize(window),
	}, nil
}
