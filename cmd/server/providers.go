package main

import (
	"time"

	"github.com/septivank/hydro-telemetry-service/internal/alerts"
	"github.com/septivank/hydro-telemetry-service/internal/anomaly"
	"github.com/septivank/hydro-telemetry-service/internal/api"
	"github.com/septivank/hydro-telemetry-service/internal/cache"
	"github.com/septivank/hydro-telemetry-service/internal/config"
	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/mq"
	"github.com/septivank/hydro-telemetry-service/internal/ranges"
	"github.com/septivank/hydro-telemetry-service/internal/repository"
	"github.com/septivank/hydro-telemetry-service/internal/service"
	"github.com/septivank/hydro-telemetry-service/internal/validator"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProvideRegistry builds the range registry from the resolved configuration
func ProvideRegistry(cfg *config.Config) (*ranges.Registry, error) {
	return ranges.NewRegistry(cfg.Ranges)
}

// ProvideEvaluator creates a new threshold evaluator instance
func ProvideEvaluator(registry *ranges.Registry) *anomaly.Evaluator {
	return anomaly.NewEvaluator(registry)
}

// ProvideClassifier creates a new severity classifier instance
func ProvideClassifier(cfg *config.Config) *anomaly.Classifier {
	return anomaly.NewClassifier(cfg.Severity.HighPercent, cfg.Severity.CriticalPercent)
}

// ProvideValidator creates a new validator instance
func ProvideValidator() *validator.Validator {
	return validator.NewValidator()
}

// ProvideStores returns the Postgres stores, or no-op stores when DATABASE_URL is unset
func ProvideStores(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) (
	repository.ReadingStore,
	repository.AlertStore,
	repository.ActuatorStore,
	error,
) {
	if cfg.Database.URL == "" {
		logger.Warn("DATABASE_URL not set, readings and alerts will not be persisted")
		noop := repository.NewNoop(logger)
		return noop, noop, noop, nil
	}

	pool, err := db.NewPool(lc, logger, cfg.Database.URL)
	if err != nil {
		return nil, nil, nil, err
	}
	repo := repository.NewRepository(pool)
	return repo, repo, repo, nil
}

// ProvideLatestCache returns the redis cache, or a cache that always misses when REDIS_ADDR is unset
func ProvideLatestCache(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) cache.LatestCache {
	if cfg.Redis.Addr == "" {
		logger.Info("REDIS_ADDR not set, latest reading cache disabled")
		return cache.Noop{}
	}
	return cache.NewRedisLatest(lc, logger, cache.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
		TTL:  time.Duration(cfg.Redis.LatestTTLSeconds) * time.Second,
	})
}

// ProvideMQConnection creates a RabbitMQ connection. It returns nil when RABBITMQ_URL is unset.
func ProvideMQConnection(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) (*mq.Connection, error) {
	if cfg.RabbitMQ.URL == "" {
		logger.Info("RABBITMQ_URL not set, AMQP ingestion and events disabled")
		return nil, nil
	}
	return mq.NewConnection(lc, logger, cfg.RabbitMQ.URL)
}

// ProvidePublisher creates the event publisher
func ProvidePublisher(lc fx.Lifecycle, conn *mq.Connection, cfg *config.Config, logger *zap.Logger) (mq.EventPublisher, error) {
	if conn == nil {
		return mq.NoopPublisher{}, nil
	}

	publisher, err := mq.NewPublisher(conn, mq.PublisherConfig{
		Exchange:          cfg.RabbitMQ.EventsExchange,
		AlertRoutingKey:   cfg.RabbitMQ.AlertRoutingKey,
		ReadingRoutingKey: cfg.RabbitMQ.ReadingRoutingKey,
	}, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.StopHook(publisher.Close))
	return publisher, nil
}

// ProvideEmitter creates a new alert emitter instance
func ProvideEmitter(store repository.AlertStore, classifier *anomaly.Classifier, logger *zap.Logger) *alerts.Emitter {
	return alerts.NewEmitter(store, classifier, logger, nil)
}

// ProvideTelemetryService creates a new telemetry service instance
func ProvideTelemetryService(
	readings repository.ReadingStore,
	latest cache.LatestCache,
	validator *validator.Validator,
	evaluator *anomaly.Evaluator,
	emitter *alerts.Emitter,
	publisher mq.EventPublisher,
	logger *zap.Logger,
) *service.TelemetryService {
	return service.NewTelemetryService(readings, latest, validator, evaluator, emitter, publisher, logger, nil)
}

// ProvideAlertService creates a new alert service instance
func ProvideAlertService(store repository.AlertStore, logger *zap.Logger) *service.AlertService {
	return service.NewAlertService(store, logger, nil)
}

// ProvideActuatorService creates a new actuator service instance
func ProvideActuatorService(store repository.ActuatorStore, validator *validator.Validator, logger *zap.Logger) *service.ActuatorService {
	return service.NewActuatorService(store, validator, logger, nil)
}

// ProvideHandler creates the HTTP API handler
func ProvideHandler(
	telemetry *service.TelemetryService,
	alertService *service.AlertService,
	actuators *service.ActuatorService,
	logger *zap.Logger,
	cfg *config.Config,
) *api.Handler {
	return api.NewHandler(telemetry, alertService, actuators, logger, api.HandlerConfig{
		ServiceName: cfg.ServiceName,
		Development: cfg.IsDevelopment(),
	})
}
