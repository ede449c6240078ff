package api

import (
	"github.com/septivank/hydro-telemetry-service/internal/service"
	"go.uber.org/zap"
)

// Handler serves the HTTP API
type Handler struct {
	telemetry   *service.TelemetryService
	alerts      *service.AlertService
	actuators   *service.ActuatorService
	logger      *zap.Logger
	serviceName string
	development bool
}

// HandlerConfig holds handler settings
type HandlerConfig struct {
	ServiceName string
	// Development exposes error detail in 500 responses
	Development bool
}

// NewHandler creates a new API handler
func NewHandler(
	telemetry *service.TelemetryService,
	alerts *service.AlertService,
	actuators *service.ActuatorService,
	logger *zap.Logger,
	cfg HandlerConfig,
) *Handler {
	return &Handler{
		telemetry:   telemetry,
		alerts:      alerts,
		actuators:   actuators,
		logger:      logger.With(zap.String("component", "http-api")),
		serviceName: cfg.ServiceName,
		development: cfg.Development,
	}
}
