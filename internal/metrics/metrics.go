package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydro_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hydro_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// Ingest metrics
	ReadingsIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydro_readings_ingested_total",
			Help: "Total number of telemetry readings received",
		},
		[]string{"source", "status"}, // status: accepted, rejected, failed
	)

	ValidationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydro_validation_errors_total",
			Help: "Total number of field validation errors",
		},
		[]string{"field"},
	)

	// Alert metrics
	AlertsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydro_alerts_emitted_total",
			Help: "Total number of alerts persisted",
		},
		[]string{"parameter", "severity"},
	)

	AlertEmissionFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydro_alert_emission_failures_total",
			Help: "Total number of alerts that could not be persisted",
		},
		[]string{"parameter"},
	)

	AlertsResolvedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hydro_alerts_resolved_total",
			Help: "Total number of alert resolve requests",
		},
	)

	// Event publishing
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydro_events_published_total",
			Help: "Total number of events published to RabbitMQ",
		},
		[]string{"routing_key", "status"}, // status: success, failed
	)

	// Panic recovery
	PanicsRecovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hydro_panics_recovered_total",
			Help: "Total number of panics recovered in HTTP handlers",
		},
	)
)
