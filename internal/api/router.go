package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every route and the middleware stack
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger(h.logger))
	r.Use(recoverer(h.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/sensors", func(r chi.Router) {
			r.Post("/data", h.handleSensorData)
			r.Get("/history", h.handleHistory)
			r.Get("/latest", h.handleLatest)
			r.Get("/stats", h.handleStats)
		})
		r.Route("/actuators", func(r chi.Router) {
			r.Post("/control", h.handleActuatorControl)
			r.Get("/status", h.handleActuatorStatus)
		})
		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", h.handleActiveAlerts)
			r.Post("/{id}/resolve", h.handleResolveAlert)
		})
	})

	return r
}
