package api

import (
	"net/http"
)

const apiVersion = "1.0.0"

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		"message": h.serviceName,
		"version": apiVersion,
		"endpoints": map[string]string{
			"sensors":   "/api/sensors",
			"actuators": "/api/actuators",
			"alerts":    "/api/alerts",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		"status":  "ok",
		"service": h.serviceName,
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, envelope{
		"status":  statusError,
		"error":   "Not Found",
		"message": "Endpoint no encontrado",
	})
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, envelope{
		"status":  statusError,
		"error":   "Method Not Allowed",
		"message": "Método no permitido",
	})
}
