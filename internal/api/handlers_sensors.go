package api

import (
	"errors"
	"net/http"

	"github.com/septivank/hydro-telemetry-service/internal/service"
)

// handleSensorData handles POST /api/sensors/data
func (h *Handler) handleSensorData(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(r)
	if err != nil {
		h.fail(w, r, "Error guardando datos", err)
		return
	}

	result, err := h.telemetry.Ingest(r.Context(), payload, service.SourceHTTP)
	if err != nil {
		h.fail(w, r, "Error guardando datos", err)
		return
	}

	h.success(w, http.StatusCreated, envelope{
		"message": "Datos guardados correctamente",
		"data":    result.Reading,
		"alerts":  result.Alerts,
	})
}

// handleHistory handles GET /api/sensors/history
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", service.DefaultHistoryLimit, 1, service.MaxHistoryLimit)
	if err != nil {
		h.fail(w, r, "Error obteniendo histórico", err)
		return
	}

	history, err := h.telemetry.History(r.Context(), deviceQuery(r), limit)
	if err != nil {
		h.fail(w, r, "Error obteniendo histórico", err)
		return
	}

	h.success(w, http.StatusOK, envelope{
		"count": len(history),
		"data":  history,
	})
}

// handleLatest handles GET /api/sensors/latest
func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	reading, err := h.telemetry.Latest(r.Context(), deviceQuery(r))
	if errors.Is(err, service.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, envelope{
			"status":  statusError,
			"message": "No se encontraron datos",
		})
		return
	}
	if err != nil {
		h.fail(w, r, "Error obteniendo datos", err)
		return
	}

	h.success(w, http.StatusOK, envelope{"data": reading})
}

// handleStats handles GET /api/sensors/stats
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	hours, err := intQuery(r, "hours", service.DefaultStatsHours, 1, service.MaxStatsHours)
	if err != nil {
		h.fail(w, r, "Error calculando estadísticas", err)
		return
	}

	report, err := h.telemetry.Stats(r.Context(), deviceQuery(r), hours)
	if err != nil {
		h.fail(w, r, "Error calculando estadísticas", err)
		return
	}

	body := envelope{
		"period": report.Period(),
		"stats":  report.Stats,
	}
	if report.Stats == nil {
		body["message"] = "No hay datos en el período especificado"
	}
	h.success(w, http.StatusOK, body)
}
