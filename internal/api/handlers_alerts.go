package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleActiveAlerts handles GET /api/alerts
func (h *Handler) handleActiveAlerts(w http.ResponseWriter, r *http.Request) {
	active, err := h.alerts.Active(r.Context(), deviceQuery(r))
	if err != nil {
		h.fail(w, r, "Error obteniendo alertas", err)
		return
	}

	h.success(w, http.StatusOK, envelope{
		"count": len(active),
		"data":  active,
	})
}

// handleResolveAlert handles POST /api/alerts/{id}/resolve
func (h *Handler) handleResolveAlert(w http.ResponseWriter, r *http.Request) {
	if err := h.alerts.Resolve(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "Error resolviendo alerta", err)
		return
	}

	h.success(w, http.StatusOK, envelope{"message": "Alerta resuelta correctamente"})
}
