package api

import (
	"fmt"
	"net/http"
)

// handleActuatorControl handles POST /api/actuators/control
func (h *Handler) handleActuatorControl(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(r)
	if err != nil {
		h.fail(w, r, "Error controlando actuador", err)
		return
	}

	state, err := h.actuators.Control(r.Context(), payload)
	if err != nil {
		h.fail(w, r, "Error controlando actuador", err)
		return
	}

	verb := "desactivado"
	if state.State {
		verb = "activado"
	}
	h.success(w, http.StatusOK, envelope{
		"message": fmt.Sprintf("Actuador %s %s", state.Actuator, verb),
		"data":    state,
	})
}

// handleActuatorStatus handles GET /api/actuators/status
func (h *Handler) handleActuatorStatus(w http.ResponseWriter, r *http.Request) {
	h.success(w, http.StatusOK, envelope{"data": h.actuators.Status()})
}
