package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/septivank/hydro-telemetry-service/internal/validator"
	"go.uber.org/zap"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	maxBodyBytes = 1 << 20
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) success(w http.ResponseWriter, status int, body envelope) {
	body["status"] = statusSuccess
	writeJSON(w, status, body)
}

// validationFailed writes a 400 listing every field violation
func (h *Handler) validationFailed(w http.ResponseWriter, verr *validator.ValidationError) {
	writeJSON(w, http.StatusBadRequest, envelope{
		"status":  statusError,
		"message": "Datos inválidos",
		"errors":  verr.Fields,
	})
}

// fail maps err to a response. ValidationError becomes 400; everything else is
// logged and becomes a 500 with message. Error detail is only exposed in development.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		h.validationFailed(w, verr)
		return
	}

	loggerFrom(r.Context(), h.logger).Error(message, zap.Error(err))

	body := envelope{
		"status":  statusError,
		"message": message,
	}
	if h.development {
		body["error"] = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

// decodeObject reads a JSON object body. Numbers stay json.Number so the
// validator sees what the client sent.
func decodeObject(r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, &validator.ValidationError{Fields: []validator.FieldError{{
			Field:   "body",
			Message: fmt.Sprintf("JSON inválido: %v", err),
		}}}
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}
