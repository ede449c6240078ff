package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/septivank/hydro-telemetry-service/internal/validator"
)

// intQuery parses an optional integer query parameter within [min, max]
func intQuery(r *http.Request, name string, def, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, &validator.ValidationError{Fields: []validator.FieldError{{
			Field:   name,
			Message: fmt.Sprintf("%s debe ser un entero entre %d y %d", name, min, max),
			Value:   raw,
		}}}
	}
	return n, nil
}

func deviceQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("deviceId"))
}
