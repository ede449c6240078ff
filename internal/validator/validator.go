package validator

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/ranges"
)

// FieldError describes one violated field constraint
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationError lists every violated constraint of a payload
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field has a violation
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

type collector struct {
	fields []FieldError
}

func (c *collector) fail(field, message string, value any) {
	c.fields = append(c.fields, FieldError{Field: field, Message: message, Value: value})
}

func (c *collector) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}

// Validator checks raw telemetry payloads
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateReading converts a raw payload into a SensorReading stamped with receivedAt.
// Every field is checked so the returned ValidationError is complete.
func (v *Validator) ValidateReading(payload map[string]any, receivedAt time.Time) (*db.SensorReading, error) {
	c := &collector{}
	reading := &db.SensorReading{Timestamp: receivedAt}

	deviceID, ok := payload["deviceId"].(string)
	if !ok || strings.TrimSpace(deviceID) == "" {
		c.fail("deviceId", "deviceId es requerido", payload["deviceId"])
	}
	reading.DeviceID = deviceID

	reading.PH = checkFloat(c, payload, string(ranges.PH), 0, 14, "pH debe estar entre 0 y 14")
	reading.EC = checkFloat(c, payload, string(ranges.EC), 0, math.Inf(1), "EC debe ser un número positivo")
	reading.WaterTemp = checkFloat(c, payload, string(ranges.WaterTemp), math.Inf(-1), math.Inf(1), "waterTemp debe ser un número")
	reading.AirTemp = checkFloat(c, payload, string(ranges.AirTemp), math.Inf(-1), math.Inf(1), "airTemp debe ser un número")
	reading.Humidity = checkFloat(c, payload, string(ranges.Humidity), 0, 100, "humidity debe estar entre 0 y 100")

	light, ok := toInt(payload[string(ranges.LightLevel)])
	if !ok || light < 0 {
		c.fail(string(ranges.LightLevel), "lightLevel debe ser un número entero positivo", payload[string(ranges.LightLevel)])
	}
	reading.LightLevel = light

	if err := c.err(); err != nil {
		return nil, err
	}
	return reading, nil
}

// ActuatorCommand is a validated actuator control request
type ActuatorCommand struct {
	DeviceID string
	Actuator db.Actuator
	State    bool
}

// ValidateActuatorCommand checks an actuator control payload
func (v *Validator) ValidateActuatorCommand(payload map[string]any) (*ActuatorCommand, error) {
	c := &collector{}
	cmd := &ActuatorCommand{}

	deviceID, ok := payload["deviceId"].(string)
	if !ok || strings.TrimSpace(deviceID) == "" {
		c.fail("deviceId", "deviceId es requerido", payload["deviceId"])
	}
	cmd.DeviceID = deviceID

	name, _ := payload["actuator"].(string)
	cmd.Actuator = db.Actuator(name)
	if !isKnownActuator(cmd.Actuator) {
		c.fail("actuator", "Actuador no válido", payload["actuator"])
	}

	state, ok := toBool(payload["state"])
	if !ok {
		c.fail("state", "state debe ser true o false", payload["state"])
	}
	cmd.State = state

	if err := c.err(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func checkFloat(c *collector, payload map[string]any, field string, min, max float64, message string) float64 {
	raw := payload[field]
	value, ok := toFloat(raw)
	if !ok || value < min || value > max {
		c.fail(field, message, raw)
		return 0
	}
	return value
}

// toFloat accepts JSON numbers and numeric strings
func toFloat(raw any) (float64, bool) {
	var (
		value float64
		err   error
	)
	switch n := raw.(type) {
	case float64:
		value = n
	case float32:
		value = float64(n)
	case int:
		value = float64(n)
	case int64:
		value = float64(n)
	case json.Number:
		value, err = n.Float64()
	case string:
		value, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// toInt accepts integral JSON numbers and integer strings
func toInt(raw any) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	f, ok := toFloat(raw)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func toBool(raw any) (bool, bool) {
	switch b := raw.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(b)
		return parsed, err == nil
	}
	return false, false
}

func isKnownActuator(a db.Actuator) bool {
	for _, known := range db.Actuators() {
		if a == known {
			return true
		}
	}
	return false
}
