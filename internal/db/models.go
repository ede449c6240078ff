package db

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/septivank/hydro-telemetry-service/internal/ranges"
)

// Severity is the urgency tier of an alert
type Severity string

const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Actuator is one of the controllable outputs of a device
type Actuator string

const (
	ActuatorPump  Actuator = "pump"
	ActuatorLED   Actuator = "led"
	ActuatorPumpA Actuator = "pumpA"
	ActuatorPumpB Actuator = "pumpB"
)

// Actuators lists every known actuator
func Actuators() []Actuator {
	return []Actuator{ActuatorPump, ActuatorLED, ActuatorPumpA, ActuatorPumpB}
}

// SensorReading represents a validated telemetry sample. Timestamp is assigned at ingestion.
type SensorReading struct {
	ID         uuid.UUID `json:"id"`
	DeviceID   string    `json:"deviceId"`
	PH         float64   `json:"pH"`
	EC         float64   `json:"ec"`
	WaterTemp  float64   `json:"waterTemp"`
	AirTemp    float64   `json:"airTemp"`
	Humidity   float64   `json:"humidity"`
	LightLevel int64     `json:"lightLevel"`
	Timestamp  time.Time `json:"timestamp"`
}

// Value returns the reading's value for p. NaN counts as missing.
func (r SensorReading) Value(p ranges.Parameter) (float64, bool) {
	var v float64
	switch p {
	case ranges.PH:
		v = r.PH
	case ranges.EC:
		v = r.EC
	case ranges.WaterTemp:
		v = r.WaterTemp
	case ranges.AirTemp:
		v = r.AirTemp
	case ranges.Humidity:
		v = r.Humidity
	case ranges.LightLevel:
		v = float64(r.LightLevel)
	default:
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Alert represents a persisted threshold violation
type Alert struct {
	ID         uuid.UUID  `json:"id"`
	DeviceID   string     `json:"deviceId"`
	Parameter  string     `json:"parameter"`
	Condition  string     `json:"condition"`
	Value      float64    `json:"value"`
	Threshold  float64    `json:"threshold"`
	Message    string     `json:"message"`
	Severity   Severity   `json:"severity"`
	Timestamp  time.Time  `json:"timestamp"`
	Resolved   bool       `json:"resolved"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

// ActuatorState is an append-only desired-state record
type ActuatorState struct {
	ID        uuid.UUID `json:"id"`
	DeviceID  string    `json:"deviceId"`
	Actuator  Actuator  `json:"actuator"`
	State     bool      `json:"state"`
	Timestamp time.Time `json:"timestamp"`
}
