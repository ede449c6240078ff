package main

import (
	"testing"
	"time"

	"github.com/septivank/hydro-telemetry-service/internal/validator"
)

func TestSensorProducesValidReadings(t *testing.T) {
	s := newSensor("SIM-ESP32-001", 42)
	v := validator.NewValidator()

	start := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		now := start.Add(time.Duration(i) * 5 * time.Minute)
		if _, err := v.ValidateReading(s.next(now), now); err != nil {
			t.Fatalf("Reading %d rejected: %v", i, err)
		}
	}
}

func TestSensorDriftStaysClamped(t *testing.T) {
	s := newSensor("SIM-ESP32-001", 7)

	for i := 0; i < 1000; i++ {
		p := s.next(time.Now())
		ph := p["pH"].(float64)
		if ph < 5.0 || ph > 7.0 {
			t.Fatalf("pH %v out of clamp", ph)
		}
	}
}
