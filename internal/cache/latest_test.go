package cache

import (
	"context"
	"testing"

	"github.com/septivank/hydro-telemetry-service/internal/db"
)

func TestKey(t *testing.T) {
	if got := key("ESP32-001"); got != "latest_reading:ESP32-001" {
		t.Errorf("Unexpected key: %s", got)
	}
	if got := key(""); got != "latest_reading:*" {
		t.Errorf("Unexpected any-device key: %s", got)
	}
}

func TestNoopAlwaysMisses(t *testing.T) {
	var c LatestCache = Noop{}

	if err := c.Set(context.Background(), &db.SensorReading{DeviceID: "ESP32-001"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	r, err := c.Get(context.Background(), "ESP32-001")
	if r != nil || err != nil {
		t.Errorf("Expected miss, got %v %v", r, err)
	}
}
