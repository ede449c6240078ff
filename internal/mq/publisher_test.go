package mq_test

import (
	"context"
	"testing"

	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/mq"
)

func TestNoopPublisher(t *testing.T) {
	var p mq.EventPublisher = mq.NoopPublisher{}

	if err := p.PublishReading(context.Background(), &db.SensorReading{}); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if err := p.PublishAlert(context.Background(), &db.Alert{}); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}
