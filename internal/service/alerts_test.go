package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/septivank/hydro-telemetry-service/internal/repository"
	"github.com/septivank/hydro-telemetry-service/internal/service"
	"go.uber.org/zap"
)

func TestAlertService_ActiveAndResolve(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alerts := service.NewAlertService(f.store, zap.NewNop(), f.clock.Now)

	if _, err := f.telemetry.Ingest(ctx, allOutOfRange("ESP32-001"), service.SourceHTTP); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	active, err := alerts.Active(ctx, "ESP32-001")
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if len(active) != 5 {
		t.Fatalf("Expected 5 active alerts, got %d", len(active))
	}

	id := active[0].ID.String()
	if err := alerts.Resolve(ctx, id); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	first := *f.store.alerts[4].ResolvedAt
	f.clock.Advance(1)

	if err := alerts.Resolve(ctx, id); err != nil {
		t.Errorf("Resolving twice must succeed, got %v", err)
	}
	if !f.store.alerts[4].ResolvedAt.Equal(first) {
		t.Error("Expected resolvedAt to keep the first resolution time")
	}

	active, _ = alerts.Active(ctx, "")
	if len(active) != 4 {
		t.Errorf("Expected 4 active alerts, got %d", len(active))
	}
}

func TestAlertService_ResolveUnknown(t *testing.T) {
	f := newFixture()
	alerts := service.NewAlertService(f.store, zap.NewNop(), f.clock.Now)

	for _, id := range []string{"not-a-uuid", "6f1c2a53-4a1c-4a8e-9a55-2d7d2b0d3f10"} {
		err := alerts.Resolve(context.Background(), id)

		var serr *repository.StoreError
		if !errors.As(err, &serr) || !errors.Is(err, repository.ErrAlertNotFound) {
			t.Errorf("Expected StoreError wrapping ErrAlertNotFound for %q, got %v", id, err)
		}
	}
}
