package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/septivank/hydro-telemetry-service/internal/api"
	"github.com/septivank/hydro-telemetry-service/internal/config"
	"github.com/septivank/hydro-telemetry-service/internal/mq"
	"github.com/septivank/hydro-telemetry-service/internal/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProvideHTTPServer builds the HTTP server around the API router
func ProvideHTTPServer(h *api.Handler, cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           api.NewRouter(h, cfg.HTTP.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func startHTTPServer(lc fx.Lifecycle, srv *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("[HTTP LISTEN FAILED] cannot listen on %s: %w", srv.Addr, err)
			}

			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server stopped unexpectedly", zap.Error(err))
				}
			}()

			logger.Info("http server listening", zap.String("addr", srv.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down http server")
			return srv.Shutdown(ctx)
		},
	})
}

// startConsumer runs the telemetry consumer when RabbitMQ is configured
func startConsumer(
	lc fx.Lifecycle,
	conn *mq.Connection,
	cfg *config.Config,
	logger *zap.Logger,
	telemetry *service.TelemetryService,
) error {
	if conn == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	consumer, err := mq.NewConsumer(mq.ConsumerConfig{
		Connection:    conn,
		Exchange:      cfg.RabbitMQ.IngestExchange,
		Queue:         cfg.RabbitMQ.IngestQueue,
		RoutingKey:    cfg.RabbitMQ.IngestRoutingKey,
		DLQQueue:      cfg.RabbitMQ.DLQQueue,
		PrefetchCount: cfg.RabbitMQ.PrefetchCount,
		Logger:        logger,
		Handler:       telemetry.ProcessMessage,
	})
	if err != nil {
		cancel()
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return consumer.Start(ctx)
		},
		OnStop: func(context.Context) error {
			cancel()
			if err := consumer.Close(); err != nil {
				logger.Error("failed to close consumer", zap.Error(err))
				return err
			}
			logger.Info("telemetry consumer stopped gracefully")
			return nil
		},
	})

	return nil
}
