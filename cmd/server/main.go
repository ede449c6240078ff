package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/septivank/hydro-telemetry-service/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const lifecycleTimeout = 30 * time.Second

func main() {
	loadEnv()

	app := fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			ProvideRegistry,
			ProvideEvaluator,
			ProvideClassifier,
			ProvideValidator,
			ProvideStores,
			ProvideLatestCache,
			ProvideMQConnection,
			ProvidePublisher,
			ProvideEmitter,
			ProvideTelemetryService,
			ProvideAlertService,
			ProvideActuatorService,
			ProvideHandler,
			ProvideHTTPServer,
		),
		fx.Invoke(
			reportConfigIssues,
			startHTTPServer,
			startConsumer,
		),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startupLogger, _ := newLogger(&config.Config{ServiceName: "hydro-telemetry"})
	startupLogger.Info("starting application...", zap.Duration("timeout", lifecycleTimeout))

	startCtx, startCancel := context.WithTimeout(context.Background(), lifecycleTimeout)
	defer startCancel()

	if err := app.Start(startCtx); err != nil {
		if errors.Is(startCtx.Err(), context.DeadlineExceeded) {
			startupLogger.Error("APPLICATION START TIMEOUT: a dependency (Database, RabbitMQ or Redis) is not reachable, check the connection errors above")
		}
		panic(err)
	}

	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), lifecycleTimeout)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Println("error stopping app:", err)
	}
}

// loadEnv loads the first .env found in the working directory or up to two
// parents. Containers usually have none and rely on the real environment.
func loadEnv() {
	candidates := []string{".env"}
	if workDir, err := os.Getwd(); err == nil {
		dir := workDir
		for i := 0; i < 3; i++ {
			candidates = append(candidates, filepath.Join(dir, ".env"))
			dir = filepath.Dir(dir)
		}
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			absPath, _ := filepath.Abs(path)
			fmt.Printf("Loaded environment from: %s\n", absPath)
			return
		}
	}
	fmt.Println("No .env file found, using system environment variables")
}
