package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/septivank/hydro-telemetry-service/internal/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	keyPrefix = "latest_reading:"
	// anyDevice keys the most recent reading across all devices
	anyDevice = "*"
)

// LatestCache keeps the most recent reading per device
type LatestCache interface {
	// Get returns nil, nil on a miss
	Get(ctx context.Context, deviceID string) (*db.SensorReading, error)
	Set(ctx context.Context, reading *db.SensorReading) error
}

// Config holds redis connection settings
type Config struct {
	Addr string
	DB   int
	TTL  time.Duration
}

// RedisLatest stores readings as JSON under latest_reading:<deviceId>
type RedisLatest struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLatest creates a redis-backed cache and registers its lifecycle
func NewRedisLatest(lc fx.Lifecycle, logger *zap.Logger, cfg Config) *RedisLatest {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("[REDIS CONNECTION FAILED] cannot reach %s: %w", cfg.Addr, err)
			}
			logger.Info("redis connection established successfully", zap.String("addr", cfg.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return &RedisLatest{client: client, ttl: cfg.TTL}
}

func (c *RedisLatest) Get(ctx context.Context, deviceID string) (*db.SensorReading, error) {
	raw, err := c.client.Get(ctx, key(deviceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest reading: %w", err)
	}

	var reading db.SensorReading
	if err := json.Unmarshal(raw, &reading); err != nil {
		return nil, fmt.Errorf("failed to decode latest reading: %w", err)
	}
	return &reading, nil
}

// Set writes the reading under its device key and the any-device key
func (c *RedisLatest) Set(ctx context.Context, reading *db.SensorReading) error {
	body, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to encode latest reading: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key(reading.DeviceID), body, c.ttl)
	pipe.Set(ctx, key(""), body, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write latest reading: %w", err)
	}
	return nil
}

func key(deviceID string) string {
	if deviceID == "" {
		deviceID = anyDevice
	}
	return keyPrefix + deviceID
}

// Noop never hits
type Noop struct{}

func (Noop) Get(context.Context, string) (*db.SensorReading, error) { return nil, nil }
func (Noop) Set(context.Context, *db.SensorReading) error           { return nil }
