package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/septivank/hydro-telemetry-service/internal/ranges"
	"go.uber.org/multierr"
)

const (
	// EnvDevelopment enables verbose logging and error details in HTTP responses
	EnvDevelopment = "development"
)

// Config holds all application configuration
type Config struct {
	ServiceName string
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	RabbitMQ    RabbitMQConfig
	Redis       RedisConfig
	Ranges      map[ranges.Parameter]ranges.RangeBound
	Severity    SeverityConfig

	// Issues collects every ConfigurationError found while loading.
	// Each one has already been replaced by its default.
	Issues error
}

// HTTPConfig holds HTTP server settings
type HTTPConfig struct {
	Port        int
	CORSOrigins []string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// RabbitMQConfig holds RabbitMQ connection, queue and event settings
type RabbitMQConfig struct {
	URL               string
	IngestExchange    string
	IngestQueue       string
	IngestRoutingKey  string
	DLQQueue          string
	EventsExchange    string
	AlertRoutingKey   string
	ReadingRoutingKey string
	PrefetchCount     int
}

// RedisConfig holds latest-reading cache settings
type RedisConfig struct {
	Addr             string
	DB               int
	LatestTTLSeconds int
}

// SeverityConfig holds the percent deviation cutoffs for severity tiers
type SeverityConfig struct {
	HighPercent     float64
	CriticalPercent float64
}

// ConfigurationError reports an override that could not be used
type ConfigurationError struct {
	Key    string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %s=%q: %s, using default", e.Key, e.Value, e.Reason)
}

type rangeKeys struct {
	param ranges.Parameter
	min   string
	max   string
}

var rangeOverrides = []rangeKeys{
	{ranges.PH, "ALERT_PH_MIN", "ALERT_PH_MAX"},
	{ranges.EC, "ALERT_EC_MIN", "ALERT_EC_MAX"},
	{ranges.WaterTemp, "ALERT_WATER_TEMP_MIN", "ALERT_WATER_TEMP_MAX"},
	{ranges.AirTemp, "ALERT_AIR_TEMP_MIN", "ALERT_AIR_TEMP_MAX"},
	{ranges.Humidity, "ALERT_HUMIDITY_MIN", "ALERT_HUMIDITY_MAX"},
}

// Load loads configuration from environment variables.
// It never fails on bad overrides; see Config.Issues.
func Load() (*Config, error) {
	l := &loader{}

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "hydro-telemetry"),
		Environment: getEnv("APP_ENV", "production"),
		HTTP: HTTPConfig{
			Port:        l.getEnvAsInt("HTTP_PORT", 3000),
			CORSOrigins: splitList(getEnv("CORS_ORIGIN", "*")),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		RabbitMQ: RabbitMQConfig{
			URL:               getEnv("RABBITMQ_URL", ""),
			IngestExchange:    getEnv("RABBITMQ_INGEST_EXCHANGE", "hydro.telemetry.exchange"),
			IngestQueue:       getEnv("RABBITMQ_INGEST_QUEUE", "hydro.telemetry.queue"),
			IngestRoutingKey:  getEnv("RABBITMQ_INGEST_ROUTING_KEY", "sensor.reading.raw"),
			DLQQueue:          getEnv("RABBITMQ_DLQ_QUEUE", "hydro.telemetry.dlq"),
			EventsExchange:    getEnv("RABBITMQ_EVENTS_EXCHANGE", "hydro.events.exchange"),
			AlertRoutingKey:   getEnv("RABBITMQ_ALERT_ROUTING_KEY", "alert.raised"),
			ReadingRoutingKey: getEnv("RABBITMQ_READING_ROUTING_KEY", "reading.accepted"),
			PrefetchCount:     l.getEnvAsInt("RABBITMQ_PREFETCH", 10),
		},
		Redis: RedisConfig{
			Addr:             getEnv("REDIS_ADDR", ""),
			DB:               l.getEnvAsInt("REDIS_DB", 0),
			LatestTTLSeconds: l.getEnvAsInt("REDIS_LATEST_TTL_SECONDS", 3600),
		},
		Severity: SeverityConfig{
			HighPercent:     l.getEnvAsFloat("SEVERITY_HIGH_PERCENT", 10),
			CriticalPercent: l.getEnvAsFloat("SEVERITY_CRITICAL_PERCENT", 20),
		},
	}

	if cfg.Severity.HighPercent > cfg.Severity.CriticalPercent {
		l.add("SEVERITY_HIGH_PERCENT", fmt.Sprint(cfg.Severity.HighPercent), "greater than SEVERITY_CRITICAL_PERCENT")
		cfg.Severity = SeverityConfig{HighPercent: 10, CriticalPercent: 20}
	}

	cfg.Ranges = l.bounds()
	cfg.Issues = l.issues

	return cfg, nil
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

type loader struct {
	issues error
}

func (l *loader) add(key, value, reason string) {
	l.issues = multierr.Append(l.issues, &ConfigurationError{Key: key, Value: value, Reason: reason})
}

func (l *loader) getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		l.add(key, valueStr, "not an integer")
		return defaultValue
	}
	return value
}

func (l *loader) getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		l.add(key, valueStr, "not a number")
		return defaultValue
	}
	return value
}

func (l *loader) bounds() map[ranges.Parameter]ranges.RangeBound {
	defaults := ranges.DefaultBounds()
	out := make(map[ranges.Parameter]ranges.RangeBound, len(defaults))

	for _, k := range rangeOverrides {
		def := defaults[k.param]
		b := ranges.RangeBound{
			Min: l.getEnvAsFloat(k.min, def.Min),
			Max: l.getEnvAsFloat(k.max, def.Max),
		}
		if b.Min == 0 {
			l.add(k.min, os.Getenv(k.min), "zero threshold")
			b.Min = def.Min
		}
		if b.Max == 0 {
			l.add(k.max, os.Getenv(k.max), "zero threshold")
			b.Max = def.Max
		}
		if err := ranges.CheckBound(b); err != nil {
			l.add(k.min+"/"+k.max, fmt.Sprintf("%v/%v", b.Min, b.Max), err.Error())
			b = def
		}
		out[k.param] = b
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
