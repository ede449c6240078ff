package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/septivank/hydro-telemetry-service/internal/db"
	"github.com/septivank/hydro-telemetry-service/internal/metrics"
	"go.uber.org/zap"
)

// EventPublisher announces persisted readings and alerts to downstream consumers
type EventPublisher interface {
	PublishReading(ctx context.Context, reading *db.SensorReading) error
	PublishAlert(ctx context.Context, alert *db.Alert) error
}

// AlertEvent is the payload published for every stored alert
type AlertEvent struct {
	AlertID   string  `json:"alert_id"`
	DeviceID  string  `json:"device_id"`
	Parameter string  `json:"parameter"`
	Condition string  `json:"condition"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Severity  string  `json:"severity"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
}

// ReadingEvent is the payload published for every stored reading
type ReadingEvent struct {
	ReadingID string    `json:"reading_id"`
	DeviceID  string    `json:"device_id"`
	Timestamp time.Time `json:"timestamp"`
}

// PublisherConfig holds publisher configuration
type PublisherConfig struct {
	Exchange          string
	AlertRoutingKey   string
	ReadingRoutingKey string
}

// Publisher publishes events to a topic exchange
type Publisher struct {
	channel *amqp.Channel
	cfg     PublisherConfig
	logger  *zap.Logger
}

// NewPublisher creates a new RabbitMQ publisher
func NewPublisher(conn *Connection, cfg PublisherConfig, logger *zap.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err := declareTopicExchange(ch, cfg.Exchange); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{
		channel: ch,
		cfg:     cfg,
		logger:  logger.With(zap.String("component", "event-publisher")),
	}, nil
}

// PublishAlert publishes an alert.raised event
func (p *Publisher) PublishAlert(ctx context.Context, alert *db.Alert) error {
	return p.publish(ctx, p.cfg.AlertRoutingKey, AlertEvent{
		AlertID:   alert.ID.String(),
		DeviceID:  alert.DeviceID,
		Parameter: alert.Parameter,
		Condition: alert.Condition,
		Value:     alert.Value,
		Threshold: alert.Threshold,
		Severity:  string(alert.Severity),
		Message:   alert.Message,
		Timestamp: alert.Timestamp.Format(time.RFC3339),
	})
}

// PublishReading publishes a reading.accepted event
func (p *Publisher) PublishReading(ctx context.Context, reading *db.SensorReading) error {
	return p.publish(ctx, p.cfg.ReadingRoutingKey, ReadingEvent{
		ReadingID: reading.ID.String(),
		DeviceID:  reading.DeviceID,
		Timestamp: reading.Timestamp,
	})
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.cfg.Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(routingKey, "failed").Inc()
		return fmt.Errorf("failed to publish event: %w", err)
	}

	metrics.EventsPublishedTotal.WithLabelValues(routingKey, "success").Inc()
	p.logger.Debug("published event", zap.String("routing_key", routingKey))
	return nil
}

// Close closes the publisher channel
func (p *Publisher) Close() error {
	if p.channel != nil {
		return p.channel.Close()
	}
	return nil
}

// NoopPublisher drops every event; used when RabbitMQ is not configured
type NoopPublisher struct{}

func (NoopPublisher) PublishReading(context.Context, *db.SensorReading) error { return nil }
func (NoopPublisher) PublishAlert(context.Context, *db.Alert) error          { return nil }
