package mq

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrPermanent marks a message that must not be redelivered, e.g. invalid telemetry.
// Handlers wrap it; the consumer dead-letters every failed message either way.
var ErrPermanent = errors.New("permanent message failure")

// MessageHandler processes one message body
type MessageHandler func(ctx context.Context, body []byte) error

// ConsumerConfig holds consumer configuration
type ConsumerConfig struct {
	Connection    *Connection
	Exchange      string
	Queue         string
	RoutingKey    string
	DLQQueue      string
	PrefetchCount int
	Logger        *zap.Logger
	Handler       MessageHandler
}

// Consumer reads telemetry messages from the ingest queue
type Consumer struct {
	channel  *amqp.Channel
	queue    string
	prefetch int
	logger   *zap.Logger
	handler  MessageHandler
}

// NewConsumer declares the ingest topology: exchange, queue with dead-letter routing, DLQ, binding
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	ch, err := cfg.Connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err := declareIngestTopology(ch, cfg); err != nil {
		ch.Close()
		return nil, err
	}

	return &Consumer{
		channel:  ch,
		queue:    cfg.Queue,
		prefetch: cfg.PrefetchCount,
		logger:   cfg.Logger.With(zap.String("component", "ingest-consumer")),
		handler:  cfg.Handler,
	}, nil
}

func declareIngestTopology(ch *amqp.Channel, cfg ConsumerConfig) error {
	if err := ch.Qos(cfg.PrefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	if err := declareTopicExchange(ch, cfg.Exchange); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(cfg.DLQQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare DLQ: %w", err)
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cfg.DLQQueue,
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, args); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(cfg.Queue, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	return nil
}

// Start consumes until ctx is cancelled or the delivery channel closes
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.logger.Info("consumer started", zap.String("queue", c.queue), zap.Int("prefetch", c.prefetch))

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("consumer context cancelled, stopping")
				return
			case d, ok := <-deliveries:
				if !ok {
					c.logger.Warn("delivery channel closed")
					return
				}
				c.handle(ctx, d)
			}
		}
	}()

	return nil
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	if err := c.handler(ctx, d.Body); err != nil {
		c.logger.Error("failed to process telemetry message",
			zap.Error(err),
			zap.String("routing_key", d.RoutingKey),
			zap.Bool("permanent", errors.Is(err, ErrPermanent)),
		)
		// requeue=false routes the message to the DLQ
		if nackErr := d.Nack(false, false); nackErr != nil {
			c.logger.Error("failed to NACK message", zap.Error(nackErr))
		}
		return
	}

	if err := d.Ack(false); err != nil {
		c.logger.Error("failed to ACK message", zap.Error(err))
	}
}

// Close closes the consumer channel
func (c *Consumer) Close() error {
	if c.channel != nil {
		return c.channel.Close()
	}
	return nil
}
