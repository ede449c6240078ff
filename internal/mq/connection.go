package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Connection wraps a RabbitMQ connection shared by the consumer and publisher
type Connection struct {
	conn   *amqp.Connection
	logger *zap.Logger
}

// NewConnection dials RabbitMQ and closes the connection on shutdown
func NewConnection(lc fx.Lifecycle, logger *zap.Logger, url string) (*Connection, error) {
	logger = logger.With(zap.String("component", "rabbitmq"))
	logger.Info("attempting to connect to RabbitMQ...")

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("[RABBITMQ CONNECTION FAILED] cannot connect to RabbitMQ: %w", err)
	}

	c := &Connection{conn: conn, logger: logger}
	go c.watchClose()

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := conn.Close(); err != nil && err != amqp.ErrClosed {
				logger.Error("failed to close rabbitmq connection", zap.Error(err))
				return err
			}
			logger.Info("rabbitmq connection closed")
			return nil
		},
	})

	logger.Info("rabbitmq connection established successfully")
	return c, nil
}

// watchClose logs an unexpected broker-side close. No reconnect is attempted.
func (c *Connection) watchClose() {
	closed := c.conn.NotifyClose(make(chan *amqp.Error, 1))
	if err, ok := <-closed; ok && err != nil {
		c.logger.Error("rabbitmq connection lost", zap.String("reason", err.Reason), zap.Int("code", err.Code))
	}
}

// Channel creates a new RabbitMQ channel
func (c *Connection) Channel() (*amqp.Channel, error) {
	return c.conn.Channel()
}

func declareTopicExchange(ch *amqp.Channel, name string) error {
	return ch.ExchangeDeclare(
		name,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
}
