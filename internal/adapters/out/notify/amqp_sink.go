package notify

import (
	"context"
	"fmt"

	"mealdispatch/internal/core/domain/events"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the fanout exchange lifecycle events are published to.
const ExchangeName = "order_lifecycle"

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPSink publishes persistent JSON messages to the order_lifecycle fanout exchange,
// using the event name as routing key.
type AMQPSink struct {
	conn    *amqp.Connection
	channel amqpChannel
}

// NewAMQPSink dials the broker and declares the exchange.
func NewAMQPSink(url string) (*AMQPSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(ExchangeName, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPSink{conn: conn, channel: ch}, nil
}

func (s *AMQPSink) Name() string { return "amqp" }

// Deliver publishes the event as a persistent JSON message.
func (s *AMQPSink) Deliver(ctx context.Context, event events.Event) error {
	body, err := encode(event)
	if err != nil {
		return err
	}

	err = s.channel.PublishWithContext(ctx, ExchangeName, event.EventName(), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         event.EventName(),
		Timestamp:    event.EventTime(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Close closes the channel and then the connection.
func (s *AMQPSink) Close() error {
	if err := s.channel.Close(); err != nil {
		return err
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
