package notify

import (
	"context"
	"fmt"

	"mealdispatch/internal/core/domain/events"

	"github.com/segmentio/kafka-go"
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink writes each event as a JSON message keyed by order id, so all events of
// one order land in the same partition in order.
type KafkaSink struct {
	writer kafkaWriter
}

// NewKafkaSink creates a sink writing to topic, keyed by order id.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

func newKafkaSinkWithWriter(writer kafkaWriter) *KafkaSink {
	return &KafkaSink{writer: writer}
}

func (s *KafkaSink) Name() string { return "kafka" }

// Deliver writes the event as a JSON message.
func (s *KafkaSink) Deliver(ctx context.Context, event events.Event) error {
	body, err := encode(event)
	if err != nil {
		return err
	}

	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EventOrderID().String()),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event.EventName())},
		},
	})
	if err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
