package events

import (
	"context"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	limitorderdomain "github.com/osmosis-labs/limitswap/domain/limitorder"
	"github.com/osmosis-labs/limitswap/json"
)

// DefaultKafkaTopic is the topic used when none is configured.
const DefaultKafkaTopic = "limitswap.order-events"

// MessageWriter is the subset of *kafka.Writer used by KafkaPublisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes every event as a JSON message keyed by order ID, so that the events
// of an order land in one partition in commit order.
type KafkaPublisher struct {
	writer MessageWriter
}

var _ limitorderdomain.EventPublisher = &KafkaPublisher{}

// NewKafkaPublisher returns a publisher writing synchronously to topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultKafkaTopic
	}

	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,
	})
}

// NewKafkaPublisherWithWriter returns a publisher over an existing writer.
func NewKafkaPublisherWithWriter(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish implements limitorderdomain.EventPublisher.
func (p *KafkaPublisher) Publish(ctx context.Context, events []limitorderdomain.Event) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(event)
		if err != nil {
			return err
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(strconv.FormatUint(event.OrderID, 10)),
			Value: value,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte(event.Type)},
			},
		})
	}

	return p.writer.WriteMessages(ctx, messages...)
}

// Close implements limitorderdomain.EventPublisher.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
