package events

import (
	"context"
	"encoding/json"

	coreport "github.com/davidokon/secretshop/internal/domain/port/core"
	eventport "github.com/davidokon/secretshop/internal/domain/port/event"
	"github.com/segmentio/kafka-go"
)

// Config represents Kafka producer configuration
type Config struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// KafkaPublisher implements the Publisher port on segmentio/kafka-go.
// Writes are async; losing an audit event is acceptable, losing a request
// to a slow broker is not.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger coreport.Logger
}

// NewKafkaPublisher creates a publisher writing to the given topic
func NewKafkaPublisher(cfg Config, logger coreport.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		Async:        true,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

// Publish sends a domain event, keyed so events for one user stay ordered
func (p *KafkaPublisher) Publish(ctx context.Context, evt eventport.Event) error {
	value, err := json.Marshal(map[string]any{
		"type":    evt.Type,
		"payload": evt.Payload,
	})
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(evt.Key),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to write event to kafka", map[string]any{
			"type":  string(evt.Type),
			"key":   evt.Key,
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// Close flushes and closes the underlying writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
