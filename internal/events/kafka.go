package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/NathanBartolo/echo/internal/core"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"
)

// Compile-time interface check.
var _ core.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher writes events to a single topic, keyed by aggregate id so
// events for one user or playlist stay ordered within a partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

// NewProducerConfig returns the sarama settings used for domain events
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "echo-api"
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Timeout = 5 * time.Second
	return cfg
}

// NewKafkaPublisher connects a sync producer to brokers
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, topic), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, now: time.Now}
}

// Publish sends one event and waits for the broker acknowledgement
func (p *KafkaPublisher) Publish(ctx context.Context, eventType, key string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	log.Ctx(ctx).Debug().
		Str("event", eventType).
		Str("key", key).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
