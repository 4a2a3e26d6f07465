package repository

import (
	"context"

	"MemeIQ/internal/domain/models"
	"MemeIQ/internal/domain/repository"
	pkgkafka "MemeIQ/pkg/kafka"
)

// KafkaAnalysisPublisher implements AnalysisPublisher for Kafka.
type KafkaAnalysisPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaAnalysisPublisher creates Kafka publisher. Events are keyed by token address.
func NewKafkaAnalysisPublisher(producer *pkgkafka.Producer, topic string) repository.AnalysisPublisher {
	return &KafkaAnalysisPublisher{producer: producer, topic: topic}
}

func (p *KafkaAnalysisPublisher) Publish(ctx context.Context, ev *models.AnalysisEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Address), ev)
}

func (p *KafkaAnalysisPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopPublisher drops events. Used when events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *models.AnalysisEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
