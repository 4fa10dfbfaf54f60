package alerts

import (
	"context"

	"BtcPulse/internal/domain/models"
	domsvc "BtcPulse/internal/domain/service"
	pkgkafka "BtcPulse/pkg/kafka"
)

// KafkaPublisher ships generated alerts to a Kafka topic, keyed by alert
// type so consumers see per-type ordering. Delivery is fire-and-forget
// from the pipeline's point of view; the caller logs failures.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(alerts))
	for _, a := range alerts {
		msgs = append(msgs, pkgkafka.Message{Key: []byte(a.Type), Value: a})
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

var _ domsvc.AlertSink = (*KafkaPublisher)(nil)
