package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/events"
)

const headerEventType = "event-type"

// Publisher пишет события в общий топик, ключ = канал, чтобы события одного заказа шли по порядку.
type Publisher struct {
	producer producer
	topic    string
}

func NewPublisher(producer producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *Publisher) Name() string {
	return "kafka"
}

func (p *Publisher) Publish(_ context.Context, event entities.Event) error {
	payload, err := events.Encode(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.Channel),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerEventType), Value: []byte(event.Type.String())},
		},
		Timestamp: event.OccurredAt,
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("gateway kafka, send %s to %s: %w", event.Type, p.topic, err)
	}
	return nil
}
