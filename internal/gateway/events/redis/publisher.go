package redis

import (
	"context"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/gateway/events"
)

type Publisher struct {
	client client
}

func NewPublisher(client client) *Publisher {
	return &Publisher{
		client: client,
	}
}

func (p *Publisher) Name() string {
	return "redis"
}

// Publish без подписчиков событие теряется.
func (p *Publisher) Publish(ctx context.Context, event entities.Event) error {
	payload, err := events.Encode(event)
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, events.RedisChannel(event.Channel), payload).Err(); err != nil {
		return fmt.Errorf("gateway redis, publish %s: %w", event.Type, err)
	}
	return nil
}
