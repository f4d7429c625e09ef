package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"dispatch/internal/gateway/events"
)

type Subscriber struct {
	client *redis.Client
}

func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{
		client: client,
	}
}

// Subscribe отдает закодированные события канала, пока не отменен ctx.
// Канал результата закрывается после отписки.
func (s *Subscriber) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	pubsub := s.client.Subscribe(ctx, events.RedisChannel(channel))

	// первое сообщение подтверждает подписку, без него Publish может уйти в пустоту
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("gateway redis, subscribe %s: %w", channel, err)
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
