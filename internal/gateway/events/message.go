package events

import (
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/entities"
)

// RedisChannelPrefix префикс pub/sub каналов, на которые подписывается websocket.
const RedisChannelPrefix = "dispatch:events:"

// Message формат события на проводе, общий для kafka, redis и websocket клиентов.
type Message struct {
	Event      string         `json:"event"`
	Channel    string         `json:"channel"`
	Data       map[string]any `json:"data"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func Encode(event entities.Event) ([]byte, error) {
	payload, err := json.Marshal(Message{
		Event:      event.Type.String(),
		Channel:    event.Channel,
		Data:       event.Payload,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", event.Type, err)
	}
	return payload, nil
}

func RedisChannel(channel string) string {
	return RedisChannelPrefix + channel
}
