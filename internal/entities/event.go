package entities

import "time"

type EventType string

const (
	EventNewOrder            EventType = "new_order"
	EventOrderStatusUpdate   EventType = "order_status_update"
	EventNewAssignment       EventType = "new_assignment"
	EventRiderAssigned       EventType = "rider_assigned"
	EventRideStatusUpdate    EventType = "ride_status_update"
	EventNewRideRequest      EventType = "new_ride_request"
	EventRiderLocationUpdate EventType = "rider_location_update"
)

func (t EventType) String() string {
	return string(t)
}

// Event уведомление для канала реального времени, доставка не гарантируется.
type Event struct {
	Type       EventType
	Channel    string
	Payload    map[string]any
	OccurredAt time.Time
}

func NewEvent(eventType EventType, channel string, payload map[string]any) Event {
	return Event{
		Type:       eventType,
		Channel:    channel,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}
