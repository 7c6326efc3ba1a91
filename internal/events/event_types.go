package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionInvalidated EventType = "session_invalidated"
	EventFoodUpdated        EventType = "food_updated"
)

// Event represents something the portal wants other components to react to.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, sessionID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// SessionInvalidatedPayload describes why a session was dropped.
type SessionInvalidatedPayload struct {
	Operation string `json:"operation"`
	Status    int    `json:"status"`
}

// FoodUpdatedPayload identifies the listing whose status changed.
type FoodUpdatedPayload struct {
	FoodID string `json:"food_id"`
	Action string `json:"action"`
}
