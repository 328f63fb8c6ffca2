package dto

import (
	"encoding/json"
	"time"
)

// EventResponse mirrors a committed lifecycle event.
type EventResponse struct {
	ID            int64           `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   int64           `json:"aggregate_id"`
	Type          string          `json:"type"`
	ActorID       int64           `json:"actor_id"`
	ActorRole     string          `json:"actor_role"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
