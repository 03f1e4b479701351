package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is a league domain event waiting to be relayed
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	LeagueID  uuid.UUID       `json:"league_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
}

// Publisher is an interface that defines our publisher.
type Publisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}
