package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/leaguefc/go/internal/db"
)

// Inserter is satisfied by *db.Queries, including one bound to a transaction.
type Inserter interface {
	InsertOutboxEvent(ctx context.Context, arg db.InsertOutboxEventParams) error
}

// Write marshals payload and appends it to the league outbox. Call it with
// transaction-bound queries so the event commits with the change it describes.
func Write(ctx context.Context, q Inserter, leagueID uuid.UUID, eventType string, payload any) error {
	if eventType == "" {
		return fmt.Errorf("event type is required")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	if err := validateEventPayload(data); err != nil {
		return fmt.Errorf("invalid %s payload: %w", eventType, err)
	}

	err = q.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		ID:        uuid.New(),
		LeagueID:  leagueID,
		EventType: eventType,
		Payload:   data,
	})
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return nil
}

// validateEventPayload validates that the payload is a JSON object
func validateEventPayload(payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("payload cannot be empty")
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return fmt.Errorf("payload must be a JSON object: %w", err)
	}
	return nil
}
