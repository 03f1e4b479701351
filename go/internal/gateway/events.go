package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/events"
	"github.com/mcdev12/leaguefc/go/internal/outbox"
)

// LeagueEvent is the frame pushed to websocket clients of a league
type LeagueEvent struct {
	ID        string          `json:"id"`
	LeagueID  string          `json:"league_id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

var errUnknownEvent = errors.New("unknown event type")

// relayed lists the event types clients may see
var relayed = map[string]bool{
	events.BidPlaced:          true,
	events.DeadlineExtended:   true,
	events.PlayerSigned:       true,
	events.BidsCleared:        true,
	events.FreeAgencyResolved: true,
	events.PackOpened:         true,
	events.SeasonAction:       true,
}

// decodeEnvelope turns a relayed outbox message into a client frame
func decodeEnvelope(data []byte) (*LeagueEvent, uuid.UUID, error) {
	var env outbox.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, uuid.Nil, fmt.Errorf("unmarshal event envelope: %w", err)
	}

	leagueID, err := uuid.Parse(env.LeagueID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("parse league ID: %w", err)
	}
	if !relayed[env.EventType] {
		return nil, leagueID, fmt.Errorf("%w: %s", errUnknownEvent, env.EventType)
	}

	payload, err := sealPayload(env.EventType, env.Payload)
	if err != nil {
		return nil, leagueID, err
	}

	return &LeagueEvent{
		ID:        env.EventID,
		LeagueID:  env.LeagueID,
		Type:      env.EventType,
		Timestamp: env.Timestamp,
		Data:      payload,
	}, leagueID, nil
}

// sealPayload re-encodes bid payloads through their public shape so bid
// amounts never reach a client, whatever the writer put in the row.
func sealPayload(eventType string, payload json.RawMessage) (json.RawMessage, error) {
	if eventType != events.BidPlaced {
		return payload, nil
	}

	var bid events.BidPlacedPayload
	if err := json.Unmarshal(payload, &bid); err != nil {
		return nil, fmt.Errorf("unmarshal bid payload: %w", err)
	}
	sealed, err := json.Marshal(bid)
	if err != nil {
		return nil, fmt.Errorf("marshal bid payload: %w", err)
	}
	return sealed, nil
}
