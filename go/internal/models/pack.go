package models

import (
	"time"

	"github.com/google/uuid"
)

// Pack is a purchasable bundle of randomly rated players
type Pack struct {
	ID          uuid.UUID `json:"id"`
	LeagueID    uuid.UUID `json:"league_id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	PlayerCount int       `json:"player_count"`
	Season      int       `json:"season"`
}

// RatingOdds is one row of a pack's odds table; probabilities need not sum to 1
type RatingOdds struct {
	Rating      int     `json:"rating"`
	Probability float64 `json:"probability"`
}

// PackedPlayer is a player produced by a pack opening
type PackedPlayer struct {
	PlayerID    uuid.UUID `json:"player_id"`
	Name        string    `json:"name"`
	Positions   string    `json:"positions"`
	Rating      int       `json:"rating"`
	Position    string    `json:"drawn_position"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Placeholder bool      `json:"placeholder"`
}

// PackPurchase is the audit record of one pack opening
type PackPurchase struct {
	ID        uuid.UUID      `json:"id"`
	LeagueID  uuid.UUID      `json:"league_id"`
	TeamID    uuid.UUID      `json:"team_id"`
	PackID    uuid.UUID      `json:"pack_id"`
	Cost      int64          `json:"cost"`
	Seed      uuid.UUID      `json:"seed"`
	Players   []PackedPlayer `json:"players"`
	CreatedAt time.Time      `json:"created_at"`
}
