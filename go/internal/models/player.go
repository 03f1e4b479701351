package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Player is an entry in the global EAFC scouting catalog
type Player struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Positions   string          `json:"positions"` // comma-separated, first is primary
	Rating      int             `json:"rating"`
	Nationality string          `json:"nationality"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OriginType records how a player entered a league
type OriginType string

const (
	OriginDrafted OriginType = "drafted"
	OriginPacked  OriginType = "packed"
	OriginSigned  OriginType = "signed"
	OriginTrade   OriginType = "trade"
)

// LeaguePlayer binds a catalog player to one league and optionally one team
type LeaguePlayer struct {
	ID          uuid.UUID  `json:"id"`
	LeagueID    uuid.UUID  `json:"league_id"`
	PlayerID    uuid.UUID  `json:"player_id"`
	TeamID      *uuid.UUID `json:"team_id,omitempty"`
	Rating      int        `json:"rating"`
	OriginType  OriginType `json:"origin_type"`
	IsYoungster bool       `json:"is_youngster"`
	Potential   *int       `json:"potential,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsFreeAgent reports whether the player is unassigned
func (lp *LeaguePlayer) IsFreeAgent() bool {
	return lp.TeamID == nil
}

// LeaguePlayerProfile is a league player with its catalog details
type LeaguePlayerProfile struct {
	LeaguePlayer
	Name      string  `json:"name"`
	Positions string  `json:"positions"`
	ImageURL  *string `json:"image_url,omitempty"`
}
