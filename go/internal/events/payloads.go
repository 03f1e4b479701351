package events

import (
	"time"
)

// Event types written to the league outbox and relayed to subscribers
const (
	BidPlaced          = "BidPlaced"
	DeadlineExtended   = "DeadlineExtended"
	PlayerSigned       = "PlayerSigned"
	BidsCleared        = "BidsCleared"
	FreeAgencyResolved = "FreeAgencyResolved"
	PackOpened         = "PackOpened"
	SeasonAction       = "SeasonAction"
)

// Event payload types that are shared between the economy packages and the gateway

// BidPlacedPayload announces that a team has a sealed bid on a player. Amounts are never included.
type BidPlacedPayload struct {
	LeagueID string    `json:"league_id"`
	TeamID   string    `json:"team_id"`
	PlayerID string    `json:"player_id"`
	Season   int       `json:"season"`
	PlacedAt time.Time `json:"placed_at"`
}

// DeadlineExtendedPayload is the payload for a DeadlineExtended event
type DeadlineExtendedPayload struct {
	LeagueID    string    `json:"league_id"`
	OldDeadline time.Time `json:"old_deadline"`
	NewDeadline time.Time `json:"new_deadline"`
}

// PlayerSignedPayload is the payload for a PlayerSigned event
type PlayerSignedPayload struct {
	LeagueID     string    `json:"league_id"`
	TeamID       string    `json:"team_id"`
	PlayerID     string    `json:"player_id"`
	PlayerName   string    `json:"player_name"`
	Wage         int64     `json:"wage"`
	Years        int       `json:"years"`
	SigningBonus int64     `json:"signing_bonus"`
	SignedAt     time.Time `json:"signed_at"`
}

// BidsClearedPayload is the payload for a BidsCleared event
type BidsClearedPayload struct {
	LeagueID  string    `json:"league_id"`
	Season    int       `json:"season"`
	Cleared   int64     `json:"cleared"`
	ClearedAt time.Time `json:"cleared_at"`
}

// FreeAgencyResolvedPayload is the payload for a FreeAgencyResolved event
type FreeAgencyResolvedPayload struct {
	LeagueID   string    `json:"league_id"`
	Season     int       `json:"season"`
	Assigned   int       `json:"assigned"`
	Skipped    int       `json:"skipped"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// PackOpenedPayload is the payload for a PackOpened event
type PackOpenedPayload struct {
	LeagueID    string    `json:"league_id"`
	TeamID      string    `json:"team_id"`
	PackID      string    `json:"pack_id"`
	PackName    string    `json:"pack_name"`
	PlayerIDs   []string  `json:"player_ids"`
	Placeholder int       `json:"placeholders"`
	OpenedAt    time.Time `json:"opened_at"`
}

// SeasonActionPayload is the payload for a SeasonAction event, emitted when a host runs a lifecycle procedure
type SeasonActionPayload struct {
	LeagueID  string    `json:"league_id"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	Performed time.Time `json:"performed_at"`
}
