package models

import (
	"time"

	"github.com/google/uuid"
)

type LeagueStatus string

const (
	LeagueStatusPreseasonSetup      LeagueStatus = "PRESEASON_SETUP"
	LeagueStatusInSeason            LeagueStatus = "IN_SEASON"
	LeagueStatusOffseason           LeagueStatus = "OFFSEASON"
	LeagueStatusSeasonEndProcessing LeagueStatus = "SEASON_END_PROCESSING"
	LeagueStatusArchived            LeagueStatus = "ARCHIVED"
)

// League represents a fantasy football league
type League struct {
	ID                 uuid.UUID    `json:"id"`
	Name               string       `json:"name"`
	CommissionerID     uuid.UUID    `json:"commissioner_id"`
	Season             int          `json:"season"`
	Status             LeagueStatus `json:"status"`
	FADeadline         *time.Time   `json:"fa_deadline,omitempty"`
	TransferWindowOpen bool         `json:"transfer_window_open"`
	MaxTeams           int          `json:"max_teams"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// AllowsFreeAgentBidding reports whether sealed bids may be placed
func (l *League) AllowsFreeAgentBidding() bool {
	return l.Status == LeagueStatusPreseasonSetup || l.Status == LeagueStatusOffseason
}

// AllowsSigning reports whether players may be signed directly
func (l *League) AllowsSigning() bool {
	if l.Status == LeagueStatusInSeason {
		return l.TransferWindowOpen
	}
	return l.AllowsFreeAgentBidding()
}

// RosterMovesRelaxed reports whether roster size limits are relaxed for pack openings
func (l *League) RosterMovesRelaxed() bool {
	return l.Status == LeagueStatusOffseason || (l.Status == LeagueStatusInSeason && l.TransferWindowOpen)
}
