package models

import (
	"time"

	"github.com/google/uuid"
)

type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusResolved BidStatus = "resolved"
	BidStatusCleared  BidStatus = "cleared"
)

// FreeAgentBid is a sealed offer for a free agent, mutable until resolved
type FreeAgentBid struct {
	ID            uuid.UUID `json:"id"`
	LeagueID      uuid.UUID `json:"league_id"`
	PlayerID      uuid.UUID `json:"player_id"`
	TeamID        uuid.UUID `json:"team_id"`
	Season        int       `json:"season"`
	Salary        int64     `json:"salary"`
	Years         int       `json:"years"`
	GuaranteedPct float64   `json:"guaranteed_pct"`
	SigningBonus  int64     `json:"signing_bonus"`
	NoTradeClause bool      `json:"no_trade_clause"`
	Status        BidStatus `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
