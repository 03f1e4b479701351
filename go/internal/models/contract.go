package models

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "active"
	ContractStatusExpired    ContractStatus = "expired"
	ContractStatusTerminated ContractStatus = "terminated"
)

// Contract binds a player to a team for a league
type Contract struct {
	ID                  uuid.UUID      `json:"id"`
	LeagueID            uuid.UUID      `json:"league_id"`
	TeamID              uuid.UUID      `json:"team_id"`
	PlayerID            uuid.UUID      `json:"player_id"`
	Wage                int64          `json:"wage"`
	SigningBonus        int64          `json:"signing_bonus"`
	StartSeason         int            `json:"start_season"`
	Years               int            `json:"years"`
	Status              ContractStatus `json:"status"`
	WageDiscountPercent *int           `json:"wage_discount_percent,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
}
