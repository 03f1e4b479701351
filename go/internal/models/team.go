package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is a user-owned team inside a league
type Team struct {
	ID        uuid.UUID   `json:"id"`
	LeagueID  uuid.UUID   `json:"league_id"`
	OwnerID   uuid.UUID   `json:"owner_id"`
	Name      string      `json:"name"`
	Budget    int64       `json:"budget"`
	Reserves  []uuid.UUID `json:"reserves"`
	CreatedAt time.Time   `json:"created_at"`
}
