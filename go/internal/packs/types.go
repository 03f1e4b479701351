package packs

import (
	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/models"
)

// Rules are the pack purchase limits and the terms of packed contracts
type Rules struct {
	RosterLimit         int
	ContractYears       int
	WageDiscountPercent int
	NearRatingSpread    int
}

// DefaultRules matches the stock league configuration
func DefaultRules() Rules {
	return Rules{
		RosterLimit:         20,
		ContractYears:       3,
		WageDiscountPercent: 20,
		NearRatingSpread:    2,
	}
}

// OpenRequest buys and opens one pack for a team
type OpenRequest struct {
	ActorID uuid.UUID `json:"-"`
	PackID  uuid.UUID `json:"packId" validate:"required"`
	TeamID  uuid.UUID `json:"teamId" validate:"required"`
}

// OpenResult is the opened pack with every drawn slot, placeholders included
type OpenResult struct {
	Pack    *models.Pack          `json:"pack"`
	Players []models.PackedPlayer `json:"players"`
	Budget  int64                 `json:"new_budget"`
	Seed    uuid.UUID             `json:"seed"`
}

// CatalogQuery selects catalog candidates for a slot. An empty Position
// matches any position; a positive Spread matches ratings within the spread.
type CatalogQuery struct {
	LeagueID uuid.UUID
	Rating   int
	Position string
	Spread   int
	Exclude  []uuid.UUID
}
