package finances

import (
	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/models"
	"github.com/mcdev12/leaguefc/go/internal/wages"
)

// ContractLine is an active contract with the player's table wage
type ContractLine struct {
	models.Contract
	Name          string `json:"name"`
	Positions     string `json:"positions"`
	Rating        int    `json:"rating"`
	BaseWage      int64  `json:"base_wage"`
	EffectiveWage int64  `json:"effective_wage"`
}

// Summary is a team's financial position
type Summary struct {
	TeamID     uuid.UUID      `json:"team_id"`
	LeagueID   uuid.UUID      `json:"league_id"`
	Season     int            `json:"season"`
	Budget     int64          `json:"budget"`
	WageBill   int64          `json:"wage_bill"`
	Headroom   int64          `json:"headroom"`
	RosterSize int            `json:"roster_size"`
	Reserves   int            `json:"reserves"`
	Contracts  []ContractLine `json:"contracts"`
}

// Projection is the outcome of a what-if action
type Projection struct {
	Action        string            `json:"action"`
	CurrentBill   int64             `json:"current_wage_bill"`
	CurrentBudget int64             `json:"current_budget"`
	Feasibility   wages.Feasibility `json:"projection"`
}

// Action is one of the what-if changes a team can simulate
type Action interface {
	Name() string
	isAction()
}

// AddPlayer projects signing a player. A nil Wage uses the table wage.
type AddPlayer struct {
	Rating    int    `json:"rating" validate:"min=1,max=99"`
	Positions string `json:"positions" validate:"required"`
	Wage      *int64 `json:"wage,omitempty" validate:"omitempty,min=0"`
}

// RemovePlayer projects releasing a contracted player
type RemovePlayer struct {
	PlayerID uuid.UUID `json:"playerId" validate:"required"`
}

// UpdateBudget projects the current bill against a different budget
type UpdateBudget struct {
	Budget int64 `json:"budget" validate:"min=0"`
}

func (AddPlayer) Name() string    { return "add_player" }
func (RemovePlayer) Name() string { return "remove_player" }
func (UpdateBudget) Name() string { return "update_budget" }

func (AddPlayer) isAction()    {}
func (RemovePlayer) isAction() {}
func (UpdateBudget) isAction() {}
