package freeagency

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/engine"
	"github.com/mcdev12/leaguefc/go/internal/models"
)

// PoolState tells whether a league restricts bidding to an explicit pool
type PoolState string

const (
	PoolStateNone   PoolState = "NO_POOL"
	PoolStateActive PoolState = "POOL_ACTIVE"
)

// MaxSignedYears bounds the length of a directly signed contract
const MaxSignedYears = 5

// Rules are the economy constants the engine enforces
type Rules struct {
	RosterCap            int
	AntiSnipeWindow      time.Duration
	DefaultContractYears int
}

// DefaultRules matches the stock league configuration
func DefaultRules() Rules {
	return Rules{
		RosterCap:            23,
		AntiSnipeWindow:      60 * time.Second,
		DefaultContractYears: 3,
	}
}

// BidRequest is a sealed offer as submitted. Numeric terms arrive loosely
// typed from clients and are normalised before validation.
type BidRequest struct {
	ActorID       uuid.UUID `json:"-"`
	LeagueID      uuid.UUID `json:"leagueId" validate:"required"`
	TeamID        uuid.UUID `json:"teamId" validate:"required"`
	PlayerID      uuid.UUID `json:"playerId" validate:"required"`
	SalaryPerYear float64   `json:"salaryPerYear"`
	ContractYears float64   `json:"contractYears"`
	GuaranteedPct *float64  `json:"guaranteedPct,omitempty"`
	SigningBonus  float64   `json:"signingBonus"`
	NoTradeClause bool      `json:"noTradeClause"`
}

// BidResult is the stored bid and the current deadline
type BidResult struct {
	Bid              *models.FreeAgentBid `json:"bid"`
	Deadline         *time.Time           `json:"deadline,omitempty"`
	DeadlineExtended bool                 `json:"deadline_extended"`
}

// SignRequest signs a free agent directly. Nil terms take defaults.
type SignRequest struct {
	ActorID      uuid.UUID `json:"-"`
	LeagueID     uuid.UUID `json:"leagueId" validate:"required"`
	TeamID       uuid.UUID `json:"teamId" validate:"required"`
	PlayerID     uuid.UUID `json:"playerId" validate:"required"`
	Salary       *int64    `json:"salary,omitempty"`
	Years        *int      `json:"years,omitempty"`
	SigningBonus *int64    `json:"signingBonus,omitempty"`
}

// SignResult is the new contract and the team budget after any bonus
type SignResult struct {
	Contract *models.Contract `json:"contract"`
	Budget   int64            `json:"budget"`
}

// ClearResult reports how many pending bids were cleared
type ClearResult struct {
	Season  int   `json:"season"`
	Cleared int64 `json:"cleared"`
}

// PoolResult reports the pool after a replacement
type PoolResult struct {
	Season  int       `json:"season"`
	State   PoolState `json:"state"`
	Players int64     `json:"players"`
}

// ResolveResult relays the engine's resolution counts
type ResolveResult struct {
	Season int `json:"season"`
	engine.FreeAgencyResolution
}

// FreeAgent is a biddable player as listed to a team
type FreeAgent struct {
	models.LeaguePlayerProfile
	BaseWage int64                `json:"base_wage"`
	MyBid    *models.FreeAgentBid `json:"my_bid,omitempty"`
}

// FreeAgentList is the market view for one league season
type FreeAgentList struct {
	LeagueID uuid.UUID           `json:"league_id"`
	Season   int                 `json:"season"`
	Status   models.LeagueStatus `json:"status"`
	State    PoolState           `json:"pool_state"`
	Deadline *time.Time          `json:"deadline,omitempty"`
	Players  []FreeAgent         `json:"players"`
}

// Action is one of the free agency mutations a client can request
type Action interface {
	isAction()
}

type PlaceBidAction struct{ BidRequest }

type SignAction struct{ SignRequest }

type ClearAction struct {
	ActorID  uuid.UUID `json:"-"`
	LeagueID uuid.UUID `json:"leagueId" validate:"required"`
}

type SetPoolAction struct {
	ActorID   uuid.UUID   `json:"-"`
	LeagueID  uuid.UUID   `json:"leagueId" validate:"required"`
	PlayerIDs []uuid.UUID `json:"playerIds"`
}

type ResolveAction struct {
	ActorID  uuid.UUID `json:"-"`
	LeagueID uuid.UUID `json:"leagueId" validate:"required"`
}

func (PlaceBidAction) isAction() {}
func (SignAction) isAction()     {}
func (ClearAction) isAction()    {}
func (SetPoolAction) isAction()  {}
func (ResolveAction) isAction()  {}
