package db

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusResolved BidStatus = "resolved"
	BidStatusCleared  BidStatus = "cleared"
)

func (e *BidStatus) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		*e = BidStatus(s)
	case string:
		*e = BidStatus(s)
	default:
		return fmt.Errorf("unsupported scan type for BidStatus: %T", src)
	}
	return nil
}

func (e BidStatus) Value() (driver.Value, error) {
	return string(e), nil
}

type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "active"
	ContractStatusExpired    ContractStatus = "expired"
	ContractStatusTerminated ContractStatus = "terminated"
)

func (e *ContractStatus) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		*e = ContractStatus(s)
	case string:
		*e = ContractStatus(s)
	default:
		return fmt.Errorf("unsupported scan type for ContractStatus: %T", src)
	}
	return nil
}

func (e ContractStatus) Value() (driver.Value, error) {
	return string(e), nil
}

type LeagueStatus string

const (
	LeagueStatusPRESEASONSETUP      LeagueStatus = "PRESEASON_SETUP"
	LeagueStatusINSEASON            LeagueStatus = "IN_SEASON"
	LeagueStatusOFFSEASON           LeagueStatus = "OFFSEASON"
	LeagueStatusSEASONENDPROCESSING LeagueStatus = "SEASON_END_PROCESSING"
	LeagueStatusARCHIVED            LeagueStatus = "ARCHIVED"
)

func (e *LeagueStatus) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		*e = LeagueStatus(s)
	case string:
		*e = LeagueStatus(s)
	default:
		return fmt.Errorf("unsupported scan type for LeagueStatus: %T", src)
	}
	return nil
}

func (e LeagueStatus) Value() (driver.Value, error) {
	return string(e), nil
}

type OriginType string

const (
	OriginTypeDrafted OriginType = "drafted"
	OriginTypePacked  OriginType = "packed"
	OriginTypeSigned  OriginType = "signed"
	OriginTypeTrade   OriginType = "trade"
)

func (e *OriginType) Scan(src interface{}) error {
	switch s := src.(type) {
	case []byte:
		*e = OriginType(s)
	case string:
		*e = OriginType(s)
	default:
		return fmt.Errorf("unsupported scan type for OriginType: %T", src)
	}
	return nil
}

func (e OriginType) Value() (driver.Value, error) {
	return string(e), nil
}

type Contract struct {
	ID                  uuid.UUID      `json:"id"`
	LeagueID            uuid.UUID      `json:"league_id"`
	TeamID              uuid.UUID      `json:"team_id"`
	PlayerID            uuid.UUID      `json:"player_id"`
	Wage                int64          `json:"wage"`
	SigningBonus        int64          `json:"signing_bonus"`
	StartSeason         int32          `json:"start_season"`
	Years               int32          `json:"years"`
	Status              ContractStatus `json:"status"`
	WageDiscountPercent sql.NullInt32  `json:"wage_discount_percent"`
	CreatedAt           time.Time      `json:"created_at"`
}

type FreeAgentBid struct {
	ID            uuid.UUID `json:"id"`
	LeagueID      uuid.UUID `json:"league_id"`
	PlayerID      uuid.UUID `json:"player_id"`
	TeamID        uuid.UUID `json:"team_id"`
	Season        int32     `json:"season"`
	Salary        int64     `json:"salary"`
	Years         int32     `json:"years"`
	GuaranteedPct float64   `json:"guaranteed_pct"`
	SigningBonus  int64     `json:"signing_bonus"`
	NoTradeClause bool      `json:"no_trade_clause"`
	Status        BidStatus `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type League struct {
	ID                 uuid.UUID    `json:"id"`
	Name               string       `json:"name"`
	CommissionerID     uuid.UUID    `json:"commissioner_id"`
	Season             int32        `json:"season"`
	Status             LeagueStatus `json:"status"`
	FaDeadline         sql.NullTime `json:"fa_deadline"`
	TransferWindowOpen bool         `json:"transfer_window_open"`
	MaxTeams           int32        `json:"max_teams"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

type LeagueOutbox struct {
	ID        uuid.UUID    `json:"id"`
	LeagueID  uuid.UUID    `json:"league_id"`
	EventType string       `json:"event_type"`
	Payload   []byte       `json:"payload"`
	CreatedAt time.Time    `json:"created_at"`
	SentAt    sql.NullTime `json:"sent_at"`
}

type LeaguePlayer struct {
	ID          uuid.UUID     `json:"id"`
	LeagueID    uuid.UUID     `json:"league_id"`
	PlayerID    uuid.UUID     `json:"player_id"`
	TeamID      uuid.NullUUID `json:"team_id"`
	Rating      int32         `json:"rating"`
	OriginType  OriginType    `json:"origin_type"`
	IsYoungster bool          `json:"is_youngster"`
	Potential   sql.NullInt32 `json:"potential"`
	CreatedAt   time.Time     `json:"created_at"`
}

type Pack struct {
	ID          uuid.UUID `json:"id"`
	LeagueID    uuid.UUID `json:"league_id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	PlayerCount int32     `json:"player_count"`
	Season      int32     `json:"season"`
}

type PackPurchase struct {
	ID        uuid.UUID             `json:"id"`
	LeagueID  uuid.UUID             `json:"league_id"`
	TeamID    uuid.UUID             `json:"team_id"`
	PackID    uuid.UUID             `json:"pack_id"`
	Cost      int64                 `json:"cost"`
	Seed      uuid.UUID             `json:"seed"`
	Players   pqtype.NullRawMessage `json:"players"`
	CreatedAt time.Time             `json:"created_at"`
}

type PackRatingOdd struct {
	PackID      uuid.UUID `json:"pack_id"`
	Rating      int32     `json:"rating"`
	Probability float64   `json:"probability"`
}

type Player struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Positions   string                `json:"positions"`
	Rating      int32                 `json:"rating"`
	Nationality string                `json:"nationality"`
	ImageUrl    sql.NullString        `json:"image_url"`
	Attributes  pqtype.NullRawMessage `json:"attributes"`
	CreatedAt   time.Time             `json:"created_at"`
}

type Team struct {
	ID        uuid.UUID   `json:"id"`
	LeagueID  uuid.UUID   `json:"league_id"`
	OwnerID   uuid.UUID   `json:"owner_id"`
	Name      string      `json:"name"`
	Budget    int64       `json:"budget"`
	Reserves  []uuid.UUID `json:"reserves"`
	CreatedAt time.Time   `json:"created_at"`
}
