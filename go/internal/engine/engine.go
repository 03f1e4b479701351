// Package engine is the contract with the game engine's stored procedures.
// Scheduling, match simulation and season rollover live in the database; this
// package only invokes them and decodes the results it needs.
package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/db"
	"github.com/mcdev12/leaguefc/go/internal/sqlutil"
)

// GameEngine is the set of procedures the economy and season surfaces call
type GameEngine interface {
	CalculateTeamWages(ctx context.Context, teamID uuid.UUID) (int64, error)
	WriteFinanceEntry(ctx context.Context, entry FinanceEntry) error
	WriteAuditLog(ctx context.Context, entry AuditEntry) error
	ResolveFreeAgency(ctx context.Context, leagueID uuid.UUID) (FreeAgencyResolution, error)
	GenerateSchedule(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	SimulateMatchday(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	SimulateMatchdayCompetition(ctx context.Context, competitionID uuid.UUID) (json.RawMessage, error)
	EndSeason(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	ValidateLeagueRegistration(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	AutoStarterSquad(ctx context.Context, teamID uuid.UUID) (json.RawMessage, error)
	StartDraft(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	InsertMatchResult(ctx context.Context, result MatchResult) (json.RawMessage, error)
	CompetitionLeague(ctx context.Context, competitionID uuid.UUID) (uuid.UUID, error)
	MatchLeague(ctx context.Context, matchID uuid.UUID) (uuid.UUID, error)
}

// Procedures is the slice of the generated queries that call engine procedures
type Procedures interface {
	CalculateTeamWages(ctx context.Context, teamID uuid.UUID) (int64, error)
	WriteFinanceEntry(ctx context.Context, arg db.WriteFinanceEntryParams) error
	WriteAuditLog(ctx context.Context, arg db.WriteAuditLogParams) error
	ResolveFreeAgency(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	GenerateSchedule(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	SimulateMatchday(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	SimulateMatchdayCompetition(ctx context.Context, competitionID uuid.UUID) (json.RawMessage, error)
	EndSeason(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	ValidateLeagueRegistration(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	AutoStarterSquad(ctx context.Context, teamID uuid.UUID) (json.RawMessage, error)
	StartDraft(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	InsertMatchResult(ctx context.Context, arg db.InsertMatchResultParams) (json.RawMessage, error)
	GetCompetitionLeague(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	GetMatchLeague(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// FinanceEntry is one ledger movement. Negative amounts are spending.
type FinanceEntry struct {
	TeamID      uuid.UUID
	LeagueID    uuid.UUID
	Amount      int64
	Reason      string
	Description string
	Season      int
}

// AuditEntry is one row of the league audit trail
type AuditEntry struct {
	LeagueID uuid.UUID
	Action   string
	ActorID  *uuid.UUID
	Payload  any
}

// FreeAgencyResolution is the outcome reported by resolve_free_agency
type FreeAgencyResolution struct {
	Assigned int `json:"assigned"`
	Skipped  int `json:"skipped"`
}

// MatchResult is a manually entered score
type MatchResult struct {
	MatchID   uuid.UUID
	HomeGoals int
	AwayGoals int
}

// Postgres calls the engine procedures through the generated queries. Bind it
// to a transaction by constructing it from tx-bound queries.
type Postgres struct {
	q Procedures
}

// New creates a Postgres engine
func New(q Procedures) *Postgres {
	return &Postgres{q: q}
}

var _ GameEngine = (*Postgres)(nil)

func (e *Postgres) CalculateTeamWages(ctx context.Context, teamID uuid.UUID) (int64, error) {
	bill, err := e.q.CalculateTeamWages(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate team wages: %w", err)
	}
	return bill, nil
}

func (e *Postgres) WriteFinanceEntry(ctx context.Context, entry FinanceEntry) error {
	err := e.q.WriteFinanceEntry(ctx, db.WriteFinanceEntryParams{
		TeamID:      entry.TeamID,
		LeagueID:    entry.LeagueID,
		Amount:      entry.Amount,
		Reason:      entry.Reason,
		Description: sqlutil.ToSqlStringValue(entry.Description),
		Season:      int32(entry.Season),
	})
	if err != nil {
		return fmt.Errorf("failed to write finance entry: %w", err)
	}
	return nil
}

func (e *Postgres) WriteAuditLog(ctx context.Context, entry AuditEntry) error {
	var payload json.RawMessage
	if entry.Payload != nil {
		data, err := json.Marshal(entry.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal audit payload: %w", err)
		}
		payload = data
	}

	err := e.q.WriteAuditLog(ctx, db.WriteAuditLogParams{
		LeagueID: entry.LeagueID,
		Action:   entry.Action,
		ActorID:  sqlutil.ToNullUUID(entry.ActorID),
		Payload:  payload,
	})
	if err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (e *Postgres) ResolveFreeAgency(ctx context.Context, leagueID uuid.UUID) (FreeAgencyResolution, error) {
	raw, err := e.q.ResolveFreeAgency(ctx, leagueID)
	if err != nil {
		return FreeAgencyResolution{}, fmt.Errorf("failed to resolve free agency: %w", err)
	}
	return DecodeResolution(raw)
}

// DecodeResolution parses the resolve_free_agency result. Missing counts read as zero.
func DecodeResolution(raw json.RawMessage) (FreeAgencyResolution, error) {
	var res FreeAgencyResolution
	if len(raw) == 0 || string(raw) == "null" {
		return res, nil
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return res, fmt.Errorf("failed to decode free agency resolution: %w", err)
	}
	return res, nil
}

func (e *Postgres) GenerateSchedule(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error) {
	return wrap("generate schedule")(e.q.GenerateSchedule(ctx, leagueID))
}

func (e *Postgres) SimulateMatchday(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error) {
	return wrap("simulate matchday")(e.q.SimulateMatchday(ctx, leagueID))
}

func (e *Postgres) SimulateMatchdayCompetition(ctx context.Context, competitionID uuid.UUID) (json.RawMessage, error) {
	return wrap("simulate competition matchday")(e.q.SimulateMatchdayCompetition(ctx, competitionID))
}

func (e *Postgres) EndSeason(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error) {
	return wrap("end season")(e.q.EndSeason(ctx, leagueID))
}

func (e *Postgres) ValidateLeagueRegistration(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error) {
	return wrap("validate league registration")(e.q.ValidateLeagueRegistration(ctx, leagueID))
}

func (e *Postgres) AutoStarterSquad(ctx context.Context, teamID uuid.UUID) (json.RawMessage, error) {
	return wrap("pick starter squad")(e.q.AutoStarterSquad(ctx, teamID))
}

func (e *Postgres) StartDraft(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error) {
	return wrap("start draft")(e.q.StartDraft(ctx, leagueID))
}

func (e *Postgres) InsertMatchResult(ctx context.Context, result MatchResult) (json.RawMessage, error) {
	return wrap("insert match result")(e.q.InsertMatchResult(ctx, db.InsertMatchResultParams{
		MatchID:   result.MatchID,
		HomeGoals: int32(result.HomeGoals),
		AwayGoals: int32(result.AwayGoals),
	}))
}

// CompetitionLeague returns the league a competition belongs to
func (e *Postgres) CompetitionLeague(ctx context.Context, competitionID uuid.UUID) (uuid.UUID, error) {
	leagueID, err := e.q.GetCompetitionLeague(ctx, competitionID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, apperr.NotFound("competition %s not found", competitionID)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get competition league: %w", err)
	}
	return leagueID, nil
}

// MatchLeague returns the league a match is played in
func (e *Postgres) MatchLeague(ctx context.Context, matchID uuid.UUID) (uuid.UUID, error) {
	leagueID, err := e.q.GetMatchLeague(ctx, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, apperr.NotFound("match %s not found", matchID)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get match league: %w", err)
	}
	return leagueID, nil
}

func wrap(op string) func(json.RawMessage, error) (json.RawMessage, error) {
	return func(raw json.RawMessage, err error) (json.RawMessage, error) {
		if err != nil {
			return nil, fmt.Errorf("failed to %s: %w", op, err)
		}
		return raw, nil
	}
}
