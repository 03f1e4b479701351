package db

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const resolveFreeAgency = `-- name: ResolveFreeAgency :one
SELECT resolve_free_agency($1)::jsonb
`

func (q *Queries) ResolveFreeAgency(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error) {
	row := q.db.QueryRowContext(ctx, resolveFreeAgency, leagueID)
	var column_1 json.RawMessage
	err := row.Scan(&column_1)
	return column_1, err
}

const generateSchedule = `-- name: GenerateSchedule :one
SELECT generate_schedule($1)::jsonb
`

func (q *Queries) GenerateSchedule(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error) {
	row := q.db.QueryRowContext(ctx, generateSchedule, leagueID)
	var column_1 json.RawMessage
	err := row.Scan(&column_1)
	return column_1, err
}

const simulateMatchday = `-- name: SimulateMatchday :one
SELECT simulate_matchday($1)::jsonb
`

func (q *Queries) SimulateMatchday(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error) {
	row := q.db.QueryRowContext(ctx, simulateMatchday, leagueID)
	var column_1 json.RawMessage
	err := row.Scan(&column_1)
	return column_1, err
}

const simulateMatchdayCompetition = `-- name: SimulateMatchdayCompetition :one
SELECT simulate_matchday_competition($1)::jsonb
`

func (q *Queries) SimulateMatchdayCompetition(ctx context.Context, competitionID uuid.UUID) (json.RawMessage, error) {
	row := q.db.QueryRowContext(ctx, simulateMatchdayCompetition, competitionID)
	var column_1 json.RawMessage
	err := row.Scan(&column_1)
	return column_1, err
}

const endSeason = `-- name: EndSeason :one
SELECT end_season($1)::jsonb
`

func (q *Queries) EndSeason(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error) {
	row := q.db.QueryRowContext(ctx, endSeason, leagueID)
	var column_1 json.RawMessage
	err := row.Scan(&column_1)
	return column_1, err
}

const validateLeagueRegistration = `-- name: ValidateLeagueRegistration :one
SELECT validate_league_registration($1)::jsonb
`

func (q *Queries) ValidateLeagueRegistration(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error) {
	row := q.db.QueryRowContext(ctx, validateLeagueRegistration, leagueID)
	var column_1 json.RawMessage
	err := row.Scan(&column_1)
	return column_1, err
}

const autoStarterSquad = `-- name: AutoStarterSquad :one
SELECT auto_starter_squad($1)::jsonb
`

func (q *Queries) AutoStarterSquad(ctx context.Context, teamID uuid.UUID) (json.RawMessage, error) {
	row := q.db.QueryRowContext(ctx, autoStarterSquad, teamID)
	var column_1 json.RawMessage
	err := row.Scan(&column_1)
	return column_1, err
}

const startDraft = `-- name: StartDraft :one
SELECT start_draft($1)::jsonb
`

func (q *Queries) StartDraft(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error) {
	row := q.db.QueryRowContext(ctx, startDraft, leagueID)
	var column_1 json.RawMessage
	err := row.Scan(&column_1)
	return column_1, err
}

const insertMatchResult = `-- name: InsertMatchResult :one
SELECT insert_match_result($1, $2, $3)::jsonb
`

type InsertMatchResultParams struct {
	MatchID   uuid.UUID `json:"match_id"`
	HomeGoals int32     `json:"home_goals"`
	AwayGoals int32     `json:"away_goals"`
}

func (q *Queries) InsertMatchResult(ctx context.Context, arg InsertMatchResultParams) (json.RawMessage, error) {
	row := q.db.QueryRowContext(ctx, insertMatchResult, arg.MatchID, arg.HomeGoals, arg.AwayGoals)
	var column_1 json.RawMessage
	err := row.Scan(&column_1)
	return column_1, err
}

const getCompetitionLeague = `-- name: GetCompetitionLeague :one
SELECT league_id FROM competitions
WHERE id = $1
`

func (q *Queries) GetCompetitionLeague(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRowContext(ctx, getCompetitionLeague, id)
	var league_id uuid.UUID
	err := row.Scan(&league_id)
	return league_id, err
}

const getMatchLeague = `-- name: GetMatchLeague :one
SELECT c.league_id
FROM matches m
JOIN competitions c ON c.id = m.competition_id
WHERE m.id = $1
`

func (q *Queries) GetMatchLeague(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := q.db.QueryRowContext(ctx, getMatchLeague, id)
	var league_id uuid.UUID
	err := row.Scan(&league_id)
	return league_id, err
}
