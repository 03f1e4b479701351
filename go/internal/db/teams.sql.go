package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const appendTeamReserves = `-- name: AppendTeamReserves :exec
UPDATE teams
SET reserves = reserves || $1::uuid[]
WHERE id = $2
`

type AppendTeamReservesParams struct {
	PlayerIds []uuid.UUID `json:"player_ids"`
	ID        uuid.UUID   `json:"id"`
}

func (q *Queries) AppendTeamReserves(ctx context.Context, arg AppendTeamReservesParams) error {
	_, err := q.db.ExecContext(ctx, appendTeamReserves, pq.Array(arg.PlayerIds), arg.ID)
	return err
}

const calculateTeamWages = `-- name: CalculateTeamWages :one
SELECT calculate_team_wages($1)::bigint
`

func (q *Queries) CalculateTeamWages(ctx context.Context, teamID uuid.UUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, calculateTeamWages, teamID)
	var column_1 int64
	err := row.Scan(&column_1)
	return column_1, err
}

const countRosterPlayers = `-- name: CountRosterPlayers :one
SELECT count(*) FROM league_players
WHERE team_id = $1
`

func (q *Queries) CountRosterPlayers(ctx context.Context, teamID uuid.NullUUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, countRosterPlayers, teamID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deductTeamBudget = `-- name: DeductTeamBudget :one
UPDATE teams
SET budget = budget - $1
WHERE id = $2 AND budget >= $1
RETURNING budget
`

type DeductTeamBudgetParams struct {
	Amount int64     `json:"amount"`
	ID     uuid.UUID `json:"id"`
}

func (q *Queries) DeductTeamBudget(ctx context.Context, arg DeductTeamBudgetParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, deductTeamBudget, arg.Amount, arg.ID)
	var budget int64
	err := row.Scan(&budget)
	return budget, err
}

const getTeam = `-- name: GetTeam :one
SELECT id, league_id, owner_id, name, budget, reserves, created_at FROM teams
WHERE id = $1
`

func (q *Queries) GetTeam(ctx context.Context, id uuid.UUID) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeam, id)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.OwnerID,
		&i.Name,
		&i.Budget,
		pq.Array(&i.Reserves),
		&i.CreatedAt,
	)
	return i, err
}

const getTeamForUpdate = `-- name: GetTeamForUpdate :one
SELECT id, league_id, owner_id, name, budget, reserves, created_at FROM teams
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetTeamForUpdate(ctx context.Context, id uuid.UUID) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeamForUpdate, id)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.OwnerID,
		&i.Name,
		&i.Budget,
		pq.Array(&i.Reserves),
		&i.CreatedAt,
	)
	return i, err
}

const writeAuditLog = `-- name: WriteAuditLog :exec
SELECT write_audit_log($1, $2, $3, $4)
`

type WriteAuditLogParams struct {
	LeagueID uuid.UUID       `json:"league_id"`
	Action   string          `json:"action"`
	ActorID  uuid.NullUUID   `json:"actor_id"`
	Payload  json.RawMessage `json:"payload"`
}

func (q *Queries) WriteAuditLog(ctx context.Context, arg WriteAuditLogParams) error {
	_, err := q.db.ExecContext(ctx, writeAuditLog,
		arg.LeagueID,
		arg.Action,
		arg.ActorID,
		arg.Payload,
	)
	return err
}

const writeFinanceEntry = `-- name: WriteFinanceEntry :exec
SELECT write_finance_entry(
    $1, $2, $3,
    $4, $5, $6
)
`

type WriteFinanceEntryParams struct {
	TeamID      uuid.UUID      `json:"team_id"`
	LeagueID    uuid.UUID      `json:"league_id"`
	Amount      int64          `json:"amount"`
	Reason      string         `json:"reason"`
	Description sql.NullString `json:"description"`
	Season      int32          `json:"season"`
}

func (q *Queries) WriteFinanceEntry(ctx context.Context, arg WriteFinanceEntryParams) error {
	_, err := q.db.ExecContext(ctx, writeFinanceEntry,
		arg.TeamID,
		arg.LeagueID,
		arg.Amount,
		arg.Reason,
		arg.Description,
		arg.Season,
	)
	return err
}
