package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const clearPendingBids = `-- name: ClearPendingBids :execrows
UPDATE free_agent_bids
SET status = 'cleared'
WHERE league_id = $1 AND season = $2 AND status = 'pending'
`

type ClearPendingBidsParams struct {
	LeagueID uuid.UUID `json:"league_id"`
	Season   int32     `json:"season"`
}

func (q *Queries) ClearPendingBids(ctx context.Context, arg ClearPendingBidsParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, clearPendingBids, arg.LeagueID, arg.Season)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const clearPendingBidsForPlayer = `-- name: ClearPendingBidsForPlayer :execrows
UPDATE free_agent_bids
SET status = 'cleared'
WHERE league_id = $1 AND season = $2 AND player_id = $3 AND status = 'pending'
`

type ClearPendingBidsForPlayerParams struct {
	LeagueID uuid.UUID `json:"league_id"`
	Season   int32     `json:"season"`
	PlayerID uuid.UUID `json:"player_id"`
}

func (q *Queries) ClearPendingBidsForPlayer(ctx context.Context, arg ClearPendingBidsForPlayerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, clearPendingBidsForPlayer, arg.LeagueID, arg.Season, arg.PlayerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countPoolPlayers = `-- name: CountPoolPlayers :one
SELECT count(*) FROM free_agent_pool
WHERE league_id = $1 AND season = $2
`

type CountPoolPlayersParams struct {
	LeagueID uuid.UUID `json:"league_id"`
	Season   int32     `json:"season"`
}

func (q *Queries) CountPoolPlayers(ctx context.Context, arg CountPoolPlayersParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPoolPlayers, arg.LeagueID, arg.Season)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deletePendingBid = `-- name: DeletePendingBid :exec
DELETE FROM free_agent_bids
WHERE league_id = $1 AND player_id = $2 AND team_id = $3 AND season = $4
  AND status = 'pending'
`

type DeletePendingBidParams struct {
	LeagueID uuid.UUID `json:"league_id"`
	PlayerID uuid.UUID `json:"player_id"`
	TeamID   uuid.UUID `json:"team_id"`
	Season   int32     `json:"season"`
}

func (q *Queries) DeletePendingBid(ctx context.Context, arg DeletePendingBidParams) error {
	_, err := q.db.ExecContext(ctx, deletePendingBid,
		arg.LeagueID,
		arg.PlayerID,
		arg.TeamID,
		arg.Season,
	)
	return err
}

const deletePool = `-- name: DeletePool :exec
DELETE FROM free_agent_pool
WHERE league_id = $1 AND season = $2
`

type DeletePoolParams struct {
	LeagueID uuid.UUID `json:"league_id"`
	Season   int32     `json:"season"`
}

func (q *Queries) DeletePool(ctx context.Context, arg DeletePoolParams) error {
	_, err := q.db.ExecContext(ctx, deletePool, arg.LeagueID, arg.Season)
	return err
}

const insertFreeAgentBid = `-- name: InsertFreeAgentBid :one
INSERT INTO free_agent_bids (
    league_id, player_id, team_id, season, salary, years,
    guaranteed_pct, signing_bonus, no_trade_clause
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, league_id, player_id, team_id, season, salary, years, guaranteed_pct, signing_bonus, no_trade_clause, status, created_at
`

type InsertFreeAgentBidParams struct {
	LeagueID      uuid.UUID `json:"league_id"`
	PlayerID      uuid.UUID `json:"player_id"`
	TeamID        uuid.UUID `json:"team_id"`
	Season        int32     `json:"season"`
	Salary        int64     `json:"salary"`
	Years         int32     `json:"years"`
	GuaranteedPct float64   `json:"guaranteed_pct"`
	SigningBonus  int64     `json:"signing_bonus"`
	NoTradeClause bool      `json:"no_trade_clause"`
}

func (q *Queries) InsertFreeAgentBid(ctx context.Context, arg InsertFreeAgentBidParams) (FreeAgentBid, error) {
	row := q.db.QueryRowContext(ctx, insertFreeAgentBid,
		arg.LeagueID,
		arg.PlayerID,
		arg.TeamID,
		arg.Season,
		arg.Salary,
		arg.Years,
		arg.GuaranteedPct,
		arg.SigningBonus,
		arg.NoTradeClause,
	)
	var i FreeAgentBid
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.PlayerID,
		&i.TeamID,
		&i.Season,
		&i.Salary,
		&i.Years,
		&i.GuaranteedPct,
		&i.SigningBonus,
		&i.NoTradeClause,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const insertPoolPlayers = `-- name: InsertPoolPlayers :execrows
INSERT INTO free_agent_pool (league_id, season, player_id)
SELECT lp.league_id, $1, lp.player_id
FROM league_players lp
WHERE lp.league_id = $2
  AND lp.team_id IS NULL
  AND lp.player_id = ANY($3::uuid[])
ON CONFLICT DO NOTHING
`

type InsertPoolPlayersParams struct {
	Season    int32       `json:"season"`
	LeagueID  uuid.UUID   `json:"league_id"`
	PlayerIds []uuid.UUID `json:"player_ids"`
}

func (q *Queries) InsertPoolPlayers(ctx context.Context, arg InsertPoolPlayersParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertPoolPlayers, arg.Season, arg.LeagueID, pq.Array(arg.PlayerIds))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const isPoolPlayer = `-- name: IsPoolPlayer :one
SELECT EXISTS (
    SELECT 1 FROM free_agent_pool
    WHERE league_id = $1 AND season = $2 AND player_id = $3
)
`

type IsPoolPlayerParams struct {
	LeagueID uuid.UUID `json:"league_id"`
	Season   int32     `json:"season"`
	PlayerID uuid.UUID `json:"player_id"`
}

func (q *Queries) IsPoolPlayer(ctx context.Context, arg IsPoolPlayerParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, isPoolPlayer, arg.LeagueID, arg.Season, arg.PlayerID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listPendingBidsByTeam = `-- name: ListPendingBidsByTeam :many
SELECT id, league_id, player_id, team_id, season, salary, years, guaranteed_pct, signing_bonus, no_trade_clause, status, created_at FROM free_agent_bids
WHERE league_id = $1 AND team_id = $2 AND season = $3 AND status = 'pending'
`

type ListPendingBidsByTeamParams struct {
	LeagueID uuid.UUID `json:"league_id"`
	TeamID   uuid.UUID `json:"team_id"`
	Season   int32     `json:"season"`
}

func (q *Queries) ListPendingBidsByTeam(ctx context.Context, arg ListPendingBidsByTeamParams) ([]FreeAgentBid, error) {
	rows, err := q.db.QueryContext(ctx, listPendingBidsByTeam, arg.LeagueID, arg.TeamID, arg.Season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FreeAgentBid
	for rows.Next() {
		var i FreeAgentBid
		if err := rows.Scan(
			&i.ID,
			&i.LeagueID,
			&i.PlayerID,
			&i.TeamID,
			&i.Season,
			&i.Salary,
			&i.Years,
			&i.GuaranteedPct,
			&i.SigningBonus,
			&i.NoTradeClause,
			&i.Status,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
