package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const getPack = `-- name: GetPack :one
SELECT id, league_id, name, price, player_count, season FROM packs
WHERE id = $1
`

func (q *Queries) GetPack(ctx context.Context, id uuid.UUID) (Pack, error) {
	row := q.db.QueryRowContext(ctx, getPack, id)
	var i Pack
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.Name,
		&i.Price,
		&i.PlayerCount,
		&i.Season,
	)
	return i, err
}

const insertPackPurchase = `-- name: InsertPackPurchase :one
INSERT INTO pack_purchases (league_id, team_id, pack_id, cost, seed, players)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, league_id, team_id, pack_id, cost, seed, players, created_at
`

type InsertPackPurchaseParams struct {
	LeagueID uuid.UUID             `json:"league_id"`
	TeamID   uuid.UUID             `json:"team_id"`
	PackID   uuid.UUID             `json:"pack_id"`
	Cost     int64                 `json:"cost"`
	Seed     uuid.UUID             `json:"seed"`
	Players  pqtype.NullRawMessage `json:"players"`
}

func (q *Queries) InsertPackPurchase(ctx context.Context, arg InsertPackPurchaseParams) (PackPurchase, error) {
	row := q.db.QueryRowContext(ctx, insertPackPurchase,
		arg.LeagueID,
		arg.TeamID,
		arg.PackID,
		arg.Cost,
		arg.Seed,
		arg.Players,
	)
	var i PackPurchase
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.TeamID,
		&i.PackID,
		&i.Cost,
		&i.Seed,
		&i.Players,
		&i.CreatedAt,
	)
	return i, err
}

const listPackPurchasesByLeague = `-- name: ListPackPurchasesByLeague :many
SELECT id, league_id, team_id, pack_id, cost, seed, players, created_at FROM pack_purchases
WHERE league_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListPackPurchasesByLeague(ctx context.Context, leagueID uuid.UUID) ([]PackPurchase, error) {
	rows, err := q.db.QueryContext(ctx, listPackPurchasesByLeague, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PackPurchase
	for rows.Next() {
		var i PackPurchase
		if err := rows.Scan(
			&i.ID,
			&i.LeagueID,
			&i.TeamID,
			&i.PackID,
			&i.Cost,
			&i.Seed,
			&i.Players,
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

const listPackRatingOdds = `-- name: ListPackRatingOdds :many
SELECT pack_id, rating, probability FROM pack_rating_odds
WHERE pack_id = $1
ORDER BY rating
`

func (q *Queries) ListPackRatingOdds(ctx context.Context, packID uuid.UUID) ([]PackRatingOdd, error) {
	rows, err := q.db.QueryContext(ctx, listPackRatingOdds, packID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PackRatingOdd
	for rows.Next() {
		var i PackRatingOdd
		if err := rows.Scan(&i.PackID, &i.Rating, &i.Probability); err != nil {
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
