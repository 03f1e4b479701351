package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const assignLeaguePlayer = `-- name: AssignLeaguePlayer :execrows
UPDATE league_players
SET team_id = $1, origin_type = $2
WHERE league_id = $3
  AND player_id = $4
  AND team_id IS NULL
`

type AssignLeaguePlayerParams struct {
	TeamID     uuid.NullUUID `json:"team_id"`
	OriginType OriginType    `json:"origin_type"`
	LeagueID   uuid.UUID     `json:"league_id"`
	PlayerID   uuid.UUID     `json:"player_id"`
}

func (q *Queries) AssignLeaguePlayer(ctx context.Context, arg AssignLeaguePlayerParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, assignLeaguePlayer,
		arg.TeamID,
		arg.OriginType,
		arg.LeagueID,
		arg.PlayerID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const findCatalogPlayersByRating = `-- name: FindCatalogPlayersByRating :many
SELECT p.id, p.name, p.positions, p.rating, p.image_url
FROM players p
WHERE p.rating = $1
  AND NOT (p.id = ANY($2::uuid[]))
  AND NOT EXISTS (
      SELECT 1 FROM league_players lp
      WHERE lp.league_id = $3 AND lp.player_id = p.id
  )
ORDER BY p.id
`

type FindCatalogPlayersByRatingParams struct {
	Rating   int32       `json:"rating"`
	Exclude  []uuid.UUID `json:"exclude"`
	LeagueID uuid.UUID   `json:"league_id"`
}

type CatalogCandidate struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Positions string         `json:"positions"`
	Rating    int32          `json:"rating"`
	ImageUrl  sql.NullString `json:"image_url"`
}

func (q *Queries) FindCatalogPlayersByRating(ctx context.Context, arg FindCatalogPlayersByRatingParams) ([]CatalogCandidate, error) {
	rows, err := q.db.QueryContext(ctx, findCatalogPlayersByRating, arg.Rating, pq.Array(arg.Exclude), arg.LeagueID)
	if err != nil {
		return nil, err
	}
	return scanCatalogCandidates(rows)
}

const findCatalogPlayersByRatingAndPosition = `-- name: FindCatalogPlayersByRatingAndPosition :many
SELECT p.id, p.name, p.positions, p.rating, p.image_url
FROM players p
WHERE p.rating = $1
  AND $2::text = ANY(string_to_array(replace(p.positions, ' ', ''), ','))
  AND NOT (p.id = ANY($3::uuid[]))
  AND NOT EXISTS (
      SELECT 1 FROM league_players lp
      WHERE lp.league_id = $4 AND lp.player_id = p.id
  )
ORDER BY p.id
`

type FindCatalogPlayersByRatingAndPositionParams struct {
	Rating   int32       `json:"rating"`
	Position string      `json:"position"`
	Exclude  []uuid.UUID `json:"exclude"`
	LeagueID uuid.UUID   `json:"league_id"`
}

func (q *Queries) FindCatalogPlayersByRatingAndPosition(ctx context.Context, arg FindCatalogPlayersByRatingAndPositionParams) ([]CatalogCandidate, error) {
	rows, err := q.db.QueryContext(ctx, findCatalogPlayersByRatingAndPosition,
		arg.Rating,
		arg.Position,
		pq.Array(arg.Exclude),
		arg.LeagueID,
	)
	if err != nil {
		return nil, err
	}
	return scanCatalogCandidates(rows)
}

const findCatalogPlayersNearRating = `-- name: FindCatalogPlayersNearRating :many
SELECT p.id, p.name, p.positions, p.rating, p.image_url
FROM players p
WHERE p.rating BETWEEN $1 AND $2
  AND NOT (p.id = ANY($3::uuid[]))
  AND NOT EXISTS (
      SELECT 1 FROM league_players lp
      WHERE lp.league_id = $4 AND lp.player_id = p.id
  )
ORDER BY p.id
`

type FindCatalogPlayersNearRatingParams struct {
	MinRating int32       `json:"min_rating"`
	MaxRating int32       `json:"max_rating"`
	Exclude   []uuid.UUID `json:"exclude"`
	LeagueID  uuid.UUID   `json:"league_id"`
}

func (q *Queries) FindCatalogPlayersNearRating(ctx context.Context, arg FindCatalogPlayersNearRatingParams) ([]CatalogCandidate, error) {
	rows, err := q.db.QueryContext(ctx, findCatalogPlayersNearRating,
		arg.MinRating,
		arg.MaxRating,
		pq.Array(arg.Exclude),
		arg.LeagueID,
	)
	if err != nil {
		return nil, err
	}
	return scanCatalogCandidates(rows)
}

func scanCatalogCandidates(rows *sql.Rows) ([]CatalogCandidate, error) {
	defer rows.Close()
	var items []CatalogCandidate
	for rows.Next() {
		var i CatalogCandidate
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Positions,
			&i.Rating,
			&i.ImageUrl,
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

// LeaguePlayerRow is a league player joined with its catalog entry.
type LeaguePlayerRow struct {
	ID          uuid.UUID      `json:"id"`
	LeagueID    uuid.UUID      `json:"league_id"`
	PlayerID    uuid.UUID      `json:"player_id"`
	TeamID      uuid.NullUUID  `json:"team_id"`
	Rating      int32          `json:"rating"`
	OriginType  OriginType     `json:"origin_type"`
	IsYoungster bool           `json:"is_youngster"`
	Potential   sql.NullInt32  `json:"potential"`
	Name        string         `json:"name"`
	Positions   string         `json:"positions"`
	ImageUrl    sql.NullString `json:"image_url"`
}

const getLeaguePlayer = `-- name: GetLeaguePlayer :one
SELECT lp.id, lp.league_id, lp.player_id, lp.team_id, lp.rating, lp.origin_type,
       lp.is_youngster, lp.potential, p.name, p.positions, p.image_url
FROM league_players lp
JOIN players p ON p.id = lp.player_id
WHERE lp.league_id = $1 AND lp.player_id = $2
`

type GetLeaguePlayerParams struct {
	LeagueID uuid.UUID `json:"league_id"`
	PlayerID uuid.UUID `json:"player_id"`
}

func (q *Queries) GetLeaguePlayer(ctx context.Context, arg GetLeaguePlayerParams) (LeaguePlayerRow, error) {
	row := q.db.QueryRowContext(ctx, getLeaguePlayer, arg.LeagueID, arg.PlayerID)
	return scanLeaguePlayerRow(row)
}

const getLeaguePlayerForUpdate = `-- name: GetLeaguePlayerForUpdate :one
SELECT lp.id, lp.league_id, lp.player_id, lp.team_id, lp.rating, lp.origin_type,
       lp.is_youngster, lp.potential, p.name, p.positions, p.image_url
FROM league_players lp
JOIN players p ON p.id = lp.player_id
WHERE lp.league_id = $1 AND lp.player_id = $2
FOR UPDATE OF lp
`

type GetLeaguePlayerForUpdateParams struct {
	LeagueID uuid.UUID `json:"league_id"`
	PlayerID uuid.UUID `json:"player_id"`
}

func (q *Queries) GetLeaguePlayerForUpdate(ctx context.Context, arg GetLeaguePlayerForUpdateParams) (LeaguePlayerRow, error) {
	row := q.db.QueryRowContext(ctx, getLeaguePlayerForUpdate, arg.LeagueID, arg.PlayerID)
	return scanLeaguePlayerRow(row)
}

func scanLeaguePlayerRow(row interface{ Scan(dest ...any) error }) (LeaguePlayerRow, error) {
	var i LeaguePlayerRow
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.PlayerID,
		&i.TeamID,
		&i.Rating,
		&i.OriginType,
		&i.IsYoungster,
		&i.Potential,
		&i.Name,
		&i.Positions,
		&i.ImageUrl,
	)
	return i, err
}

func scanLeaguePlayerRows(rows *sql.Rows) ([]LeaguePlayerRow, error) {
	defer rows.Close()
	var items []LeaguePlayerRow
	for rows.Next() {
		i, err := scanLeaguePlayerRow(rows)
		if err != nil {
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

const insertLeaguePlayer = `-- name: InsertLeaguePlayer :one
INSERT INTO league_players (league_id, player_id, team_id, rating, origin_type)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, league_id, player_id, team_id, rating, origin_type, is_youngster, potential, created_at
`

type InsertLeaguePlayerParams struct {
	LeagueID   uuid.UUID     `json:"league_id"`
	PlayerID   uuid.UUID     `json:"player_id"`
	TeamID     uuid.NullUUID `json:"team_id"`
	Rating     int32         `json:"rating"`
	OriginType OriginType    `json:"origin_type"`
}

func (q *Queries) InsertLeaguePlayer(ctx context.Context, arg InsertLeaguePlayerParams) (LeaguePlayer, error) {
	row := q.db.QueryRowContext(ctx, insertLeaguePlayer,
		arg.LeagueID,
		arg.PlayerID,
		arg.TeamID,
		arg.Rating,
		arg.OriginType,
	)
	var i LeaguePlayer
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.PlayerID,
		&i.TeamID,
		&i.Rating,
		&i.OriginType,
		&i.IsYoungster,
		&i.Potential,
		&i.CreatedAt,
	)
	return i, err
}

const listFreeAgents = `-- name: ListFreeAgents :many
SELECT lp.id, lp.league_id, lp.player_id, lp.team_id, lp.rating, lp.origin_type,
       lp.is_youngster, lp.potential, p.name, p.positions, p.image_url
FROM league_players lp
JOIN players p ON p.id = lp.player_id
WHERE lp.league_id = $1
  AND lp.team_id IS NULL
  AND (
    NOT $2::boolean
    OR EXISTS (
        SELECT 1 FROM free_agent_pool fp
        WHERE fp.league_id = lp.league_id
          AND fp.season = $3
          AND fp.player_id = lp.player_id
    )
  )
ORDER BY lp.rating DESC, p.name
`

type ListFreeAgentsParams struct {
	LeagueID   uuid.UUID `json:"league_id"`
	PoolActive bool      `json:"pool_active"`
	Season     int32     `json:"season"`
}

func (q *Queries) ListFreeAgents(ctx context.Context, arg ListFreeAgentsParams) ([]LeaguePlayerRow, error) {
	rows, err := q.db.QueryContext(ctx, listFreeAgents, arg.LeagueID, arg.PoolActive, arg.Season)
	if err != nil {
		return nil, err
	}
	return scanLeaguePlayerRows(rows)
}

const listTeamPlayers = `-- name: ListTeamPlayers :many
SELECT lp.id, lp.league_id, lp.player_id, lp.team_id, lp.rating, lp.origin_type,
       lp.is_youngster, lp.potential, p.name, p.positions, p.image_url
FROM league_players lp
JOIN players p ON p.id = lp.player_id
WHERE lp.team_id = $1
ORDER BY lp.rating DESC
`

func (q *Queries) ListTeamPlayers(ctx context.Context, teamID uuid.NullUUID) ([]LeaguePlayerRow, error) {
	rows, err := q.db.QueryContext(ctx, listTeamPlayers, teamID)
	if err != nil {
		return nil, err
	}
	return scanLeaguePlayerRows(rows)
}
