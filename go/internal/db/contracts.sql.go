package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const listActiveContractsByTeam = `-- name: ListActiveContractsByTeam :many
SELECT c.id, c.league_id, c.team_id, c.player_id, c.wage, c.signing_bonus,
       c.start_season, c.years, c.status, c.wage_discount_percent, c.created_at,
       p.name, p.positions, COALESCE(lp.rating, p.rating)::int AS rating
FROM contracts c
JOIN players p ON p.id = c.player_id
LEFT JOIN league_players lp ON lp.league_id = c.league_id AND lp.player_id = c.player_id
WHERE c.team_id = $1 AND c.status = 'active'
ORDER BY c.wage DESC
`

type ListActiveContractsByTeamRow struct {
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
	Name                string         `json:"name"`
	Positions           string         `json:"positions"`
	Rating              int32          `json:"rating"`
}

func (q *Queries) ListActiveContractsByTeam(ctx context.Context, teamID uuid.UUID) ([]ListActiveContractsByTeamRow, error) {
	rows, err := q.db.QueryContext(ctx, listActiveContractsByTeam, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListActiveContractsByTeamRow
	for rows.Next() {
		var i ListActiveContractsByTeamRow
		if err := rows.Scan(
			&i.ID,
			&i.LeagueID,
			&i.TeamID,
			&i.PlayerID,
			&i.Wage,
			&i.SigningBonus,
			&i.StartSeason,
			&i.Years,
			&i.Status,
			&i.WageDiscountPercent,
			&i.CreatedAt,
			&i.Name,
			&i.Positions,
			&i.Rating,
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

const upsertContract = `-- name: UpsertContract :one
INSERT INTO contracts (
    league_id, team_id, player_id, wage, signing_bonus,
    start_season, years, status, wage_discount_percent
) VALUES ($1, $2, $3, $4, $5, $6, $7, 'active', $8)
ON CONFLICT (team_id, player_id) DO UPDATE
SET wage = EXCLUDED.wage,
    signing_bonus = EXCLUDED.signing_bonus,
    start_season = EXCLUDED.start_season,
    years = EXCLUDED.years,
    status = 'active',
    wage_discount_percent = EXCLUDED.wage_discount_percent
RETURNING id, league_id, team_id, player_id, wage, signing_bonus, start_season, years, status, wage_discount_percent, created_at
`

type UpsertContractParams struct {
	LeagueID            uuid.UUID     `json:"league_id"`
	TeamID              uuid.UUID     `json:"team_id"`
	PlayerID            uuid.UUID     `json:"player_id"`
	Wage                int64         `json:"wage"`
	SigningBonus        int64         `json:"signing_bonus"`
	StartSeason         int32         `json:"start_season"`
	Years               int32         `json:"years"`
	WageDiscountPercent sql.NullInt32 `json:"wage_discount_percent"`
}

func (q *Queries) UpsertContract(ctx context.Context, arg UpsertContractParams) (Contract, error) {
	row := q.db.QueryRowContext(ctx, upsertContract,
		arg.LeagueID,
		arg.TeamID,
		arg.PlayerID,
		arg.Wage,
		arg.SigningBonus,
		arg.StartSeason,
		arg.Years,
		arg.WageDiscountPercent,
	)
	var i Contract
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.TeamID,
		&i.PlayerID,
		&i.Wage,
		&i.SigningBonus,
		&i.StartSeason,
		&i.Years,
		&i.Status,
		&i.WageDiscountPercent,
		&i.CreatedAt,
	)
	return i, err
}
