package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const extendFADeadline = `-- name: ExtendFADeadline :execrows
UPDATE leagues
SET fa_deadline = $1, updated_at = now()
WHERE id = $2
  AND fa_deadline IS NOT NULL
  AND fa_deadline >= $3
  AND fa_deadline < $1
`

type ExtendFADeadlineParams struct {
	NewDeadline time.Time `json:"new_deadline"`
	ID          uuid.UUID `json:"id"`
	Now         time.Time `json:"now"`
}

func (q *Queries) ExtendFADeadline(ctx context.Context, arg ExtendFADeadlineParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, extendFADeadline, arg.NewDeadline, arg.ID, arg.Now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getLeague = `-- name: GetLeague :one
SELECT id, name, commissioner_id, season, status, fa_deadline, transfer_window_open, max_teams, created_at, updated_at FROM leagues
WHERE id = $1
`

func (q *Queries) GetLeague(ctx context.Context, id uuid.UUID) (League, error) {
	row := q.db.QueryRowContext(ctx, getLeague, id)
	var i League
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.CommissionerID,
		&i.Season,
		&i.Status,
		&i.FaDeadline,
		&i.TransferWindowOpen,
		&i.MaxTeams,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getSessionUser = `-- name: GetSessionUser :one
SELECT user_id FROM user_sessions
WHERE token = $1 AND expires_at > now()
`

func (q *Queries) GetSessionUser(ctx context.Context, token string) (uuid.UUID, error) {
	row := q.db.QueryRowContext(ctx, getSessionUser, token)
	var user_id uuid.UUID
	err := row.Scan(&user_id)
	return user_id, err
}

const isLeagueHost = `-- name: IsLeagueHost :one
SELECT EXISTS (
    SELECT 1 FROM leagues l WHERE l.id = $1 AND l.commissioner_id = $2
    UNION ALL
    SELECT 1 FROM league_hosts h WHERE h.league_id = $1 AND h.user_id = $2
)
`

type IsLeagueHostParams struct {
	LeagueID uuid.UUID `json:"league_id"`
	UserID   uuid.UUID `json:"user_id"`
}

func (q *Queries) IsLeagueHost(ctx context.Context, arg IsLeagueHostParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, isLeagueHost, arg.LeagueID, arg.UserID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const isLeagueMember = `-- name: IsLeagueMember :one
SELECT EXISTS (
    SELECT 1 FROM leagues l WHERE l.id = $1 AND l.commissioner_id = $2
    UNION ALL
    SELECT 1 FROM league_hosts h WHERE h.league_id = $1 AND h.user_id = $2
    UNION ALL
    SELECT 1 FROM teams t WHERE t.league_id = $1 AND t.owner_id = $2
)
`

type IsLeagueMemberParams struct {
	LeagueID uuid.UUID `json:"league_id"`
	UserID   uuid.UUID `json:"user_id"`
}

func (q *Queries) IsLeagueMember(ctx context.Context, arg IsLeagueMemberParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, isLeagueMember, arg.LeagueID, arg.UserID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}
