package db

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const fetchOutboxByID = `-- name: FetchOutboxByID :one
SELECT id, league_id, event_type, payload, created_at, sent_at FROM league_outbox
WHERE id = $1 AND sent_at IS NULL
`

func (q *Queries) FetchOutboxByID(ctx context.Context, id uuid.UUID) (LeagueOutbox, error) {
	row := q.db.QueryRowContext(ctx, fetchOutboxByID, id)
	var i LeagueOutbox
	err := row.Scan(
		&i.ID,
		&i.LeagueID,
		&i.EventType,
		&i.Payload,
		&i.CreatedAt,
		&i.SentAt,
	)
	return i, err
}

const fetchUnsentOutbox = `-- name: FetchUnsentOutbox :many
SELECT id, league_id, event_type, payload, created_at, sent_at FROM league_outbox
WHERE sent_at IS NULL
ORDER BY created_at
LIMIT $1
FOR UPDATE SKIP LOCKED
`

func (q *Queries) FetchUnsentOutbox(ctx context.Context, limit int32) ([]LeagueOutbox, error) {
	rows, err := q.db.QueryContext(ctx, fetchUnsentOutbox, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LeagueOutbox
	for rows.Next() {
		var i LeagueOutbox
		if err := rows.Scan(
			&i.ID,
			&i.LeagueID,
			&i.EventType,
			&i.Payload,
			&i.CreatedAt,
			&i.SentAt,
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

const insertOutboxEvent = `-- name: InsertOutboxEvent :exec
INSERT INTO league_outbox (id, league_id, event_type, payload)
VALUES ($1, $2, $3, $4)
`

type InsertOutboxEventParams struct {
	ID        uuid.UUID       `json:"id"`
	LeagueID  uuid.UUID       `json:"league_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
}

func (q *Queries) InsertOutboxEvent(ctx context.Context, arg InsertOutboxEventParams) error {
	_, err := q.db.ExecContext(ctx, insertOutboxEvent,
		arg.ID,
		arg.LeagueID,
		arg.EventType,
		arg.Payload,
	)
	return err
}

const markOutboxSent = `-- name: MarkOutboxSent :exec
UPDATE league_outbox
SET sent_at = now()
WHERE id = $1
`

func (q *Queries) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, markOutboxSent, id)
	return err
}
