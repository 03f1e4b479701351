package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/leaguefc/go/internal/db"
	"github.com/mcdev12/leaguefc/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]db.LeagueOutbox, error)
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (db.LeagueOutbox, error)
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
}

// ErrEventNotFound is returned when an event is missing or was already relayed
var ErrEventNotFound = errors.New("outbox event not found or already sent")

type Repository struct {
	queries Querier
}

func NewRepository(queries Querier) *Repository {
	return &Repository{
		queries: queries,
	}
}

func (r *Repository) FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := r.queries.FetchUnsentOutbox(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}

	events := make([]OutboxEvent, len(rows))
	for i, row := range rows {
		events[i] = dbEventToModel(row)
	}
	return events, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.MarkOutboxSent(ctx, id); err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}

func (r *Repository) FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	row, err := r.queries.FetchOutboxByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to fetch outbox event by ID: %w", err)
	}

	event := dbEventToModel(row)
	return &event, nil
}

func dbEventToModel(row db.LeagueOutbox) OutboxEvent {
	return OutboxEvent{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		EventType: row.EventType,
		Payload:   row.Payload,
		CreatedAt: row.CreatedAt,
		SentAt:    sqlutil.FromSqlTime(row.SentAt),
	}
}
