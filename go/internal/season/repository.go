package season

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/db"
	"github.com/mcdev12/leaguefc/go/internal/engine"
	"github.com/mcdev12/leaguefc/go/internal/leagues"
	"github.com/mcdev12/leaguefc/go/internal/outbox"
	"github.com/mcdev12/leaguefc/go/internal/sqlutil"
)

// Repository gives the season app league lookups, the engine and the outbox
// on one connection or transaction
type Repository struct {
	*leagues.Repository
	db      *sql.DB
	queries *db.Queries
}

// NewRepository creates a new season repository
func NewRepository(database *sql.DB) *Repository {
	return newRepository(database, db.New(database))
}

func newRepository(database *sql.DB, queries *db.Queries) *Repository {
	return &Repository{
		Repository: leagues.NewRepository(queries),
		db:         database,
		queries:    queries,
	}
}

// InTx runs fn inside one database transaction
func (r *Repository) InTx(ctx context.Context, fn func(tx Tx) error) error {
	if r.db == nil {
		return fmt.Errorf("repository is already bound to a transaction")
	}
	return sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		return fn(newRepository(nil, q))
	})
}

// Engine returns the game engine bound to the same connection or transaction
func (r *Repository) Engine() engine.GameEngine {
	return engine.New(r.queries)
}

// WriteEvent appends a domain event to the outbox
func (r *Repository) WriteEvent(ctx context.Context, leagueID uuid.UUID, eventType string, payload any) error {
	return outbox.Write(ctx, r.queries, leagueID, eventType, payload)
}

var _ Store = (*Repository)(nil)
