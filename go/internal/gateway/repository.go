package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/db"
)

// Querier defines what the gateway needs from the database layer
type Querier interface {
	IsLeagueMember(ctx context.Context, arg db.IsLeagueMemberParams) (bool, error)
}

// Repository answers league membership questions for connecting users
type Repository struct {
	queries Querier
}

// NewRepository creates a new gateway repository
func NewRepository(queries Querier) *Repository {
	return &Repository{queries: queries}
}

// IsLeagueMember reports whether the user hosts the league or owns a team in it
func (r *Repository) IsLeagueMember(ctx context.Context, leagueID, userID uuid.UUID) (bool, error) {
	ok, err := r.queries.IsLeagueMember(ctx, db.IsLeagueMemberParams{
		LeagueID: leagueID,
		UserID:   userID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check league membership: %w", err)
	}
	return ok, nil
}

var _ MembershipChecker = (*Repository)(nil)
