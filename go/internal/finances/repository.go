package finances

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/db"
	"github.com/mcdev12/leaguefc/go/internal/engine"
	"github.com/mcdev12/leaguefc/go/internal/leagues"
	"github.com/mcdev12/leaguefc/go/internal/models"
	"github.com/mcdev12/leaguefc/go/internal/sqlutil"
	"github.com/mcdev12/leaguefc/go/internal/wages"
)

// Repository implements read-only finance data access
type Repository struct {
	*leagues.Repository
	queries *db.Queries
}

// NewRepository creates a new finances repository
func NewRepository(database *sql.DB) *Repository {
	queries := db.New(database)
	return &Repository{
		Repository: leagues.NewRepository(queries),
		queries:    queries,
	}
}

// Engine returns the game engine on the repository's connection
func (r *Repository) Engine() engine.GameEngine {
	return engine.New(r.queries)
}

// ListActiveContracts lists the team's active contracts, highest wage first
func (r *Repository) ListActiveContracts(ctx context.Context, teamID uuid.UUID) ([]ContractLine, error) {
	rows, err := r.queries.ListActiveContractsByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active contracts: %w", err)
	}

	lines := make([]ContractLine, len(rows))
	for i, row := range rows {
		lines[i] = ContractLine{
			Contract: models.Contract{
				ID:                  row.ID,
				LeagueID:            row.LeagueID,
				TeamID:              row.TeamID,
				PlayerID:            row.PlayerID,
				Wage:                row.Wage,
				SigningBonus:        row.SigningBonus,
				StartSeason:         int(row.StartSeason),
				Years:               int(row.Years),
				Status:              models.ContractStatus(row.Status),
				WageDiscountPercent: sqlutil.FromSqlInt32(row.WageDiscountPercent),
				CreatedAt:           row.CreatedAt,
			},
			Name:      row.Name,
			Positions: row.Positions,
			Rating:    int(row.Rating),
		}
	}
	return lines, nil
}

// EffectiveWage applies the contract's discount, if any
func EffectiveWage(c models.Contract) int64 {
	if c.WageDiscountPercent == nil {
		return c.Wage
	}
	return wages.ApplyDiscount(c.Wage, *c.WageDiscountPercent)
}

var _ FinancesRepository = (*Repository)(nil)
