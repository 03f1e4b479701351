package leagues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/db"
	"github.com/mcdev12/leaguefc/go/internal/models"
	"github.com/mcdev12/leaguefc/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetLeague(ctx context.Context, id uuid.UUID) (db.League, error)
	IsLeagueHost(ctx context.Context, arg db.IsLeagueHostParams) (bool, error)
	GetTeam(ctx context.Context, id uuid.UUID) (db.Team, error)
	GetTeamForUpdate(ctx context.Context, id uuid.UUID) (db.Team, error)
	CountRosterPlayers(ctx context.Context, teamID uuid.NullUUID) (int64, error)
	DeductTeamBudget(ctx context.Context, arg db.DeductTeamBudgetParams) (int64, error)
}

// Repository implements league and team data access operations. Built from
// tx-bound queries it reads and locks within that transaction.
type Repository struct {
	queries Querier
}

// NewRepository creates a new leagues repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// GetLeague retrieves a league by ID
func (r *Repository) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	league, err := r.queries.GetLeague(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("league not found")
		}
		return nil, fmt.Errorf("failed to get league: %w", err)
	}

	return DBLeagueToModel(league), nil
}

// IsLeagueHost reports whether the user is the commissioner or a co-host
func (r *Repository) IsLeagueHost(ctx context.Context, leagueID, userID uuid.UUID) (bool, error) {
	ok, err := r.queries.IsLeagueHost(ctx, db.IsLeagueHostParams{
		LeagueID: leagueID,
		UserID:   userID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check league host: %w", err)
	}
	return ok, nil
}

// GetTeam retrieves a team by ID
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := r.queries.GetTeam(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("team not found")
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return DBTeamToModel(team), nil
}

// GetTeamForUpdate retrieves a team and locks its row until the transaction ends
func (r *Repository) GetTeamForUpdate(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := r.queries.GetTeamForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("team not found")
		}
		return nil, fmt.Errorf("failed to lock team: %w", err)
	}

	return DBTeamToModel(team), nil
}

// CountRosterPlayers counts the league players assigned to a team
func (r *Repository) CountRosterPlayers(ctx context.Context, teamID uuid.UUID) (int, error) {
	n, err := r.queries.CountRosterPlayers(ctx, sqlutil.NullUUIDOf(teamID))
	if err != nil {
		return 0, fmt.Errorf("failed to count roster players: %w", err)
	}
	return int(n), nil
}

// DeductBudget subtracts amount from the team budget unless that would make it negative
func (r *Repository) DeductBudget(ctx context.Context, teamID uuid.UUID, amount int64) (int64, error) {
	budget, err := r.queries.DeductTeamBudget(ctx, db.DeductTeamBudgetParams{
		Amount: amount,
		ID:     teamID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.InsufficientBudget("budget cannot cover %d", amount)
		}
		return 0, fmt.Errorf("failed to deduct team budget: %w", err)
	}
	return budget, nil
}

// DBLeagueToModel converts a database league to domain model
func DBLeagueToModel(dbLeague db.League) *models.League {
	return &models.League{
		ID:                 dbLeague.ID,
		Name:               dbLeague.Name,
		CommissionerID:     dbLeague.CommissionerID,
		Season:             int(dbLeague.Season),
		Status:             models.LeagueStatus(dbLeague.Status),
		FADeadline:         sqlutil.FromSqlTime(dbLeague.FaDeadline),
		TransferWindowOpen: dbLeague.TransferWindowOpen,
		MaxTeams:           int(dbLeague.MaxTeams),
		CreatedAt:          dbLeague.CreatedAt,
		UpdatedAt:          dbLeague.UpdatedAt,
	}
}

// DBTeamToModel converts a database team to domain model
func DBTeamToModel(dbTeam db.Team) *models.Team {
	reserves := dbTeam.Reserves
	if reserves == nil {
		reserves = []uuid.UUID{}
	}
	return &models.Team{
		ID:        dbTeam.ID,
		LeagueID:  dbTeam.LeagueID,
		OwnerID:   dbTeam.OwnerID,
		Name:      dbTeam.Name,
		Budget:    dbTeam.Budget,
		Reserves:  reserves,
		CreatedAt: dbTeam.CreatedAt,
	}
}
