package leagues

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/models"
)

// LeaguesRepository defines what the app layer needs from the repository
type LeaguesRepository interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	IsLeagueHost(ctx context.Context, leagueID, userID uuid.UUID) (bool, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// App handles league lookups and access checks
type App struct {
	repo LeaguesRepository
}

// NewApp creates a new leagues App
func NewApp(repo LeaguesRepository) *App {
	return &App{
		repo: repo,
	}
}

// GetLeague retrieves a league by ID
func (a *App) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	league, err := a.repo.GetLeague(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	return league, nil
}

// GetTeamContext retrieves a team and its league
func (a *App) GetTeamContext(ctx context.Context, teamID uuid.UUID) (*TeamContext, error) {
	team, err := a.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	league, err := a.repo.GetLeague(ctx, team.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team league: %w", err)
	}
	return &TeamContext{Team: team, League: league}, nil
}

// RequireHost fails with Forbidden unless the user hosts the league
func (a *App) RequireHost(ctx context.Context, leagueID, userID uuid.UUID) error {
	return RequireHost(ctx, a.repo, leagueID, userID)
}

// RequireTeamOwner loads the team and fails with Forbidden unless the user owns it
func (a *App) RequireTeamOwner(ctx context.Context, teamID, userID uuid.UUID) (*models.Team, error) {
	team, err := a.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if err := RequireOwner(team, userID); err != nil {
		return nil, err
	}
	return team, nil
}

// Access reports the user's host and ownership rights for a team's league
func (a *App) Access(ctx context.Context, teamID, userID uuid.UUID) (*Access, error) {
	team, err := a.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	host, err := a.repo.IsLeagueHost(ctx, team.LeagueID, userID)
	if err != nil {
		return nil, err
	}
	return &Access{UserID: userID, IsHost: host, OwnsTeam: team.OwnerID == userID}, nil
}

// TeamOverview returns a team with its league to the owner or a league host
func (a *App) TeamOverview(ctx context.Context, actorID, teamID uuid.UUID) (*TeamOverview, error) {
	tc, err := a.GetTeamContext(ctx, teamID)
	if err != nil {
		return nil, err
	}
	host, err := a.repo.IsLeagueHost(ctx, tc.League.ID, actorID)
	if err != nil {
		return nil, err
	}
	access := Access{UserID: actorID, IsHost: host, OwnsTeam: tc.Team.OwnerID == actorID}
	if !access.IsHost && !access.OwnsTeam {
		return nil, apperr.Forbidden("you do not have access to this team")
	}
	return &TeamOverview{TeamContext: *tc, Access: access}, nil
}

// HostChecker is the lookup RequireHost needs
type HostChecker interface {
	IsLeagueHost(ctx context.Context, leagueID, userID uuid.UUID) (bool, error)
}

// RequireHost fails with Forbidden unless the user hosts the league
func RequireHost(ctx context.Context, hc HostChecker, leagueID, userID uuid.UUID) error {
	ok, err := hc.IsLeagueHost(ctx, leagueID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden("only a league host can do this")
	}
	return nil
}

// RequireOwner fails with Forbidden unless the user owns the team
func RequireOwner(team *models.Team, userID uuid.UUID) error {
	if team.OwnerID != userID {
		return apperr.Forbidden("you do not own this team")
	}
	return nil
}
