package finances

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/engine"
	"github.com/mcdev12/leaguefc/go/internal/leagues"
	"github.com/mcdev12/leaguefc/go/internal/models"
	"github.com/mcdev12/leaguefc/go/internal/wages"
)

// FinancesRepository defines what the app layer needs from the repository
type FinancesRepository interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	IsLeagueHost(ctx context.Context, leagueID, userID uuid.UUID) (bool, error)
	CountRosterPlayers(ctx context.Context, teamID uuid.UUID) (int, error)
	ListActiveContracts(ctx context.Context, teamID uuid.UUID) ([]ContractLine, error)
	Engine() engine.GameEngine
}

// App reports and projects team finances. It never writes.
type App struct {
	repo FinancesRepository
}

// NewApp creates a new finances App
func NewApp(repo FinancesRepository) *App {
	return &App{
		repo: repo,
	}
}

// Summary returns the team's budget, wage bill and contracts. Visible to the
// owner and league hosts.
func (a *App) Summary(ctx context.Context, actorID, teamID uuid.UUID) (*Summary, error) {
	team, league, err := a.teamFor(ctx, actorID, teamID)
	if err != nil {
		return nil, err
	}

	bill, err := a.repo.Engine().CalculateTeamWages(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wage bill: %w", err)
	}
	roster, err := a.repo.CountRosterPlayers(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count roster: %w", err)
	}
	contracts, err := a.repo.ListActiveContracts(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contracts: %w", err)
	}
	for i := range contracts {
		c := &contracts[i]
		c.BaseWage = wages.ComputeBaseWage(c.Rating, c.Positions)
		c.EffectiveWage = EffectiveWage(c.Contract)
	}

	return &Summary{
		TeamID:     team.ID,
		LeagueID:   league.ID,
		Season:     league.Season,
		Budget:     team.Budget,
		WageBill:   bill,
		Headroom:   team.Budget - bill,
		RosterSize: roster,
		Reserves:   len(team.Reserves),
		Contracts:  contracts,
	}, nil
}

// Simulate projects the wage bill and budget after a hypothetical action
func (a *App) Simulate(ctx context.Context, actorID, teamID uuid.UUID, action Action) (*Projection, error) {
	team, _, err := a.teamFor(ctx, actorID, teamID)
	if err != nil {
		return nil, err
	}

	bill, err := a.repo.Engine().CalculateTeamWages(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wage bill: %w", err)
	}

	var f wages.Feasibility
	switch act := action.(type) {
	case AddPlayer:
		if act.Rating < 1 || act.Rating > 99 {
			return nil, apperr.Validation("rating must be between 1 and 99")
		}
		wage := wages.ComputeBaseWage(act.Rating, act.Positions)
		if act.Wage != nil {
			if *act.Wage < 0 {
				return nil, apperr.Validation("wage must not be negative")
			}
			wage = *act.Wage
		}
		f = wages.CheckWageFeasibility(bill, wage, team.Budget)

	case RemovePlayer:
		contracts, err := a.repo.ListActiveContracts(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get contracts: %w", err)
		}
		var released *ContractLine
		for i := range contracts {
			if contracts[i].PlayerID == act.PlayerID {
				released = &contracts[i]
				break
			}
		}
		if released == nil {
			return nil, apperr.NotFound("player has no active contract with this team")
		}
		// calculate_team_wages sums raw wages, so the release frees the raw wage
		f = wages.CheckWageFeasibility(max(bill-released.Wage, 0), 0, team.Budget)

	case UpdateBudget:
		if act.Budget < 0 {
			return nil, apperr.Validation("budget must not be negative")
		}
		f = wages.CheckWageFeasibility(bill, 0, act.Budget)

	default:
		return nil, apperr.Validation("unknown finance action %T", action)
	}

	return &Projection{
		Action:        action.Name(),
		CurrentBill:   bill,
		CurrentBudget: team.Budget,
		Feasibility:   f,
	}, nil
}

func (a *App) teamFor(ctx context.Context, actorID, teamID uuid.UUID) (*models.Team, *models.League, error) {
	team, err := a.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get team: %w", err)
	}
	if team.OwnerID != actorID {
		if err := leagues.RequireHost(ctx, a.repo, team.LeagueID, actorID); err != nil {
			return nil, nil, err
		}
	}
	league, err := a.repo.GetLeague(ctx, team.LeagueID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get league: %w", err)
	}
	return team, league, nil
}
