package season

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/engine"
	"github.com/mcdev12/leaguefc/go/internal/events"
	"github.com/mcdev12/leaguefc/go/internal/leagues"
	"github.com/mcdev12/leaguefc/go/internal/models"
)

// Tx is what a lifecycle action needs inside its transaction
type Tx interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	IsLeagueHost(ctx context.Context, leagueID, userID uuid.UUID) (bool, error)
	Engine() engine.GameEngine
	WriteEvent(ctx context.Context, leagueID uuid.UUID, eventType string, payload any) error
}

// Store opens the transaction a lifecycle action runs in
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// App lets league hosts drive the season procedures
type App struct {
	store Store
	clock clockwork.Clock
}

// NewApp creates a new season App
func NewApp(store Store, clock clockwork.Clock) *App {
	return &App{
		store: store,
		clock: clock,
	}
}

type procedure func(ctx context.Context, ge engine.GameEngine) (json.RawMessage, error)

func (a *App) GenerateSchedule(ctx context.Context, actorID, leagueID uuid.UUID) (*ActionResponse, error) {
	return a.runAsHost(ctx, actorID, leagueID, ActionGenerateSchedule, func(ctx context.Context, ge engine.GameEngine) (json.RawMessage, error) {
		return ge.GenerateSchedule(ctx, leagueID)
	})
}

func (a *App) SimulateMatchday(ctx context.Context, actorID, leagueID uuid.UUID) (*ActionResponse, error) {
	return a.runAsHost(ctx, actorID, leagueID, ActionSimulateMatchday, func(ctx context.Context, ge engine.GameEngine) (json.RawMessage, error) {
		return ge.SimulateMatchday(ctx, leagueID)
	})
}

func (a *App) SimulateMatchdayCompetition(ctx context.Context, actorID, leagueID, competitionID uuid.UUID) (*ActionResponse, error) {
	return a.runAsHost(ctx, actorID, leagueID, ActionSimulateMatchdayCompetition, func(ctx context.Context, ge engine.GameEngine) (json.RawMessage, error) {
		owner, err := ge.CompetitionLeague(ctx, competitionID)
		if err != nil {
			return nil, err
		}
		if owner != leagueID {
			return nil, apperr.NotFound("competition %s not found in league", competitionID)
		}
		return ge.SimulateMatchdayCompetition(ctx, competitionID)
	})
}

func (a *App) EndSeason(ctx context.Context, actorID, leagueID uuid.UUID) (*ActionResponse, error) {
	return a.runAsHost(ctx, actorID, leagueID, ActionEndSeason, func(ctx context.Context, ge engine.GameEngine) (json.RawMessage, error) {
		return ge.EndSeason(ctx, leagueID)
	})
}

func (a *App) ValidateRegistration(ctx context.Context, actorID, leagueID uuid.UUID) (*ActionResponse, error) {
	return a.runAsHost(ctx, actorID, leagueID, ActionValidateRegistration, func(ctx context.Context, ge engine.GameEngine) (json.RawMessage, error) {
		return ge.ValidateLeagueRegistration(ctx, leagueID)
	})
}

func (a *App) StartDraft(ctx context.Context, actorID, leagueID uuid.UUID) (*ActionResponse, error) {
	return a.runAsHost(ctx, actorID, leagueID, ActionStartDraft, func(ctx context.Context, ge engine.GameEngine) (json.RawMessage, error) {
		return ge.StartDraft(ctx, leagueID)
	})
}

func (a *App) InsertMatchResult(ctx context.Context, actorID uuid.UUID, req MatchResultRequest) (*ActionResponse, error) {
	return a.runAsHost(ctx, actorID, req.LeagueID, ActionInsertMatchResult, func(ctx context.Context, ge engine.GameEngine) (json.RawMessage, error) {
		owner, err := ge.MatchLeague(ctx, req.MatchID)
		if err != nil {
			return nil, err
		}
		if owner != req.LeagueID {
			return nil, apperr.NotFound("match %s not found in league", req.MatchID)
		}
		return ge.InsertMatchResult(ctx, engine.MatchResult{
			MatchID:   req.MatchID,
			HomeGoals: req.HomeGoals,
			AwayGoals: req.AwayGoals,
		})
	})
}

// AutoStarterSquad fills a team's starting lineup. The owner may run it for
// their own team; hosts for any team in the league.
func (a *App) AutoStarterSquad(ctx context.Context, actorID, teamID uuid.UUID) (*ActionResponse, error) {
	var resp *ActionResponse
	err := a.store.InTx(ctx, func(tx Tx) error {
		team, err := tx.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}
		if team.OwnerID != actorID {
			if err := leagues.RequireHost(ctx, tx, team.LeagueID, actorID); err != nil {
				return err
			}
		}
		resp, err = a.run(ctx, tx, actorID, team.LeagueID, ActionAutoStarterSquad, func(ctx context.Context, ge engine.GameEngine) (json.RawMessage, error) {
			return ge.AutoStarterSquad(ctx, team.ID)
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", ActionAutoStarterSquad, err)
	}
	return resp, nil
}

func (a *App) runAsHost(ctx context.Context, actorID, leagueID uuid.UUID, action string, call procedure) (*ActionResponse, error) {
	var resp *ActionResponse
	err := a.store.InTx(ctx, func(tx Tx) error {
		league, err := tx.GetLeague(ctx, leagueID)
		if err != nil {
			return err
		}
		if err := leagues.RequireHost(ctx, tx, league.ID, actorID); err != nil {
			return err
		}
		resp, err = a.run(ctx, tx, actorID, league.ID, action, call)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", action, err)
	}
	return resp, nil
}

func (a *App) run(ctx context.Context, tx Tx, actorID, leagueID uuid.UUID, action string, call procedure) (*ActionResponse, error) {
	result, err := call(ctx, tx.Engine())
	if err != nil {
		return nil, err
	}

	err = tx.WriteEvent(ctx, leagueID, events.SeasonAction, events.SeasonActionPayload{
		LeagueID:  leagueID.String(),
		Action:    action,
		ActorID:   actorID.String(),
		Performed: a.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("league_id", leagueID.String()).
		Str("actor_id", actorID.String()).
		Str("action", action).
		Msg("season action performed")

	return &ActionResponse{LeagueID: leagueID, Action: action, Result: result}, nil
}
