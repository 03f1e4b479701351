package packs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/engine"
	"github.com/mcdev12/leaguefc/go/internal/events"
	"github.com/mcdev12/leaguefc/go/internal/leagues"
	"github.com/mcdev12/leaguefc/go/internal/models"
	"github.com/mcdev12/leaguefc/go/internal/wages"
)

const placeholderName = "Unknown Player"

// Tx is the data access a pack opening needs, bound to one transaction
type Tx interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	GetTeamForUpdate(ctx context.Context, id uuid.UUID) (*models.Team, error)
	CountRosterPlayers(ctx context.Context, teamID uuid.UUID) (int, error)
	DeductBudget(ctx context.Context, teamID uuid.UUID, amount int64) (int64, error)
	GetPack(ctx context.Context, id uuid.UUID) (*models.Pack, error)
	ListOdds(ctx context.Context, packID uuid.UUID) ([]models.RatingOdds, error)
	FindCandidates(ctx context.Context, q CatalogQuery) ([]models.PackedPlayer, error)
	InsertLeaguePlayer(ctx context.Context, lp models.LeaguePlayer) error
	UpsertContract(ctx context.Context, c models.Contract) error
	AppendReserves(ctx context.Context, teamID uuid.UUID, playerIDs []uuid.UUID) error
	WriteEvent(ctx context.Context, leagueID uuid.UUID, eventType string, payload any) error
}

// Store opens transactions and holds the post-commit audit writes
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	IsLeagueHost(ctx context.Context, leagueID, userID uuid.UUID) (bool, error)
	RecordPurchase(ctx context.Context, p models.PackPurchase) (*models.PackPurchase, error)
	ListPurchases(ctx context.Context, leagueID uuid.UUID) ([]models.PackPurchase, error)
	Engine() engine.GameEngine
}

// App sells and opens player packs
type App struct {
	store   Store
	clock   clockwork.Clock
	rules   Rules
	newSeed func() uuid.UUID
}

// NewApp creates a new packs App
func NewApp(store Store, clock clockwork.Clock, rules Rules) *App {
	return &App{
		store:   store,
		clock:   clock,
		rules:   rules,
		newSeed: uuid.New,
	}
}

// OpenPack charges the team for a pack and adds the drawn players to its
// reserves. Drawing, inserts and the budget deduction commit together; the
// purchase log and finance entry are written afterwards on a best-effort basis.
func (a *App) OpenPack(ctx context.Context, req OpenRequest) (*OpenResult, error) {
	seed := a.newSeed()
	var (
		result *OpenResult
		league *models.League
	)
	err := a.store.InTx(ctx, func(tx Tx) error {
		team, err := tx.GetTeamForUpdate(ctx, req.TeamID)
		if err != nil {
			return err
		}
		if err := leagues.RequireOwner(team, req.ActorID); err != nil {
			return err
		}

		league, err = tx.GetLeague(ctx, team.LeagueID)
		if err != nil {
			return err
		}
		if err := a.checkPhase(ctx, tx, league, team.ID); err != nil {
			return err
		}

		pack, err := tx.GetPack(ctx, req.PackID)
		if err != nil {
			return err
		}
		if pack.LeagueID != league.ID || pack.Season != league.Season {
			return apperr.NotFound("pack is not on sale this season")
		}
		if team.Budget < pack.Price {
			return apperr.InsufficientBudget("budget %d cannot cover pack price %d", team.Budget, pack.Price)
		}
		odds, err := tx.ListOdds(ctx, pack.ID)
		if err != nil {
			return err
		}
		if len(odds) == 0 {
			return apperr.Validation("pack %s has no odds table", pack.Name)
		}

		players, err := a.draw(ctx, tx, NewSampler(seed), league.ID, pack.PlayerCount, odds)
		if err != nil {
			return err
		}

		acquired := make([]uuid.UUID, 0, len(players))
		for _, p := range players {
			if p.Placeholder {
				continue
			}
			if err := a.addToTeam(ctx, tx, league, team.ID, p); err != nil {
				return err
			}
			acquired = append(acquired, p.PlayerID)
		}
		if len(acquired) > 0 {
			if err := tx.AppendReserves(ctx, team.ID, acquired); err != nil {
				return err
			}
		}

		budget, err := tx.DeductBudget(ctx, team.ID, pack.Price)
		if err != nil {
			return err
		}

		result = &OpenResult{Pack: pack, Players: players, Budget: budget, Seed: seed}
		return tx.WriteEvent(ctx, league.ID, events.PackOpened, events.PackOpenedPayload{
			LeagueID:    league.ID.String(),
			TeamID:      team.ID.String(),
			PackID:      pack.ID.String(),
			PackName:    pack.Name,
			PlayerIDs:   idStrings(acquired),
			Placeholder: len(players) - len(acquired),
			OpenedAt:    a.clock.Now(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open pack: %w", err)
	}

	a.recordPurchase(ctx, league, req.TeamID, result)

	log.Info().
		Str("league_id", league.ID.String()).
		Str("team_id", req.TeamID.String()).
		Str("pack_id", result.Pack.ID.String()).
		Str("seed", seed.String()).
		Int("players", len(result.Players)).
		Int64("budget", result.Budget).
		Msg("pack opened")

	return result, nil
}

// ListPurchases returns the league-wide purchase history, newest first. The
// caller must host the league or own teamID in it.
func (a *App) ListPurchases(ctx context.Context, actorID, leagueID uuid.UUID, teamID *uuid.UUID) ([]models.PackPurchase, error) {
	league, err := a.store.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pack purchases: %w", err)
	}

	if teamID != nil {
		team, err := a.store.GetTeam(ctx, *teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to list pack purchases: %w", err)
		}
		if team.LeagueID != league.ID {
			return nil, apperr.Validation("team does not belong to this league")
		}
		if err := leagues.RequireOwner(team, actorID); err != nil {
			return nil, err
		}
	} else if err := leagues.RequireHost(ctx, a.store, league.ID, actorID); err != nil {
		return nil, err
	}

	purchases, err := a.store.ListPurchases(ctx, league.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pack purchases: %w", err)
	}
	return purchases, nil
}

// checkPhase allows purchases in preseason, offseason and open transfer
// windows. Outside relaxed phases the roster must leave room for a full pack.
func (a *App) checkPhase(ctx context.Context, tx Tx, league *models.League, teamID uuid.UUID) error {
	switch league.Status {
	case models.LeagueStatusPreseasonSetup, models.LeagueStatusOffseason:
	case models.LeagueStatusInSeason:
		if !league.TransferWindowOpen {
			return apperr.Phase("packs can only be opened while the transfer window is open")
		}
	default:
		return apperr.Phase("packs cannot be opened while the league is %s", league.Status)
	}

	if league.RosterMovesRelaxed() {
		return nil
	}
	size, err := tx.CountRosterPlayers(ctx, teamID)
	if err != nil {
		return err
	}
	if size > a.rules.RosterLimit {
		return apperr.Phase("roster of %d is above the pack limit of %d", size, a.rules.RosterLimit)
	}
	return nil
}

func (a *App) draw(ctx context.Context, tx Tx, sampler *Sampler, leagueID uuid.UUID, count int, odds []models.RatingOdds) ([]models.PackedPlayer, error) {
	players := make([]models.PackedPlayer, 0, count)
	drawn := make([]uuid.UUID, 0, count)
	for range count {
		rating := sampler.DrawRating(odds)
		position := sampler.DrawPosition()

		p, err := a.resolveSlot(ctx, tx, sampler, CatalogQuery{
			LeagueID: leagueID,
			Rating:   rating,
			Position: position,
			Exclude:  drawn,
		})
		if err != nil {
			return nil, err
		}
		p.Position = position
		if !p.Placeholder {
			drawn = append(drawn, p.PlayerID)
		}
		players = append(players, p)
	}
	return players, nil
}

// resolveSlot relaxes the catalog lookup from rating and position, to rating
// alone, to the nearby ratings, and finally settles on a placeholder.
func (a *App) resolveSlot(ctx context.Context, tx Tx, sampler *Sampler, q CatalogQuery) (models.PackedPlayer, error) {
	attempts := []CatalogQuery{q, q, q}
	attempts[1].Position = ""
	attempts[2].Position = ""
	attempts[2].Spread = a.rules.NearRatingSpread

	for _, attempt := range attempts {
		candidates, err := tx.FindCandidates(ctx, attempt)
		if err != nil {
			return models.PackedPlayer{}, err
		}
		if len(candidates) > 0 {
			return candidates[sampler.Pick(len(candidates))], nil
		}
	}

	return models.PackedPlayer{
		Name:        placeholderName,
		Positions:   q.Position,
		Rating:      q.Rating,
		Placeholder: true,
	}, nil
}

func (a *App) addToTeam(ctx context.Context, tx Tx, league *models.League, teamID uuid.UUID, p models.PackedPlayer) error {
	err := tx.InsertLeaguePlayer(ctx, models.LeaguePlayer{
		LeagueID:   league.ID,
		PlayerID:   p.PlayerID,
		TeamID:     &teamID,
		Rating:     p.Rating,
		OriginType: models.OriginPacked,
	})
	if err != nil {
		return err
	}

	discount := a.rules.WageDiscountPercent
	return tx.UpsertContract(ctx, models.Contract{
		LeagueID:            league.ID,
		TeamID:              teamID,
		PlayerID:            p.PlayerID,
		Wage:                wages.DefaultSigningWage(p.Rating),
		StartSeason:         league.Season,
		Years:               a.rules.ContractYears,
		Status:              models.ContractStatusActive,
		WageDiscountPercent: &discount,
	})
}

func (a *App) recordPurchase(ctx context.Context, league *models.League, teamID uuid.UUID, result *OpenResult) {
	_, err := a.store.RecordPurchase(ctx, models.PackPurchase{
		LeagueID: league.ID,
		TeamID:   teamID,
		PackID:   result.Pack.ID,
		Cost:     result.Pack.Price,
		Seed:     result.Seed,
		Players:  result.Players,
	})
	if err != nil {
		log.Error().Err(err).
			Str("team_id", teamID.String()).
			Str("pack_id", result.Pack.ID.String()).
			Msg("failed to record pack purchase")
	}

	err = a.store.Engine().WriteFinanceEntry(ctx, engine.FinanceEntry{
		TeamID:      teamID,
		LeagueID:    league.ID,
		Amount:      -result.Pack.Price,
		Reason:      "pack_purchase",
		Description: fmt.Sprintf("Opened %s", result.Pack.Name),
		Season:      league.Season,
	})
	if err != nil {
		log.Error().Err(err).
			Str("team_id", teamID.String()).
			Str("pack_id", result.Pack.ID.String()).
			Msg("failed to write pack finance entry")
	}
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
