package freeagency

import (
	"context"
	"fmt"
	"time"

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

// Tx is the data access the free agency flows need, bound to one transaction
type Tx interface {
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	IsLeagueHost(ctx context.Context, leagueID, userID uuid.UUID) (bool, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetTeamForUpdate(ctx context.Context, id uuid.UUID) (*models.Team, error)
	CountRosterPlayers(ctx context.Context, teamID uuid.UUID) (int, error)
	DeductBudget(ctx context.Context, teamID uuid.UUID, amount int64) (int64, error)
	GetLeaguePlayerForUpdate(ctx context.Context, leagueID, playerID uuid.UUID) (*models.LeaguePlayerProfile, error)
	PoolActive(ctx context.Context, leagueID uuid.UUID, season int) (bool, error)
	IsPoolPlayer(ctx context.Context, leagueID uuid.UUID, season int, playerID uuid.UUID) (bool, error)
	ExtendDeadline(ctx context.Context, leagueID uuid.UUID, now, newDeadline time.Time) (bool, error)
	ReplacePendingBid(ctx context.Context, bid models.FreeAgentBid) (*models.FreeAgentBid, error)
	AssignPlayer(ctx context.Context, leagueID, playerID, teamID uuid.UUID) (bool, error)
	UpsertContract(ctx context.Context, c models.Contract) (*models.Contract, error)
	ClearPendingBids(ctx context.Context, leagueID uuid.UUID, season int) (int64, error)
	ClearPendingBidsForPlayer(ctx context.Context, leagueID uuid.UUID, season int, playerID uuid.UUID) (int64, error)
	ReplacePool(ctx context.Context, leagueID uuid.UUID, season int, playerIDs []uuid.UUID) (int64, error)
	ListFreeAgents(ctx context.Context, leagueID uuid.UUID, season int, poolActive bool) ([]models.LeaguePlayerProfile, error)
	ListPendingBids(ctx context.Context, leagueID, teamID uuid.UUID, season int) ([]models.FreeAgentBid, error)
	Engine() engine.GameEngine
	WriteEvent(ctx context.Context, leagueID uuid.UUID, eventType string, payload any) error
}

// Store is a Tx outside any transaction that can open one
type Store interface {
	Tx
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// App runs the sealed-bid free agency market
type App struct {
	store Store
	clock clockwork.Clock
	rules Rules
}

// NewApp creates a new free agency App
func NewApp(store Store, clock clockwork.Clock, rules Rules) *App {
	return &App{
		store: store,
		clock: clock,
		rules: rules,
	}
}

// Execute dispatches a client action
func (a *App) Execute(ctx context.Context, action Action) (any, error) {
	switch act := action.(type) {
	case PlaceBidAction:
		return a.PlaceBid(ctx, act.BidRequest)
	case SignAction:
		return a.Sign(ctx, act.SignRequest)
	case ClearAction:
		return a.Clear(ctx, act.ActorID, act.LeagueID)
	case SetPoolAction:
		return a.SetPool(ctx, act.ActorID, act.LeagueID, act.PlayerIDs)
	case ResolveAction:
		return a.Resolve(ctx, act.ActorID, act.LeagueID)
	default:
		return nil, apperr.Validation("unknown free agency action %T", action)
	}
}

// PlaceBid stores or replaces the team's sealed bid on a free agent. A bid in
// the last anti-snipe window pushes the deadline out to now plus the window.
func (a *App) PlaceBid(ctx context.Context, req BidRequest) (*BidResult, error) {
	var result *BidResult
	err := a.store.InTx(ctx, func(tx Tx) error {
		league, err := tx.GetLeague(ctx, req.LeagueID)
		if err != nil {
			return err
		}
		if !league.AllowsFreeAgentBidding() {
			return apperr.Phase("free agent bidding is closed while the league is %s", league.Status)
		}

		terms := NormalizeBid(req.SalaryPerYear, req.ContractYears, req.GuaranteedPct, req.SigningBonus)
		if err := terms.Validate(); err != nil {
			return err
		}

		now := a.clock.Now()
		if league.FADeadline != nil && now.After(*league.FADeadline) {
			return apperr.DeadlinePassed("free agency deadline passed at %s", league.FADeadline.Format(time.RFC3339))
		}

		team, err := a.lockOwnTeam(ctx, tx, league, req.TeamID, req.ActorID)
		if err != nil {
			return err
		}
		if err := a.checkRosterRoom(ctx, tx, team.ID); err != nil {
			return err
		}
		if _, err := a.biddablePlayer(ctx, tx, league, req.PlayerID); err != nil {
			return err
		}

		bill, err := tx.Engine().CalculateTeamWages(ctx, team.ID)
		if err != nil {
			return err
		}
		if f := wages.CheckWageFeasibility(bill, terms.Salary, team.Budget); !f.OK {
			return apperr.InsufficientBudget("wage bill %d plus salary %d exceeds budget %d", bill, terms.Salary, team.Budget)
		}

		result = &BidResult{Deadline: league.FADeadline}
		if league.FADeadline != nil && league.FADeadline.Sub(now) <= a.rules.AntiSnipeWindow {
			newDeadline := now.Add(a.rules.AntiSnipeWindow)
			extended, err := tx.ExtendDeadline(ctx, league.ID, now, newDeadline)
			if err != nil {
				return err
			}
			if extended {
				result.Deadline = &newDeadline
				result.DeadlineExtended = true
				if err := tx.WriteEvent(ctx, league.ID, events.DeadlineExtended, events.DeadlineExtendedPayload{
					LeagueID:    league.ID.String(),
					OldDeadline: *league.FADeadline,
					NewDeadline: newDeadline,
				}); err != nil {
					return err
				}
			}
		}

		bid, err := tx.ReplacePendingBid(ctx, models.FreeAgentBid{
			LeagueID:      league.ID,
			PlayerID:      req.PlayerID,
			TeamID:        team.ID,
			Season:        league.Season,
			Salary:        terms.Salary,
			Years:         terms.Years,
			GuaranteedPct: terms.GuaranteedPct,
			SigningBonus:  terms.SigningBonus,
			NoTradeClause: req.NoTradeClause,
			Status:        models.BidStatusPending,
		})
		if err != nil {
			return err
		}
		result.Bid = bid

		return tx.WriteEvent(ctx, league.ID, events.BidPlaced, events.BidPlacedPayload{
			LeagueID: league.ID.String(),
			TeamID:   team.ID.String(),
			PlayerID: req.PlayerID.String(),
			Season:   league.Season,
			PlacedAt: now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place bid: %w", err)
	}

	log.Info().
		Str("league_id", req.LeagueID.String()).
		Str("team_id", req.TeamID.String()).
		Str("player_id", req.PlayerID.String()).
		Bool("deadline_extended", result.DeadlineExtended).
		Msg("free agent bid placed")

	return result, nil
}

// Sign contracts a free agent to the team immediately, outside the bidding process
func (a *App) Sign(ctx context.Context, req SignRequest) (*SignResult, error) {
	var result *SignResult
	err := a.store.InTx(ctx, func(tx Tx) error {
		league, err := tx.GetLeague(ctx, req.LeagueID)
		if err != nil {
			return err
		}
		if !league.AllowsSigning() {
			return apperr.Phase("signings are closed while the league is %s", league.Status)
		}

		team, err := tx.GetTeamForUpdate(ctx, req.TeamID)
		if err != nil {
			return err
		}
		if team.LeagueID != league.ID {
			return apperr.Validation("team does not belong to this league")
		}
		if team.OwnerID != req.ActorID {
			if err := leagues.RequireHost(ctx, tx, league.ID, req.ActorID); err != nil {
				return err
			}
		}

		if err := a.checkRosterRoom(ctx, tx, team.ID); err != nil {
			return err
		}
		player, err := tx.GetLeaguePlayerForUpdate(ctx, league.ID, req.PlayerID)
		if err != nil {
			return err
		}
		if !player.IsFreeAgent() {
			return apperr.NotFreeAgent("%s is already under contract", player.Name)
		}

		salary, years, bonus := a.signingTerms(req, player.Rating)
		if salary <= 0 || bonus < 0 {
			return apperr.Validation("salary must be positive and the bonus non-negative")
		}
		if years < 1 || years > MaxSignedYears {
			return apperr.Validation("years must be between 1 and %d", MaxSignedYears)
		}
		if team.Budget < bonus {
			return apperr.InsufficientBudget("budget %d cannot cover signing bonus %d", team.Budget, bonus)
		}

		gameEngine := tx.Engine()
		bill, err := gameEngine.CalculateTeamWages(ctx, team.ID)
		if err != nil {
			return err
		}
		if f := wages.CheckWageFeasibility(bill, salary, team.Budget); !f.OK {
			return apperr.InsufficientBudget("wage bill %d plus salary %d exceeds budget %d", bill, salary, team.Budget)
		}

		assigned, err := tx.AssignPlayer(ctx, league.ID, player.PlayerID, team.ID)
		if err != nil {
			return err
		}
		if !assigned {
			return apperr.NotFreeAgent("%s was signed by another team", player.Name)
		}

		contract, err := tx.UpsertContract(ctx, models.Contract{
			LeagueID:     league.ID,
			TeamID:       team.ID,
			PlayerID:     player.PlayerID,
			Wage:         salary,
			SigningBonus: bonus,
			StartSeason:  league.Season,
			Years:        years,
			Status:       models.ContractStatusActive,
		})
		if err != nil {
			return err
		}

		budget := team.Budget
		if bonus > 0 {
			if budget, err = tx.DeductBudget(ctx, team.ID, bonus); err != nil {
				return err
			}
			if err := gameEngine.WriteFinanceEntry(ctx, engine.FinanceEntry{
				TeamID:      team.ID,
				LeagueID:    league.ID,
				Amount:      -bonus,
				Reason:      "signing_bonus",
				Description: fmt.Sprintf("Signing bonus for %s", player.Name),
				Season:      league.Season,
			}); err != nil {
				return err
			}
		}

		actor := req.ActorID
		if err := gameEngine.WriteAuditLog(ctx, engine.AuditEntry{
			LeagueID: league.ID,
			Action:   "player_signed",
			ActorID:  &actor,
			Payload: map[string]any{
				"team_id":       team.ID,
				"player_id":     player.PlayerID,
				"wage":          salary,
				"years":         years,
				"signing_bonus": bonus,
			},
		}); err != nil {
			return err
		}

		if _, err := tx.ClearPendingBidsForPlayer(ctx, league.ID, league.Season, player.PlayerID); err != nil {
			return err
		}

		result = &SignResult{Contract: contract, Budget: budget}
		return tx.WriteEvent(ctx, league.ID, events.PlayerSigned, events.PlayerSignedPayload{
			LeagueID:     league.ID.String(),
			TeamID:       team.ID.String(),
			PlayerID:     player.PlayerID.String(),
			PlayerName:   player.Name,
			Wage:         salary,
			Years:        years,
			SigningBonus: bonus,
			SignedAt:     a.clock.Now(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign player: %w", err)
	}

	log.Info().
		Str("league_id", req.LeagueID.String()).
		Str("team_id", req.TeamID.String()).
		Str("player_id", req.PlayerID.String()).
		Int64("wage", result.Contract.Wage).
		Msg("free agent signed")

	return result, nil
}

// Clear cancels every pending bid of the current season
func (a *App) Clear(ctx context.Context, actorID, leagueID uuid.UUID) (*ClearResult, error) {
	var result *ClearResult
	err := a.store.InTx(ctx, func(tx Tx) error {
		league, err := a.hostedLeague(ctx, tx, leagueID, actorID)
		if err != nil {
			return err
		}

		n, err := tx.ClearPendingBids(ctx, league.ID, league.Season)
		if err != nil {
			return err
		}
		result = &ClearResult{Season: league.Season, Cleared: n}

		return tx.WriteEvent(ctx, league.ID, events.BidsCleared, events.BidsClearedPayload{
			LeagueID:  league.ID.String(),
			Season:    league.Season,
			Cleared:   n,
			ClearedAt: a.clock.Now(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to clear bids: %w", err)
	}

	log.Info().Str("league_id", leagueID.String()).Int64("cleared", result.Cleared).Msg("pending bids cleared")
	return result, nil
}

// SetPool replaces the current season's pool. An empty list removes the pool
// so every free agent is biddable again.
func (a *App) SetPool(ctx context.Context, actorID, leagueID uuid.UUID, playerIDs []uuid.UUID) (*PoolResult, error) {
	var result *PoolResult
	err := a.store.InTx(ctx, func(tx Tx) error {
		league, err := a.hostedLeague(ctx, tx, leagueID, actorID)
		if err != nil {
			return err
		}
		if league.Status == models.LeagueStatusArchived {
			return apperr.Phase("league is archived")
		}

		n, err := tx.ReplacePool(ctx, league.ID, league.Season, dedupe(playerIDs))
		if err != nil {
			return err
		}
		state := PoolStateNone
		if n > 0 {
			state = PoolStateActive
		}
		result = &PoolResult{Season: league.Season, State: state, Players: n}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set free agent pool: %w", err)
	}

	log.Info().
		Str("league_id", leagueID.String()).
		Str("state", string(result.State)).
		Int64("players", result.Players).
		Msg("free agent pool replaced")

	return result, nil
}

// Resolve asks the game engine to award pending bids
func (a *App) Resolve(ctx context.Context, actorID, leagueID uuid.UUID) (*ResolveResult, error) {
	var result *ResolveResult
	err := a.store.InTx(ctx, func(tx Tx) error {
		league, err := a.hostedLeague(ctx, tx, leagueID, actorID)
		if err != nil {
			return err
		}
		if !league.AllowsFreeAgentBidding() {
			return apperr.Phase("free agency cannot be resolved while the league is %s", league.Status)
		}

		res, err := tx.Engine().ResolveFreeAgency(ctx, league.ID)
		if err != nil {
			return err
		}
		result = &ResolveResult{Season: league.Season, FreeAgencyResolution: res}

		return tx.WriteEvent(ctx, league.ID, events.FreeAgencyResolved, events.FreeAgencyResolvedPayload{
			LeagueID:   league.ID.String(),
			Season:     league.Season,
			Assigned:   res.Assigned,
			Skipped:    res.Skipped,
			ResolvedAt: a.clock.Now(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve free agency: %w", err)
	}

	log.Info().
		Str("league_id", leagueID.String()).
		Int("assigned", result.Assigned).
		Int("skipped", result.Skipped).
		Msg("free agency resolved")

	return result, nil
}

// ListFreeAgents lists biddable players with their table wage. When teamID is
// given the caller must own it and sees that team's own pending bids.
func (a *App) ListFreeAgents(ctx context.Context, actorID, leagueID uuid.UUID, teamID *uuid.UUID) (*FreeAgentList, error) {
	league, err := a.store.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list free agents: %w", err)
	}

	myBids := map[uuid.UUID]models.FreeAgentBid{}
	if teamID != nil {
		team, err := a.store.GetTeam(ctx, *teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to list free agents: %w", err)
		}
		if team.LeagueID != league.ID {
			return nil, apperr.Validation("team does not belong to this league")
		}
		if err := leagues.RequireOwner(team, actorID); err != nil {
			return nil, err
		}
		bids, err := a.store.ListPendingBids(ctx, league.ID, team.ID, league.Season)
		if err != nil {
			return nil, fmt.Errorf("failed to list free agents: %w", err)
		}
		for _, b := range bids {
			myBids[b.PlayerID] = b
		}
	}

	poolActive, err := a.store.PoolActive(ctx, league.ID, league.Season)
	if err != nil {
		return nil, fmt.Errorf("failed to list free agents: %w", err)
	}
	players, err := a.store.ListFreeAgents(ctx, league.ID, league.Season, poolActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list free agents: %w", err)
	}

	list := &FreeAgentList{
		LeagueID: league.ID,
		Season:   league.Season,
		Status:   league.Status,
		State:    PoolStateNone,
		Deadline: league.FADeadline,
		Players:  make([]FreeAgent, 0, len(players)),
	}
	if poolActive {
		list.State = PoolStateActive
	}
	for _, p := range players {
		fa := FreeAgent{
			LeaguePlayerProfile: p,
			BaseWage:            wages.ComputeBaseWage(p.Rating, p.Positions),
		}
		if b, ok := myBids[p.PlayerID]; ok {
			fa.MyBid = &b
		}
		list.Players = append(list.Players, fa)
	}
	return list, nil
}

func (a *App) lockOwnTeam(ctx context.Context, tx Tx, league *models.League, teamID, actorID uuid.UUID) (*models.Team, error) {
	team, err := tx.GetTeamForUpdate(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.LeagueID != league.ID {
		return nil, apperr.Validation("team does not belong to this league")
	}
	if err := leagues.RequireOwner(team, actorID); err != nil {
		return nil, err
	}
	return team, nil
}

func (a *App) checkRosterRoom(ctx context.Context, tx Tx, teamID uuid.UUID) error {
	size, err := tx.CountRosterPlayers(ctx, teamID)
	if err != nil {
		return err
	}
	if size >= a.rules.RosterCap {
		return apperr.RosterFull("roster already has %d players", size)
	}
	return nil
}

// biddablePlayer returns the player if unassigned and, when a pool is active, in the pool
func (a *App) biddablePlayer(ctx context.Context, tx Tx, league *models.League, playerID uuid.UUID) (*models.LeaguePlayerProfile, error) {
	player, err := tx.GetLeaguePlayerForUpdate(ctx, league.ID, playerID)
	if err != nil {
		return nil, err
	}
	if !player.IsFreeAgent() {
		return nil, apperr.NotFreeAgent("%s is already under contract", player.Name)
	}

	poolActive, err := tx.PoolActive(ctx, league.ID, league.Season)
	if err != nil {
		return nil, err
	}
	if poolActive {
		inPool, err := tx.IsPoolPlayer(ctx, league.ID, league.Season, playerID)
		if err != nil {
			return nil, err
		}
		if !inPool {
			return nil, apperr.NotFreeAgent("%s is not in this season's free agent pool", player.Name)
		}
	}
	return player, nil
}

func (a *App) hostedLeague(ctx context.Context, tx Tx, leagueID, actorID uuid.UUID) (*models.League, error) {
	league, err := tx.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if err := leagues.RequireHost(ctx, tx, league.ID, actorID); err != nil {
		return nil, err
	}
	return league, nil
}

func (a *App) signingTerms(req SignRequest, rating int) (salary int64, years int, bonus int64) {
	salary = wages.DefaultSigningWage(rating)
	if req.Salary != nil {
		salary = *req.Salary
	}
	years = a.rules.DefaultContractYears
	if req.Years != nil {
		years = *req.Years
	}
	if req.SigningBonus != nil {
		bonus = *req.SigningBonus
	}
	return salary, years, bonus
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
