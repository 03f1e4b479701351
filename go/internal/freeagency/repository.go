package freeagency

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/db"
	"github.com/mcdev12/leaguefc/go/internal/engine"
	"github.com/mcdev12/leaguefc/go/internal/leagues"
	"github.com/mcdev12/leaguefc/go/internal/models"
	"github.com/mcdev12/leaguefc/go/internal/outbox"
	"github.com/mcdev12/leaguefc/go/internal/sqlutil"
)

// Repository implements free agency data access on top of the generated
// queries. A Repository built by InTx is bound to that transaction.
type Repository struct {
	*leagues.Repository
	db      *sql.DB
	queries *db.Queries
}

// NewRepository creates a new free agency repository
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

// GetLeaguePlayerForUpdate loads a league player by catalog id and locks the row
func (r *Repository) GetLeaguePlayerForUpdate(ctx context.Context, leagueID, playerID uuid.UUID) (*models.LeaguePlayerProfile, error) {
	row, err := r.queries.GetLeaguePlayerForUpdate(ctx, db.GetLeaguePlayerForUpdateParams{
		LeagueID: leagueID,
		PlayerID: playerID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFreeAgent("player is not in this league")
		}
		return nil, fmt.Errorf("failed to get league player: %w", err)
	}
	return DBLeaguePlayerToModel(row), nil
}

// PoolActive reports whether the league season has an explicit pool
func (r *Repository) PoolActive(ctx context.Context, leagueID uuid.UUID, season int) (bool, error) {
	n, err := r.queries.CountPoolPlayers(ctx, db.CountPoolPlayersParams{
		LeagueID: leagueID,
		Season:   int32(season),
	})
	if err != nil {
		return false, fmt.Errorf("failed to count pool players: %w", err)
	}
	return n > 0, nil
}

// IsPoolPlayer reports whether a player is in the league season pool
func (r *Repository) IsPoolPlayer(ctx context.Context, leagueID uuid.UUID, season int, playerID uuid.UUID) (bool, error) {
	ok, err := r.queries.IsPoolPlayer(ctx, db.IsPoolPlayerParams{
		LeagueID: leagueID,
		Season:   int32(season),
		PlayerID: playerID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check pool membership: %w", err)
	}
	return ok, nil
}

// ExtendDeadline moves the deadline to newDeadline if it is still open and
// earlier. It reports whether this call moved it.
func (r *Repository) ExtendDeadline(ctx context.Context, leagueID uuid.UUID, now, newDeadline time.Time) (bool, error) {
	n, err := r.queries.ExtendFADeadline(ctx, db.ExtendFADeadlineParams{
		NewDeadline: newDeadline,
		ID:          leagueID,
		Now:         now,
	})
	if err != nil {
		return false, fmt.Errorf("failed to extend free agency deadline: %w", err)
	}
	return n == 1, nil
}

// ReplacePendingBid drops the team's pending bid on the player and stores the new one
func (r *Repository) ReplacePendingBid(ctx context.Context, bid models.FreeAgentBid) (*models.FreeAgentBid, error) {
	err := r.queries.DeletePendingBid(ctx, db.DeletePendingBidParams{
		LeagueID: bid.LeagueID,
		PlayerID: bid.PlayerID,
		TeamID:   bid.TeamID,
		Season:   int32(bid.Season),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete pending bid: %w", err)
	}

	row, err := r.queries.InsertFreeAgentBid(ctx, db.InsertFreeAgentBidParams{
		LeagueID:      bid.LeagueID,
		PlayerID:      bid.PlayerID,
		TeamID:        bid.TeamID,
		Season:        int32(bid.Season),
		Salary:        bid.Salary,
		Years:         int32(bid.Years),
		GuaranteedPct: bid.GuaranteedPct,
		SigningBonus:  bid.SigningBonus,
		NoTradeClause: bid.NoTradeClause,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert bid: %w", err)
	}
	return DBBidToModel(row), nil
}

// AssignPlayer gives an unassigned league player to a team. It reports false
// when the player was already taken.
func (r *Repository) AssignPlayer(ctx context.Context, leagueID, playerID, teamID uuid.UUID) (bool, error) {
	n, err := r.queries.AssignLeaguePlayer(ctx, db.AssignLeaguePlayerParams{
		TeamID:     sqlutil.NullUUIDOf(teamID),
		OriginType: db.OriginTypeSigned,
		LeagueID:   leagueID,
		PlayerID:   playerID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to assign player: %w", err)
	}
	return n == 1, nil
}

// UpsertContract writes the active contract for a team and player
func (r *Repository) UpsertContract(ctx context.Context, c models.Contract) (*models.Contract, error) {
	row, err := r.queries.UpsertContract(ctx, db.UpsertContractParams{
		LeagueID:            c.LeagueID,
		TeamID:              c.TeamID,
		PlayerID:            c.PlayerID,
		Wage:                c.Wage,
		SigningBonus:        c.SigningBonus,
		StartSeason:         int32(c.StartSeason),
		Years:               int32(c.Years),
		WageDiscountPercent: sqlutil.ToSqlInt32(c.WageDiscountPercent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert contract: %w", err)
	}
	return DBContractToModel(row), nil
}

// ClearPendingBids marks every pending bid of the season cleared
func (r *Repository) ClearPendingBids(ctx context.Context, leagueID uuid.UUID, season int) (int64, error) {
	n, err := r.queries.ClearPendingBids(ctx, db.ClearPendingBidsParams{
		LeagueID: leagueID,
		Season:   int32(season),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear pending bids: %w", err)
	}
	return n, nil
}

// ClearPendingBidsForPlayer marks the season's pending bids on one player cleared
func (r *Repository) ClearPendingBidsForPlayer(ctx context.Context, leagueID uuid.UUID, season int, playerID uuid.UUID) (int64, error) {
	n, err := r.queries.ClearPendingBidsForPlayer(ctx, db.ClearPendingBidsForPlayerParams{
		LeagueID: leagueID,
		Season:   int32(season),
		PlayerID: playerID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear pending bids for player: %w", err)
	}
	return n, nil
}

// ReplacePool swaps the season pool for the given players. Ids that are not
// unassigned league players are skipped. It returns the new pool size.
func (r *Repository) ReplacePool(ctx context.Context, leagueID uuid.UUID, season int, playerIDs []uuid.UUID) (int64, error) {
	if err := r.queries.DeletePool(ctx, db.DeletePoolParams{LeagueID: leagueID, Season: int32(season)}); err != nil {
		return 0, fmt.Errorf("failed to delete pool: %w", err)
	}
	if len(playerIDs) == 0 {
		return 0, nil
	}
	n, err := r.queries.InsertPoolPlayers(ctx, db.InsertPoolPlayersParams{
		Season:    int32(season),
		LeagueID:  leagueID,
		PlayerIds: playerIDs,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert pool players: %w", err)
	}
	return n, nil
}

// ListFreeAgents lists unassigned league players, restricted to the pool when one is active
func (r *Repository) ListFreeAgents(ctx context.Context, leagueID uuid.UUID, season int, poolActive bool) ([]models.LeaguePlayerProfile, error) {
	rows, err := r.queries.ListFreeAgents(ctx, db.ListFreeAgentsParams{
		LeagueID:   leagueID,
		PoolActive: poolActive,
		Season:     int32(season),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list free agents: %w", err)
	}
	players := make([]models.LeaguePlayerProfile, len(rows))
	for i, row := range rows {
		players[i] = *DBLeaguePlayerToModel(row)
	}
	return players, nil
}

// ListPendingBids lists a team's pending bids for the season
func (r *Repository) ListPendingBids(ctx context.Context, leagueID, teamID uuid.UUID, season int) ([]models.FreeAgentBid, error) {
	rows, err := r.queries.ListPendingBidsByTeam(ctx, db.ListPendingBidsByTeamParams{
		LeagueID: leagueID,
		TeamID:   teamID,
		Season:   int32(season),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending bids: %w", err)
	}
	bids := make([]models.FreeAgentBid, len(rows))
	for i, row := range rows {
		bids[i] = *DBBidToModel(row)
	}
	return bids, nil
}

// DBLeaguePlayerToModel converts a joined league player row to domain model
func DBLeaguePlayerToModel(row db.LeaguePlayerRow) *models.LeaguePlayerProfile {
	return &models.LeaguePlayerProfile{
		LeaguePlayer: models.LeaguePlayer{
			ID:          row.ID,
			LeagueID:    row.LeagueID,
			PlayerID:    row.PlayerID,
			TeamID:      sqlutil.FromNullUUID(row.TeamID),
			Rating:      int(row.Rating),
			OriginType:  models.OriginType(row.OriginType),
			IsYoungster: row.IsYoungster,
			Potential:   sqlutil.FromSqlInt32(row.Potential),
		},
		Name:      row.Name,
		Positions: row.Positions,
		ImageURL:  sqlutil.FromSqlStringPtr(row.ImageUrl),
	}
}

// DBBidToModel converts a database bid to domain model
func DBBidToModel(row db.FreeAgentBid) *models.FreeAgentBid {
	return &models.FreeAgentBid{
		ID:            row.ID,
		LeagueID:      row.LeagueID,
		PlayerID:      row.PlayerID,
		TeamID:        row.TeamID,
		Season:        int(row.Season),
		Salary:        row.Salary,
		Years:         int(row.Years),
		GuaranteedPct: row.GuaranteedPct,
		SigningBonus:  row.SigningBonus,
		NoTradeClause: row.NoTradeClause,
		Status:        models.BidStatus(row.Status),
		CreatedAt:     row.CreatedAt,
	}
}

// DBContractToModel converts a database contract to domain model
func DBContractToModel(row db.Contract) *models.Contract {
	return &models.Contract{
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
	}
}

var _ Store = (*Repository)(nil)
