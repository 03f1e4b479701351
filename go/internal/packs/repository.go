package packs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/db"
	"github.com/mcdev12/leaguefc/go/internal/engine"
	"github.com/mcdev12/leaguefc/go/internal/leagues"
	"github.com/mcdev12/leaguefc/go/internal/models"
	"github.com/mcdev12/leaguefc/go/internal/outbox"
	"github.com/mcdev12/leaguefc/go/internal/sqlutil"
)

// Repository implements pack data access. A Repository built by InTx is bound
// to that transaction.
type Repository struct {
	*leagues.Repository
	db      *sql.DB
	queries *db.Queries
}

// NewRepository creates a new packs repository
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

// GetPack retrieves a pack by ID
func (r *Repository) GetPack(ctx context.Context, id uuid.UUID) (*models.Pack, error) {
	pack, err := r.queries.GetPack(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("pack not found")
		}
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}
	return DBPackToModel(pack), nil
}

// ListOdds returns the pack's odds table ordered by rating
func (r *Repository) ListOdds(ctx context.Context, packID uuid.UUID) ([]models.RatingOdds, error) {
	rows, err := r.queries.ListPackRatingOdds(ctx, packID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pack odds: %w", err)
	}
	odds := make([]models.RatingOdds, len(rows))
	for i, row := range rows {
		odds[i] = models.RatingOdds{Rating: int(row.Rating), Probability: row.Probability}
	}
	return odds, nil
}

// FindCandidates lists catalog players matching q that are not yet in the
// league, ordered by id
func (r *Repository) FindCandidates(ctx context.Context, q CatalogQuery) ([]models.PackedPlayer, error) {
	exclude := q.Exclude
	if exclude == nil {
		exclude = []uuid.UUID{}
	}

	var (
		rows []db.CatalogCandidate
		err  error
	)
	switch {
	case q.Position != "":
		rows, err = r.queries.FindCatalogPlayersByRatingAndPosition(ctx, db.FindCatalogPlayersByRatingAndPositionParams{
			Rating:   int32(q.Rating),
			Position: q.Position,
			Exclude:  exclude,
			LeagueID: q.LeagueID,
		})
	case q.Spread > 0:
		rows, err = r.queries.FindCatalogPlayersNearRating(ctx, db.FindCatalogPlayersNearRatingParams{
			MinRating: int32(q.Rating - q.Spread),
			MaxRating: int32(q.Rating + q.Spread),
			Exclude:   exclude,
			LeagueID:  q.LeagueID,
		})
	default:
		rows, err = r.queries.FindCatalogPlayersByRating(ctx, db.FindCatalogPlayersByRatingParams{
			Rating:   int32(q.Rating),
			Exclude:  exclude,
			LeagueID: q.LeagueID,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find catalog players: %w", err)
	}

	players := make([]models.PackedPlayer, len(rows))
	for i, row := range rows {
		players[i] = models.PackedPlayer{
			PlayerID:  row.ID,
			Name:      row.Name,
			Positions: row.Positions,
			Rating:    int(row.Rating),
			ImageURL:  sqlutil.FromSqlStringPtr(row.ImageUrl),
		}
	}
	return players, nil
}

// InsertLeaguePlayer binds a catalog player to the league and team
func (r *Repository) InsertLeaguePlayer(ctx context.Context, lp models.LeaguePlayer) error {
	_, err := r.queries.InsertLeaguePlayer(ctx, db.InsertLeaguePlayerParams{
		LeagueID:   lp.LeagueID,
		PlayerID:   lp.PlayerID,
		TeamID:     sqlutil.ToNullUUID(lp.TeamID),
		Rating:     int32(lp.Rating),
		OriginType: db.OriginType(lp.OriginType),
	})
	if err != nil {
		return fmt.Errorf("failed to insert league player: %w", err)
	}
	return nil
}

// UpsertContract writes the active contract for a team and player
func (r *Repository) UpsertContract(ctx context.Context, c models.Contract) error {
	_, err := r.queries.UpsertContract(ctx, db.UpsertContractParams{
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
		return fmt.Errorf("failed to upsert contract: %w", err)
	}
	return nil
}

// AppendReserves adds players to the end of the team's reserves list
func (r *Repository) AppendReserves(ctx context.Context, teamID uuid.UUID, playerIDs []uuid.UUID) error {
	err := r.queries.AppendTeamReserves(ctx, db.AppendTeamReservesParams{
		PlayerIds: playerIDs,
		ID:        teamID,
	})
	if err != nil {
		return fmt.Errorf("failed to append reserves: %w", err)
	}
	return nil
}

// RecordPurchase stores the audit row of a pack opening
func (r *Repository) RecordPurchase(ctx context.Context, p models.PackPurchase) (*models.PackPurchase, error) {
	players, err := json.Marshal(p.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal packed players: %w", err)
	}
	row, err := r.queries.InsertPackPurchase(ctx, db.InsertPackPurchaseParams{
		LeagueID: p.LeagueID,
		TeamID:   p.TeamID,
		PackID:   p.PackID,
		Cost:     p.Cost,
		Seed:     p.Seed,
		Players:  sqlutil.ToNullRawMessage(players),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert pack purchase: %w", err)
	}
	return DBPurchaseToModel(row)
}

// ListPurchases returns the league's purchase history, newest first
func (r *Repository) ListPurchases(ctx context.Context, leagueID uuid.UUID) ([]models.PackPurchase, error) {
	rows, err := r.queries.ListPackPurchasesByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pack purchases: %w", err)
	}
	purchases := make([]models.PackPurchase, 0, len(rows))
	for _, row := range rows {
		p, err := DBPurchaseToModel(row)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, *p)
	}
	return purchases, nil
}

// DBPackToModel converts a database pack to domain model
func DBPackToModel(pack db.Pack) *models.Pack {
	return &models.Pack{
		ID:          pack.ID,
		LeagueID:    pack.LeagueID,
		Name:        pack.Name,
		Price:       pack.Price,
		PlayerCount: int(pack.PlayerCount),
		Season:      int(pack.Season),
	}
}

// DBPurchaseToModel converts a database purchase to domain model
func DBPurchaseToModel(row db.PackPurchase) (*models.PackPurchase, error) {
	p := &models.PackPurchase{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		TeamID:    row.TeamID,
		PackID:    row.PackID,
		Cost:      row.Cost,
		Seed:      row.Seed,
		Players:   []models.PackedPlayer{},
		CreatedAt: row.CreatedAt,
	}
	if raw := sqlutil.FromNullRawMessage(row.Players); len(raw) > 0 {
		if err := json.Unmarshal(raw, &p.Players); err != nil {
			return nil, fmt.Errorf("failed to unmarshal packed players: %w", err)
		}
	}
	return p, nil
}

var (
	_ Store = (*Repository)(nil)
	_ Tx    = (*Repository)(nil)
)
