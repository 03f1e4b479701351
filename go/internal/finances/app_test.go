package finances

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/engine"
	"github.com/mcdev12/leaguefc/go/internal/models"
)

type fakeEngine struct {
	engine.GameEngine
	bill int64
}

func (e *fakeEngine) CalculateTeamWages(context.Context, uuid.UUID) (int64, error) {
	return e.bill, nil
}

type fakeRepo struct {
	league    models.League
	team      models.Team
	host      uuid.UUID
	roster    int
	contracts []ContractLine
	engine    *fakeEngine
}

func (r *fakeRepo) GetLeague(_ context.Context, id uuid.UUID) (*models.League, error) {
	if id != r.league.ID {
		return nil, apperr.NotFound("league not found")
	}
	return &r.league, nil
}

func (r *fakeRepo) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	if id != r.team.ID {
		return nil, apperr.NotFound("team not found")
	}
	return &r.team, nil
}

func (r *fakeRepo) IsLeagueHost(_ context.Context, _, userID uuid.UUID) (bool, error) {
	return userID == r.host, nil
}

func (r *fakeRepo) CountRosterPlayers(context.Context, uuid.UUID) (int, error) {
	return r.roster, nil
}

func (r *fakeRepo) ListActiveContracts(context.Context, uuid.UUID) ([]ContractLine, error) {
	out := make([]ContractLine, len(r.contracts))
	copy(out, r.contracts)
	return out, nil
}

func (r *fakeRepo) Engine() engine.GameEngine {
	return r.engine
}

func newFakeRepo() *fakeRepo {
	leagueID := uuid.New()
	discount := 20
	return &fakeRepo{
		league: models.League{ID: leagueID, Season: 4},
		team: models.Team{
			ID:       uuid.New(),
			LeagueID: leagueID,
			OwnerID:  uuid.New(),
			Budget:   10_000_000,
			Reserves: []uuid.UUID{uuid.New(), uuid.New()},
		},
		host:   uuid.New(),
		roster: 18,
		contracts: []ContractLine{
			{Contract: models.Contract{PlayerID: uuid.New(), Wage: 3_000_000}, Name: "Keeper", Positions: "GK", Rating: 80},
			{Contract: models.Contract{PlayerID: uuid.New(), Wage: 2_000_000, WageDiscountPercent: &discount}, Name: "Striker", Positions: "ST", Rating: 70},
		},
		engine: &fakeEngine{bill: 5_000_000},
	}
}

func TestSummary(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)

	s, err := app.Summary(context.Background(), repo.team.OwnerID, repo.team.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(10_000_000), s.Budget)
	assert.Equal(t, int64(5_000_000), s.WageBill)
	assert.Equal(t, int64(5_000_000), s.Headroom)
	assert.Equal(t, 18, s.RosterSize)
	assert.Equal(t, 2, s.Reserves)
	assert.Equal(t, 4, s.Season)
	require.Len(t, s.Contracts, 2)
	assert.Positive(t, s.Contracts[0].BaseWage)
	assert.Equal(t, int64(3_000_000), s.Contracts[0].EffectiveWage)
	assert.Equal(t, int64(1_600_000), s.Contracts[1].EffectiveWage)
}

func TestSummaryAccess(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)

	_, err := app.Summary(context.Background(), repo.host, repo.team.ID)
	assert.NoError(t, err)

	_, err = app.Summary(context.Background(), uuid.New(), repo.team.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = app.Summary(context.Background(), repo.team.OwnerID, uuid.New())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSimulate(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)
	ctx := context.Background()
	owner, teamID := repo.team.OwnerID, repo.team.ID

	t.Run("add player with explicit wage", func(t *testing.T) {
		wage := int64(5_000_000)
		p, err := app.Simulate(ctx, owner, teamID, AddPlayer{Rating: 85, Positions: "ST", Wage: &wage})
		require.NoError(t, err)
		assert.Equal(t, "add_player", p.Action)
		assert.True(t, p.Feasibility.OK)
		assert.Equal(t, int64(10_000_000), p.Feasibility.ProjectedBill)
		assert.Zero(t, p.Feasibility.Headroom)
	})

	t.Run("add player over budget", func(t *testing.T) {
		wage := int64(5_000_001)
		p, err := app.Simulate(ctx, owner, teamID, AddPlayer{Rating: 85, Positions: "ST", Wage: &wage})
		require.NoError(t, err)
		assert.False(t, p.Feasibility.OK)
	})

	t.Run("add player at table wage", func(t *testing.T) {
		p, err := app.Simulate(ctx, owner, teamID, AddPlayer{Rating: 70, Positions: "CB"})
		require.NoError(t, err)
		assert.Positive(t, p.Feasibility.ProposedWage)
	})

	t.Run("remove discounted player frees the raw wage", func(t *testing.T) {
		p, err := app.Simulate(ctx, owner, teamID, RemovePlayer{PlayerID: repo.contracts[1].PlayerID})
		require.NoError(t, err)
		assert.Equal(t, int64(3_000_000), p.Feasibility.ProjectedBill)
		assert.Equal(t, int64(7_000_000), p.Feasibility.Headroom)
	})

	t.Run("remove full wage player", func(t *testing.T) {
		p, err := app.Simulate(ctx, owner, teamID, RemovePlayer{PlayerID: repo.contracts[0].PlayerID})
		require.NoError(t, err)
		assert.Equal(t, int64(2_000_000), p.Feasibility.ProjectedBill)
	})

	t.Run("remove unknown player", func(t *testing.T) {
		_, err := app.Simulate(ctx, owner, teamID, RemovePlayer{PlayerID: uuid.New()})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("update budget", func(t *testing.T) {
		p, err := app.Simulate(ctx, owner, teamID, UpdateBudget{Budget: 4_000_000})
		require.NoError(t, err)
		assert.False(t, p.Feasibility.OK)
		assert.Equal(t, int64(-1_000_000), p.Feasibility.Headroom)
		assert.Equal(t, int64(10_000_000), p.CurrentBudget)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		_, err := app.Simulate(ctx, owner, teamID, AddPlayer{Rating: 120, Positions: "ST"})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		_, err = app.Simulate(ctx, owner, teamID, UpdateBudget{Budget: -1})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}
