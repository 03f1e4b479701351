package packs

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/engine"
	"github.com/mcdev12/leaguefc/go/internal/events"
	"github.com/mcdev12/leaguefc/go/internal/models"
)

type fakeEngine struct {
	engine.GameEngine
	finance []engine.FinanceEntry
	err     error
}

func (e *fakeEngine) WriteFinanceEntry(_ context.Context, entry engine.FinanceEntry) error {
	if e.err != nil {
		return e.err
	}
	e.finance = append(e.finance, entry)
	return nil
}

// memStore is an in-memory Store. Writes made inside a failed InTx are discarded.
type memStore struct {
	league  models.League
	team    models.Team
	roster  int
	packs   map[uuid.UUID]models.Pack
	odds    map[uuid.UUID][]models.RatingOdds
	catalog []models.PackedPlayer
	hosts   map[uuid.UUID]bool

	inserted  []models.LeaguePlayer
	contracts []models.Contract
	events    []string
	purchases []models.PackPurchase
	queries   []CatalogQuery

	purchaseErr error
	engine      *fakeEngine
}

func (m *memStore) InTx(_ context.Context, fn func(tx Tx) error) error {
	team, inserted, contracts, evs := m.team, len(m.inserted), len(m.contracts), len(m.events)
	if err := fn(m); err != nil {
		m.team = team
		m.inserted = m.inserted[:inserted]
		m.contracts = m.contracts[:contracts]
		m.events = m.events[:evs]
		return err
	}
	return nil
}

func (m *memStore) GetLeague(_ context.Context, id uuid.UUID) (*models.League, error) {
	if id != m.league.ID {
		return nil, apperr.NotFound("league not found")
	}
	l := m.league
	return &l, nil
}

func (m *memStore) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	if id != m.team.ID {
		return nil, apperr.NotFound("team not found")
	}
	t := m.team
	return &t, nil
}

func (m *memStore) GetTeamForUpdate(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return m.GetTeam(ctx, id)
}

func (m *memStore) IsLeagueHost(_ context.Context, _, userID uuid.UUID) (bool, error) {
	return m.hosts[userID], nil
}

func (m *memStore) CountRosterPlayers(context.Context, uuid.UUID) (int, error) {
	return m.roster, nil
}

func (m *memStore) DeductBudget(_ context.Context, _ uuid.UUID, amount int64) (int64, error) {
	if m.team.Budget < amount {
		return 0, apperr.InsufficientBudget("short")
	}
	m.team.Budget -= amount
	return m.team.Budget, nil
}

func (m *memStore) GetPack(_ context.Context, id uuid.UUID) (*models.Pack, error) {
	p, ok := m.packs[id]
	if !ok {
		return nil, apperr.NotFound("pack not found")
	}
	return &p, nil
}

func (m *memStore) ListOdds(_ context.Context, packID uuid.UUID) ([]models.RatingOdds, error) {
	return m.odds[packID], nil
}

func (m *memStore) FindCandidates(_ context.Context, q CatalogQuery) ([]models.PackedPlayer, error) {
	m.queries = append(m.queries, q)
	var out []models.PackedPlayer
	for _, p := range m.catalog {
		if slices.Contains(q.Exclude, p.PlayerID) || m.inLeague(p.PlayerID) {
			continue
		}
		if q.Spread > 0 {
			if p.Rating < q.Rating-q.Spread || p.Rating > q.Rating+q.Spread {
				continue
			}
		} else if p.Rating != q.Rating {
			continue
		}
		if q.Position != "" && !slices.Contains(strings.Split(p.Positions, ","), q.Position) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) inLeague(id uuid.UUID) bool {
	return slices.ContainsFunc(m.inserted, func(lp models.LeaguePlayer) bool { return lp.PlayerID == id })
}

func (m *memStore) InsertLeaguePlayer(_ context.Context, lp models.LeaguePlayer) error {
	m.inserted = append(m.inserted, lp)
	return nil
}

func (m *memStore) UpsertContract(_ context.Context, c models.Contract) error {
	m.contracts = append(m.contracts, c)
	return nil
}

func (m *memStore) AppendReserves(_ context.Context, _ uuid.UUID, ids []uuid.UUID) error {
	m.team.Reserves = append(slices.Clone(m.team.Reserves), ids...)
	return nil
}

func (m *memStore) WriteEvent(_ context.Context, _ uuid.UUID, eventType string, _ any) error {
	m.events = append(m.events, eventType)
	return nil
}

func (m *memStore) RecordPurchase(_ context.Context, p models.PackPurchase) (*models.PackPurchase, error) {
	if m.purchaseErr != nil {
		return nil, m.purchaseErr
	}
	p.ID = uuid.New()
	m.purchases = append([]models.PackPurchase{p}, m.purchases...)
	return &p, nil
}

func (m *memStore) ListPurchases(context.Context, uuid.UUID) ([]models.PackPurchase, error) {
	return m.purchases, nil
}

func (m *memStore) Engine() engine.GameEngine {
	return m.engine
}

type packFixture struct {
	store   *memStore
	app     *App
	ownerID uuid.UUID
	packID  uuid.UUID
	seed    uuid.UUID
}

func newPackFixture(t *testing.T) *packFixture {
	t.Helper()
	leagueID, teamID, packID := uuid.New(), uuid.New(), uuid.New()
	f := &packFixture{
		ownerID: uuid.New(),
		packID:  packID,
		seed:    uuid.MustParse("0b7d5f3e-2a41-4c8f-8e16-97a3c5d2e4f1"),
	}
	f.store = &memStore{
		league: models.League{ID: leagueID, Season: 3, Status: models.LeagueStatusOffseason},
		team:   models.Team{ID: teamID, LeagueID: leagueID, OwnerID: f.ownerID, Budget: 5_000_000},
		packs: map[uuid.UUID]models.Pack{
			packID: {ID: packID, LeagueID: leagueID, Name: "Gold", Price: 1_000_000, PlayerCount: 3, Season: 3},
		},
		odds: map[uuid.UUID][]models.RatingOdds{
			packID: {{Rating: 80, Probability: 1}},
		},
		hosts:  map[uuid.UUID]bool{},
		engine: &fakeEngine{},
	}
	for _, pos := range Positions {
		f.store.catalog = append(f.store.catalog, models.PackedPlayer{
			PlayerID:  uuid.New(),
			Name:      pos + " 80",
			Positions: pos,
			Rating:    80,
		})
	}
	f.app = NewApp(f.store, clockwork.NewFakeClockAt(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)), DefaultRules())
	f.app.newSeed = func() uuid.UUID { return f.seed }
	return f
}

func (f *packFixture) open() (*OpenResult, error) {
	return f.app.OpenPack(context.Background(), OpenRequest{
		ActorID: f.ownerID,
		PackID:  f.packID,
		TeamID:  f.store.team.ID,
	})
}

func TestOpenPack(t *testing.T) {
	f := newPackFixture(t)

	res, err := f.open()
	require.NoError(t, err)

	require.Len(t, res.Players, 3)
	assert.Equal(t, int64(4_000_000), res.Budget)
	assert.Equal(t, f.seed, res.Seed)
	assert.Len(t, f.store.inserted, 3)
	assert.Len(t, f.store.team.Reserves, 3)
	assert.Equal(t, []string{events.PackOpened}, f.store.events)

	seen := map[uuid.UUID]bool{}
	for _, p := range res.Players {
		assert.False(t, p.Placeholder)
		assert.Equal(t, 80, p.Rating)
		assert.False(t, seen[p.PlayerID], "a pack never draws the same player twice")
		seen[p.PlayerID] = true
	}

	for _, c := range f.store.contracts {
		assert.Equal(t, int64(3_000_000), c.Wage)
		assert.Equal(t, 3, c.Years)
		assert.Equal(t, 3, c.StartSeason)
		require.NotNil(t, c.WageDiscountPercent)
		assert.Equal(t, 20, *c.WageDiscountPercent)
	}
	for _, lp := range f.store.inserted {
		assert.Equal(t, models.OriginPacked, lp.OriginType)
	}

	assert.NotEmpty(t, f.store.queries[0].Position, "position match is tried first")

	require.Len(t, f.store.purchases, 1)
	assert.Equal(t, f.seed, f.store.purchases[0].Seed)
	require.Len(t, f.store.engine.finance, 1)
	assert.Equal(t, int64(-1_000_000), f.store.engine.finance[0].Amount)
}

func TestOpenPackReplaysFromSeed(t *testing.T) {
	a := newPackFixture(t)
	b := newPackFixture(t)
	b.store.catalog = a.store.catalog

	ra, err := a.open()
	require.NoError(t, err)
	rb, err := b.open()
	require.NoError(t, err)

	for i := range ra.Players {
		assert.Equal(t, ra.Players[i].PlayerID, rb.Players[i].PlayerID)
		assert.Equal(t, ra.Players[i].Position, rb.Players[i].Position)
	}
}

func TestOpenPackRelaxesLookup(t *testing.T) {
	f := newPackFixture(t)
	f.store.catalog = []models.PackedPlayer{{PlayerID: uuid.New(), Name: "Near", Positions: "ZZ", Rating: 82}}
	pack := f.store.packs[f.packID]
	pack.PlayerCount = 1
	f.store.packs[f.packID] = pack

	res, err := f.open()
	require.NoError(t, err)
	require.Len(t, res.Players, 1)
	assert.Equal(t, "Near", res.Players[0].Name)

	require.Len(t, f.store.queries, 3)
	assert.NotEmpty(t, f.store.queries[0].Position)
	assert.Empty(t, f.store.queries[1].Position)
	assert.Zero(t, f.store.queries[1].Spread)
	assert.Equal(t, 2, f.store.queries[2].Spread)
}

func TestOpenPackPlaceholderWhenCatalogIsDry(t *testing.T) {
	f := newPackFixture(t)
	f.store.catalog = f.store.catalog[:1]

	res, err := f.open()
	require.NoError(t, err)

	placeholders := 0
	for _, p := range res.Players {
		if p.Placeholder {
			placeholders++
			assert.Equal(t, uuid.Nil, p.PlayerID)
			assert.Equal(t, 80, p.Rating)
		}
	}
	assert.Equal(t, 2, placeholders)
	assert.Len(t, f.store.inserted, 1)
	assert.Len(t, f.store.team.Reserves, 1)
	assert.Len(t, f.store.purchases[0].Players, 3)
	assert.Equal(t, int64(4_000_000), res.Budget)
}

func TestOpenPackInsufficientBudgetWritesNothing(t *testing.T) {
	f := newPackFixture(t)
	f.store.team.Budget = 0

	_, err := f.open()
	assert.Equal(t, apperr.KindInsufficientBudget, apperr.KindOf(err))
	assert.Zero(t, f.store.team.Budget)
	assert.Empty(t, f.store.inserted)
	assert.Empty(t, f.store.contracts)
	assert.Empty(t, f.store.events)
	assert.Empty(t, f.store.purchases)
	assert.Empty(t, f.store.engine.finance)
}

func TestOpenPackPhase(t *testing.T) {
	cases := []struct {
		name   string
		status models.LeagueStatus
		window bool
		roster int
		kind   apperr.Kind
	}{
		{"offseason ignores roster size", models.LeagueStatusOffseason, false, 23, ""},
		{"open window ignores roster size", models.LeagueStatusInSeason, true, 23, ""},
		{"closed window", models.LeagueStatusInSeason, false, 10, apperr.KindPhase},
		{"preseason within limit", models.LeagueStatusPreseasonSetup, false, 20, ""},
		{"preseason above limit", models.LeagueStatusPreseasonSetup, false, 21, apperr.KindPhase},
		{"season end", models.LeagueStatusSeasonEndProcessing, false, 10, apperr.KindPhase},
		{"archived", models.LeagueStatusArchived, false, 10, apperr.KindPhase},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPackFixture(t)
			f.store.league.Status = tc.status
			f.store.league.TransferWindowOpen = tc.window
			f.store.roster = tc.roster

			_, err := f.open()
			if tc.kind == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.kind, apperr.KindOf(err))
		})
	}
}

func TestOpenPackPreconditions(t *testing.T) {
	t.Run("not owner", func(t *testing.T) {
		f := newPackFixture(t)
		f.ownerID = uuid.New()
		_, err := f.open()
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})
	t.Run("unknown team", func(t *testing.T) {
		f := newPackFixture(t)
		_, err := f.app.OpenPack(context.Background(), OpenRequest{ActorID: f.ownerID, PackID: f.packID, TeamID: uuid.New()})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
	t.Run("pack from another season", func(t *testing.T) {
		f := newPackFixture(t)
		pack := f.store.packs[f.packID]
		pack.Season = 2
		f.store.packs[f.packID] = pack
		_, err := f.open()
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
	t.Run("empty odds", func(t *testing.T) {
		f := newPackFixture(t)
		f.store.odds[f.packID] = nil
		_, err := f.open()
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Equal(t, int64(5_000_000), f.store.team.Budget)
	})
}

func TestOpenPackIgnoresWageBill(t *testing.T) {
	f := newPackFixture(t)
	f.store.team.Budget = 1_000_000

	res, err := f.open()
	require.NoError(t, err)
	assert.Zero(t, res.Budget)
	assert.Len(t, f.store.contracts, 3)
}

func TestOpenPackAuditFailuresAreNotSurfaced(t *testing.T) {
	f := newPackFixture(t)
	f.store.purchaseErr = errors.New("insert failed")
	f.store.engine.err = errors.New("rpc failed")

	res, err := f.open()
	require.NoError(t, err)
	assert.Equal(t, int64(4_000_000), res.Budget)
	assert.Len(t, f.store.inserted, 3)
}

func TestListPurchases(t *testing.T) {
	f := newPackFixture(t)
	_, err := f.open()
	require.NoError(t, err)
	ctx := context.Background()
	leagueID, teamID := f.store.league.ID, f.store.team.ID

	purchases, err := f.app.ListPurchases(ctx, f.ownerID, leagueID, &teamID)
	require.NoError(t, err)
	assert.Len(t, purchases, 1)

	_, err = f.app.ListPurchases(ctx, f.ownerID, leagueID, nil)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	host := uuid.New()
	f.store.hosts[host] = true
	purchases, err = f.app.ListPurchases(ctx, host, leagueID, nil)
	require.NoError(t, err)
	assert.Len(t, purchases, 1)
}
