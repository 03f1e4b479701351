package freeagency

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/engine"
	"github.com/mcdev12/leaguefc/go/internal/models"
)

type recordedEvent struct {
	LeagueID  uuid.UUID
	EventType string
	Payload   any
}

type fakeEngine struct {
	engine.GameEngine
	bills      map[uuid.UUID]int64
	finance    []engine.FinanceEntry
	audits     []engine.AuditEntry
	resolution engine.FreeAgencyResolution
	resolved   int
}

func (e *fakeEngine) CalculateTeamWages(_ context.Context, teamID uuid.UUID) (int64, error) {
	return e.bills[teamID], nil
}

func (e *fakeEngine) WriteFinanceEntry(_ context.Context, entry engine.FinanceEntry) error {
	e.finance = append(e.finance, entry)
	return nil
}

func (e *fakeEngine) WriteAuditLog(_ context.Context, entry engine.AuditEntry) error {
	e.audits = append(e.audits, entry)
	return nil
}

func (e *fakeEngine) ResolveFreeAgency(_ context.Context, _ uuid.UUID) (engine.FreeAgencyResolution, error) {
	e.resolved++
	return e.resolution, nil
}

type playerKey struct {
	league uuid.UUID
	player uuid.UUID
}

type state struct {
	leagues   map[uuid.UUID]models.League
	teams     map[uuid.UUID]models.Team
	hosts     map[uuid.UUID]uuid.UUID
	players   map[playerKey]models.LeaguePlayerProfile
	pool      map[playerKey]bool
	bids      []models.FreeAgentBid
	contracts []models.Contract
	events    []recordedEvent
}

func (s state) clone() state {
	return state{
		leagues:   maps.Clone(s.leagues),
		teams:     maps.Clone(s.teams),
		hosts:     maps.Clone(s.hosts),
		players:   maps.Clone(s.players),
		pool:      maps.Clone(s.pool),
		bids:      slices.Clone(s.bids),
		contracts: slices.Clone(s.contracts),
		events:    slices.Clone(s.events),
	}
}

// memStore is an in-memory Store. InTx rolls every change back when fn fails.
type memStore struct {
	state
	engine *fakeEngine
	txs    int
}

func newMemStore() *memStore {
	return &memStore{
		state: state{
			leagues: map[uuid.UUID]models.League{},
			teams:   map[uuid.UUID]models.Team{},
			hosts:   map[uuid.UUID]uuid.UUID{},
			players: map[playerKey]models.LeaguePlayerProfile{},
			pool:    map[playerKey]bool{},
		},
		engine: &fakeEngine{bills: map[uuid.UUID]int64{}},
	}
}

func (m *memStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	m.txs++
	snapshot := m.state.clone()
	finance, audits := len(m.engine.finance), len(m.engine.audits)
	if err := fn(m); err != nil {
		m.state = snapshot
		m.engine.finance = m.engine.finance[:finance]
		m.engine.audits = m.engine.audits[:audits]
		return err
	}
	return nil
}

func (m *memStore) GetLeague(_ context.Context, id uuid.UUID) (*models.League, error) {
	l, ok := m.leagues[id]
	if !ok {
		return nil, apperr.NotFound("league %s not found", id)
	}
	return &l, nil
}

func (m *memStore) IsLeagueHost(_ context.Context, leagueID, userID uuid.UUID) (bool, error) {
	l, ok := m.leagues[leagueID]
	if ok && l.CommissionerID == userID {
		return true, nil
	}
	return m.hosts[leagueID] == userID, nil
}

func (m *memStore) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	t, ok := m.teams[id]
	if !ok {
		return nil, apperr.NotFound("team %s not found", id)
	}
	return &t, nil
}

func (m *memStore) GetTeamForUpdate(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return m.GetTeam(ctx, id)
}

func (m *memStore) CountRosterPlayers(_ context.Context, teamID uuid.UUID) (int, error) {
	n := 0
	for _, p := range m.players {
		if p.TeamID != nil && *p.TeamID == teamID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) DeductBudget(_ context.Context, teamID uuid.UUID, amount int64) (int64, error) {
	t := m.teams[teamID]
	if t.Budget < amount {
		return 0, apperr.InsufficientBudget("budget %d below %d", t.Budget, amount)
	}
	t.Budget -= amount
	m.teams[teamID] = t
	return t.Budget, nil
}

func (m *memStore) GetLeaguePlayerForUpdate(_ context.Context, leagueID, playerID uuid.UUID) (*models.LeaguePlayerProfile, error) {
	p, ok := m.players[playerKey{leagueID, playerID}]
	if !ok {
		return nil, apperr.NotFreeAgent("player is not in this league")
	}
	return &p, nil
}

func (m *memStore) PoolActive(_ context.Context, leagueID uuid.UUID, _ int) (bool, error) {
	for k := range m.pool {
		if k.league == leagueID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) IsPoolPlayer(_ context.Context, leagueID uuid.UUID, _ int, playerID uuid.UUID) (bool, error) {
	return m.pool[playerKey{leagueID, playerID}], nil
}

func (m *memStore) ExtendDeadline(_ context.Context, leagueID uuid.UUID, now, newDeadline time.Time) (bool, error) {
	l := m.leagues[leagueID]
	if l.FADeadline == nil || l.FADeadline.Before(now) || !l.FADeadline.Before(newDeadline) {
		return false, nil
	}
	l.FADeadline = &newDeadline
	m.leagues[leagueID] = l
	return true, nil
}

func (m *memStore) ReplacePendingBid(_ context.Context, bid models.FreeAgentBid) (*models.FreeAgentBid, error) {
	m.bids = slices.DeleteFunc(m.bids, func(b models.FreeAgentBid) bool {
		return b.Status == models.BidStatusPending && b.LeagueID == bid.LeagueID &&
			b.PlayerID == bid.PlayerID && b.TeamID == bid.TeamID && b.Season == bid.Season
	})
	bid.ID = uuid.New()
	m.bids = append(m.bids, bid)
	return &bid, nil
}

func (m *memStore) AssignPlayer(_ context.Context, leagueID, playerID, teamID uuid.UUID) (bool, error) {
	k := playerKey{leagueID, playerID}
	p, ok := m.players[k]
	if !ok || p.TeamID != nil {
		return false, nil
	}
	p.TeamID = &teamID
	p.OriginType = models.OriginSigned
	m.players[k] = p
	return true, nil
}

func (m *memStore) UpsertContract(_ context.Context, c models.Contract) (*models.Contract, error) {
	c.ID = uuid.New()
	m.contracts = append(m.contracts, c)
	return &c, nil
}

func (m *memStore) clearWhere(match func(b models.FreeAgentBid) bool) int64 {
	var n int64
	for i, b := range m.bids {
		if b.Status == models.BidStatusPending && match(b) {
			m.bids[i].Status = models.BidStatusCleared
			n++
		}
	}
	return n
}

func (m *memStore) ClearPendingBids(_ context.Context, leagueID uuid.UUID, season int) (int64, error) {
	return m.clearWhere(func(b models.FreeAgentBid) bool {
		return b.LeagueID == leagueID && b.Season == season
	}), nil
}

func (m *memStore) ClearPendingBidsForPlayer(_ context.Context, leagueID uuid.UUID, season int, playerID uuid.UUID) (int64, error) {
	return m.clearWhere(func(b models.FreeAgentBid) bool {
		return b.LeagueID == leagueID && b.Season == season && b.PlayerID == playerID
	}), nil
}

func (m *memStore) ReplacePool(_ context.Context, leagueID uuid.UUID, _ int, playerIDs []uuid.UUID) (int64, error) {
	maps.DeleteFunc(m.pool, func(k playerKey, _ bool) bool { return k.league == leagueID })
	var n int64
	for _, id := range playerIDs {
		k := playerKey{leagueID, id}
		if p, ok := m.players[k]; ok && p.TeamID == nil {
			m.pool[k] = true
			n++
		}
	}
	return n, nil
}

func (m *memStore) ListFreeAgents(_ context.Context, leagueID uuid.UUID, _ int, poolActive bool) ([]models.LeaguePlayerProfile, error) {
	var out []models.LeaguePlayerProfile
	for k, p := range m.players {
		if k.league != leagueID || p.TeamID != nil {
			continue
		}
		if poolActive && !m.pool[k] {
			continue
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b models.LeaguePlayerProfile) int { return b.Rating - a.Rating })
	return out, nil
}

func (m *memStore) ListPendingBids(_ context.Context, leagueID, teamID uuid.UUID, season int) ([]models.FreeAgentBid, error) {
	var out []models.FreeAgentBid
	for _, b := range m.bids {
		if b.Status == models.BidStatusPending && b.LeagueID == leagueID && b.TeamID == teamID && b.Season == season {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) Engine() engine.GameEngine {
	return m.engine
}

func (m *memStore) WriteEvent(_ context.Context, leagueID uuid.UUID, eventType string, payload any) error {
	m.events = append(m.events, recordedEvent{LeagueID: leagueID, EventType: eventType, Payload: payload})
	return nil
}

func (m *memStore) pendingBids() []models.FreeAgentBid {
	return slices.DeleteFunc(slices.Clone(m.bids), func(b models.FreeAgentBid) bool {
		return b.Status != models.BidStatusPending
	})
}

func (m *memStore) eventTypes() []string {
	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.EventType
	}
	return out
}

var _ Store = (*memStore)(nil)
