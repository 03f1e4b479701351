package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/auth"
	"github.com/mcdev12/leaguefc/go/internal/finances"
	"github.com/mcdev12/leaguefc/go/internal/freeagency"
	"github.com/mcdev12/leaguefc/go/internal/leagues"
	"github.com/mcdev12/leaguefc/go/internal/models"
	"github.com/mcdev12/leaguefc/go/internal/packs"
)

const token = "session-token"

type fakeSessions map[string]uuid.UUID

func (f fakeSessions) GetSessionUser(_ context.Context, tok string) (uuid.UUID, error) {
	userID, ok := f[tok]
	if !ok {
		return uuid.Nil, sql.ErrNoRows
	}
	return userID, nil
}

type fakeFreeAgency struct {
	action  freeagency.Action
	listFor *uuid.UUID
	err     error
}

func (f *fakeFreeAgency) Execute(_ context.Context, action freeagency.Action) (any, error) {
	f.action = action
	if f.err != nil {
		return nil, f.err
	}
	return map[string]string{"ok": "yes"}, nil
}

func (f *fakeFreeAgency) ListFreeAgents(_ context.Context, _, leagueID uuid.UUID, teamID *uuid.UUID) (*freeagency.FreeAgentList, error) {
	f.listFor = teamID
	return &freeagency.FreeAgentList{LeagueID: leagueID, Season: 2, Players: []freeagency.FreeAgent{}}, nil
}

type fakePacks struct {
	req packs.OpenRequest
	err error
}

func (f *fakePacks) OpenPack(_ context.Context, req packs.OpenRequest) (*packs.OpenResult, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &packs.OpenResult{Budget: 4_000_000}, nil
}

func (f *fakePacks) ListPurchases(context.Context, uuid.UUID, uuid.UUID, *uuid.UUID) ([]models.PackPurchase, error) {
	return []models.PackPurchase{{Cost: 1_000_000}}, nil
}

type fakeFinances struct {
	action finances.Action
}

func (f *fakeFinances) Summary(_ context.Context, _, teamID uuid.UUID) (*finances.Summary, error) {
	return &finances.Summary{TeamID: teamID, Budget: 10_000_000}, nil
}

func (f *fakeFinances) Simulate(_ context.Context, _, _ uuid.UUID, action finances.Action) (*finances.Projection, error) {
	f.action = action
	return &finances.Projection{Action: action.Name()}, nil
}

type fakeLeagues struct{}

func (fakeLeagues) TeamOverview(_ context.Context, actorID, teamID uuid.UUID) (*leagues.TeamOverview, error) {
	return &leagues.TeamOverview{
		TeamContext: leagues.TeamContext{Team: &models.Team{ID: teamID}},
		Access:      leagues.Access{UserID: actorID, OwnsTeam: true},
	}, nil
}

type fixture struct {
	user     uuid.UUID
	fa       *fakeFreeAgency
	packs    *fakePacks
	finances *fakeFinances
	rpcSeen  uuid.UUID
	srv      *httptest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		user:     uuid.New(),
		fa:       &fakeFreeAgency{},
		packs:    &fakePacks{},
		finances: &fakeFinances{},
	}
	rpc := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.rpcSeen, _ = auth.UserFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	s := New(Deps{
		Auth:       auth.New(fakeSessions{token: f.user}),
		FreeAgency: f.fa,
		Packs:      f.packs,
		Finances:   f.finances,
		Leagues:    fakeLeagues{},
		RPCPath:    "/season.v1.SeasonService/",
		RPC:        rpc,
	})
	f.srv = httptest.NewServer(s.Handler())
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) (*http.Response, Envelope) {
	t.Helper()
	req, err := http.NewRequest(method, f.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestHealthNeedsNoAuth(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMissingSessionIsUnauthorized(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.srv.URL + "/api/freeagents?leagueId=" + uuid.NewString())
	require.NoError(t, err)
	defer resp.Body.Close()

	var env Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, string(apperr.KindUnauthorized), env.Code)
}

func TestListFreeAgents(t *testing.T) {
	f := newFixture(t)
	teamID := uuid.New()

	resp, env := f.do(t, http.MethodGet, "/api/freeagents?leagueId="+uuid.NewString()+"&teamId="+teamID.String(), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	require.NotNil(t, f.fa.listFor)
	assert.Equal(t, teamID, *f.fa.listFor)

	resp, env = f.do(t, http.MethodGet, "/api/freeagents", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "leagueId is required", env.Error)
}

func TestPlaceBidAcceptsLooseNumbers(t *testing.T) {
	f := newFixture(t)
	leagueID, teamID, playerID := uuid.New(), uuid.New(), uuid.New()

	body := `{"action":"placeBid","leagueId":"` + leagueID.String() + `","teamId":"` + teamID.String() +
		`","playerId":"` + playerID.String() + `","salaryPerYear":"3000000","contractYears":2,"guaranteedPct":"50"}`
	resp, env := f.do(t, http.MethodPost, "/api/freeagents", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	bid, ok := f.fa.action.(freeagency.PlaceBidAction)
	require.True(t, ok)
	assert.Equal(t, f.user, bid.ActorID)
	assert.Equal(t, teamID, bid.TeamID)
	assert.Equal(t, 3_000_000.0, bid.SalaryPerYear)
	assert.Equal(t, 2.0, bid.ContractYears)
	require.NotNil(t, bid.GuaranteedPct)
	assert.Equal(t, 50.0, *bid.GuaranteedPct)
}

func TestFreeAgentActionsDecodeToVariants(t *testing.T) {
	leagueID := uuid.NewString()
	tests := []struct {
		body string
		want freeagency.Action
	}{
		{`{"action":"sign","leagueId":"` + leagueID + `","teamId":"` + uuid.NewString() + `","playerId":"` + uuid.NewString() + `"}`, freeagency.SignAction{}},
		{`{"action":"clear","leagueId":"` + leagueID + `"}`, freeagency.ClearAction{}},
		{`{"action":"setPool","leagueId":"` + leagueID + `","playerIds":[]}`, freeagency.SetPoolAction{}},
		{`{"action":"resolve","leagueId":"` + leagueID + `"}`, freeagency.ResolveAction{}},
	}
	for _, tt := range tests {
		f := newFixture(t)
		resp, _ := f.do(t, http.MethodPost, "/api/freeagents", tt.body)
		require.Equal(t, http.StatusOK, resp.StatusCode, tt.body)
		assert.IsType(t, tt.want, f.fa.action)
	}
}

func TestFreeAgentActionRejections(t *testing.T) {
	f := newFixture(t)

	resp, env := f.do(t, http.MethodPost, "/api/freeagents", `{"action":"poach"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Error, "unknown action")

	resp, env = f.do(t, http.MethodPost, "/api/freeagents", `{"leagueId":"`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "action is required", env.Error)

	resp, env = f.do(t, http.MethodPost, "/api/freeagents", `{"action":"clear"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "leagueId is required", env.Error)

	resp, _ = f.do(t, http.MethodPost, "/api/freeagents", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, f.fa.action)
}

func TestErrorKindsMapToStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperr.Forbidden("not your team"), http.StatusForbidden},
		{apperr.DeadlinePassed("too late"), http.StatusBadRequest},
		{apperr.NotFound("league not found"), http.StatusNotFound},
		{apperr.InsufficientBudget("broke"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		f := newFixture(t)
		f.fa.err = tt.err
		resp, env := f.do(t, http.MethodPost, "/api/freeagents", `{"action":"clear","leagueId":"`+uuid.NewString()+`"}`)
		assert.Equal(t, tt.status, resp.StatusCode)
		assert.False(t, env.Success)
		assert.Equal(t, apperr.Message(tt.err), env.Error)
	}
}

func TestInternalErrorsAreHidden(t *testing.T) {
	f := newFixture(t)
	f.packs.err = sql.ErrConnDone

	resp, env := f.do(t, http.MethodPost, "/api/packs", `{"packId":"`+uuid.NewString()+`","teamId":"`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, env.Error, "connection")
}

func TestOpenPack(t *testing.T) {
	f := newFixture(t)
	packID, teamID := uuid.New(), uuid.New()

	resp, env := f.do(t, http.MethodPost, "/api/packs", `{"packId":"`+packID.String()+`","teamId":"`+teamID.String()+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, packs.OpenRequest{ActorID: f.user, PackID: packID, TeamID: teamID}, f.packs.req)

	resp, env = f.do(t, http.MethodPost, "/api/packs", `{"teamId":"`+teamID.String()+`"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "packId is required", env.Error)
}

func TestListPurchases(t *testing.T) {
	f := newFixture(t)

	resp, env := f.do(t, http.MethodGet, "/api/packs?leagueId="+uuid.NewString(), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.Data, 1)

	resp, _ = f.do(t, http.MethodGet, "/api/packs?leagueId="+uuid.NewString()+"&teamId=bogus", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFinances(t *testing.T) {
	f := newFixture(t)
	teamID := uuid.New()
	path := "/api/team/" + teamID.String() + "/finances"

	resp, env := f.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	resp, env = f.do(t, http.MethodGet, "/api/team/"+teamID.String(), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	access := env.Data.(map[string]any)["access"].(map[string]any)
	assert.Equal(t, true, access["owns_team"])

	resp, _ = f.do(t, http.MethodPost, path, `{"action":"add_player","rating":84,"positions":"CB"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, finances.AddPlayer{Rating: 84, Positions: "CB"}, f.finances.action)

	resp, _ = f.do(t, http.MethodPost, path, `{"action":"update_budget","budget":5000000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, finances.UpdateBudget{Budget: 5_000_000}, f.finances.action)

	resp, env = f.do(t, http.MethodPost, path, `{"action":"add_player","rating":120,"positions":"CB"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "rating must be at most 99", env.Error)

	resp, _ = f.do(t, http.MethodGet, "/api/team/nope/finances", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRPCMountIsAuthenticated(t *testing.T) {
	f := newFixture(t)

	req, err := http.NewRequest(http.MethodPost, f.srv.URL+"/season.v1.SeasonService/EndSeason", strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, f.user, f.rpcSeen)
}

func TestLooseNumber(t *testing.T) {
	var v struct {
		A looseNumber  `json:"a"`
		B looseNumber  `json:"b"`
		C looseNumber  `json:"c"`
		D *looseNumber `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2","b":1.5,"c":"abc","d":null}`), &v))
	assert.Equal(t, looseNumber(2), v.A)
	assert.Equal(t, looseNumber(1.5), v.B)
	assert.True(t, math.IsNaN(float64(v.C)))
	assert.Nil(t, v.D)
}
