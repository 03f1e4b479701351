package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/leaguefc/go/internal/auth"
	"github.com/mcdev12/leaguefc/go/internal/events"
	"github.com/mcdev12/leaguefc/go/internal/outbox"
)

type fakeSessions map[string]uuid.UUID

func (f fakeSessions) GetSessionUser(_ context.Context, token string) (uuid.UUID, error) {
	userID, ok := f[token]
	if !ok {
		return uuid.Nil, sql.ErrNoRows
	}
	return userID, nil
}

type fakeMembers map[uuid.UUID]map[uuid.UUID]bool

func (f fakeMembers) IsLeagueMember(_ context.Context, leagueID, userID uuid.UUID) (bool, error) {
	return f[leagueID][userID], nil
}

type recordingBroadcaster struct {
	leagueID uuid.UUID
	events   []*LeagueEvent
}

func (r *recordingBroadcaster) BroadcastToLeague(leagueID uuid.UUID, event *LeagueEvent) {
	r.leagueID = leagueID
	r.events = append(r.events, event)
}

func envelope(t *testing.T, leagueID, eventType string, payload any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	data, err := json.Marshal(outbox.Envelope{
		EventID:   uuid.NewString(),
		EventType: eventType,
		LeagueID:  leagueID,
		Timestamp: time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
		Payload:   raw,
	})
	require.NoError(t, err)
	return data
}

func TestDecodeEnvelopeStripsBidAmounts(t *testing.T) {
	leagueID := uuid.New()
	data := envelope(t, leagueID.String(), events.BidPlaced, map[string]any{
		"league_id": leagueID.String(),
		"team_id":   "team-1",
		"player_id": "player-1",
		"season":    2,
		"salary":    4_000_000,
		"amount":    4_000_000,
	})

	event, gotLeague, err := decodeEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, leagueID, gotLeague)
	assert.Equal(t, events.BidPlaced, event.Type)
	assert.Contains(t, string(event.Data), `"team_id":"team-1"`)
	assert.NotContains(t, string(event.Data), "salary")
	assert.NotContains(t, string(event.Data), "amount")
}

func TestDecodeEnvelopePassesOtherPayloadsThrough(t *testing.T) {
	leagueID := uuid.New()
	data := envelope(t, leagueID.String(), events.PlayerSigned, events.PlayerSignedPayload{
		LeagueID: leagueID.String(),
		Wage:     3_000_000,
	})

	event, _, err := decodeEnvelope(data)
	require.NoError(t, err)
	assert.Contains(t, string(event.Data), `"wage":3000000`)
}

func TestDecodeEnvelopeErrors(t *testing.T) {
	_, _, err := decodeEnvelope([]byte("not json"))
	assert.Error(t, err)

	_, _, err = decodeEnvelope(envelope(t, "nope", events.PackOpened, map[string]any{}))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errUnknownEvent)

	_, _, err = decodeEnvelope(envelope(t, uuid.NewString(), "PickMade", map[string]any{}))
	assert.ErrorIs(t, err, errUnknownEvent)
}

func TestProcessMessageBroadcastsToLeague(t *testing.T) {
	rec := &recordingBroadcaster{}
	ec := &EventConsumer{broadcaster: rec}
	leagueID := uuid.New()

	err := ec.processMessage(envelope(t, leagueID.String(), events.DeadlineExtended, events.DeadlineExtendedPayload{
		LeagueID: leagueID.String(),
	}))
	require.NoError(t, err)
	assert.Equal(t, leagueID, rec.leagueID)
	require.Len(t, rec.events, 1)
	assert.Equal(t, events.DeadlineExtended, rec.events[0].Type)
}

type gatewayFixture struct {
	cm       *ConnectionManager
	server   *httptest.Server
	leagueID uuid.UUID
	member   uuid.UUID
}

func newGatewayFixture(t *testing.T) *gatewayFixture {
	t.Helper()
	f := &gatewayFixture{
		cm:       NewConnectionManager(DefaultConnectionConfig()),
		leagueID: uuid.New(),
		member:   uuid.New(),
	}
	sessions := fakeSessions{"member-token": f.member, "outsider-token": uuid.New()}
	members := fakeMembers{f.leagueID: {f.member: true}}

	mux := http.NewServeMux()
	NewWebSocketHandler(f.cm, auth.New(sessions), members).RegisterRoutes(mux)
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go f.cm.Start(ctx)
	return f
}

func (f *gatewayFixture) wsURL(query string) string {
	return "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws/league?" + query
}

func TestHandshakeRejections(t *testing.T) {
	f := newGatewayFixture(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"missing league", "token=member-token", http.StatusBadRequest},
		{"bad league", "league_id=abc&token=member-token", http.StatusBadRequest},
		{"no token", "league_id=" + f.leagueID.String(), http.StatusUnauthorized},
		{"unknown token", "league_id=" + f.leagueID.String() + "&token=stale", http.StatusUnauthorized},
		{"not a member", "league_id=" + f.leagueID.String() + "&token=outsider-token", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := websocket.DefaultDialer.Dial(f.wsURL(tt.query), nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestMemberReceivesLeagueEvents(t *testing.T) {
	f := newGatewayFixture(t)

	header := http.Header{"Authorization": {"Bearer member-token"}}
	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL("league_id="+f.leagueID.String()), header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return f.cm.ConnectionCount(f.leagueID) == 1 }, time.Second, 10*time.Millisecond)

	f.cm.BroadcastToLeague(uuid.New(), &LeagueEvent{ID: "other", Type: events.PackOpened})
	f.cm.BroadcastToLeague(f.leagueID, &LeagueEvent{
		ID:       "evt-1",
		LeagueID: f.leagueID.String(),
		Type:     events.BidsCleared,
		Data:     json.RawMessage(`{"cleared":3}`),
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got LeagueEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "evt-1", got.ID)
	assert.Equal(t, events.BidsCleared, got.Type)
	assert.JSONEq(t, `{"cleared":3}`, string(got.Data))

	stats := f.cm.GetConnectionStats()
	assert.Equal(t, 1, stats.TotalConnections)
	assert.Equal(t, 1, stats.ActiveLeagues)
}

func TestDisconnectUnregisters(t *testing.T) {
	f := newGatewayFixture(t)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL("league_id="+f.leagueID.String()+"&token=member-token"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return f.cm.ConnectionCount(f.leagueID) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return f.cm.ConnectionCount(f.leagueID) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestConnectionStatsEndpoint(t *testing.T) {
	f := newGatewayFixture(t)

	resp, err := http.Get(f.server.URL + "/ws/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 0, stats.TotalConnections)
	assert.Empty(t, stats.LeagueConnections)
}
