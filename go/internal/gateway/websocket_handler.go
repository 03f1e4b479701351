package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
)

// Authenticator resolves the user behind a request
type Authenticator interface {
	Authenticate(r *http.Request) (uuid.UUID, error)
}

// MembershipChecker reports whether a user may follow a league
type MembershipChecker interface {
	IsLeagueMember(ctx context.Context, leagueID, userID uuid.UUID) (bool, error)
}

// WebSocketHandler handles websocket upgrade requests for league connections
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	auth              Authenticator
	members           MembershipChecker
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(cm *ConnectionManager, auth Authenticator, members MembershipChecker) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		auth:              auth,
		members:           members,
	}
}

// HandleLeagueConnection subscribes a league member to that league's events.
// Browsers cannot set headers on a websocket handshake, so a token query
// parameter stands in for the Authorization header.
func (h *WebSocketHandler) HandleLeagueConnection(w http.ResponseWriter, r *http.Request) {
	leagueIDStr := r.URL.Query().Get("league_id")
	if leagueIDStr == "" {
		writeError(w, apperr.Validation("league_id is required"))
		return
	}
	leagueID, err := uuid.Parse(leagueIDStr)
	if err != nil {
		writeError(w, apperr.Validation("invalid league_id format"))
		return
	}

	if token := r.URL.Query().Get("token"); token != "" && r.Header.Get("Authorization") == "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	userID, err := h.auth.Authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ok, err := h.members.IsLeagueMember(r.Context(), leagueID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, apperr.Forbidden("not a member of this league"))
		return
	}

	// the upgrader has already written an HTTP error on failure
	if err := h.connectionManager.UpgradeConnection(w, r, userID, leagueID); err != nil {
		log.Error().
			Err(err).
			Str("league_id", leagueID.String()).
			Str("user_id", userID.String()).
			Msg("failed to upgrade websocket connection")
	}
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.connectionManager.GetConnectionStats()); err != nil {
		log.Error().Err(err).Msg("failed to write connection stats")
	}
}

// RegisterRoutes registers websocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/league", h.HandleLeagueConnection)
	mux.HandleFunc("GET /ws/stats", h.HandleConnectionStats)
}

func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		log.Error().Err(err).Msg("websocket handshake failed")
	}
	http.Error(w, apperr.Message(err), kind.Status())
}
