package httpapi

import (
	"net/http"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/auth"
	"github.com/mcdev12/leaguefc/go/internal/finances"
)

func (s *Server) handleTeamOverview(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUser(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	teamID, err := pathID(r, "teamId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	overview, err := s.deps.Leagues.TeamOverview(r.Context(), userID, teamID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, overview)
}

func (s *Server) handleFinanceSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUser(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	teamID, err := pathID(r, "teamId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := s.deps.Finances.Summary(r.Context(), userID, teamID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, summary)
}

func (s *Server) handleFinanceAction(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUser(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	teamID, err := pathID(r, "teamId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	action, err := decodeFinanceAction(body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.validate(action); err != nil {
		writeError(w, r, err)
		return
	}

	projection, err := s.deps.Finances.Simulate(r.Context(), userID, teamID, action)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, projection)
}

func decodeFinanceAction(body []byte) (finances.Action, error) {
	var head struct {
		Action string `json:"action"`
	}
	if err := decodeJSON(body, &head); err != nil {
		return nil, err
	}

	switch head.Action {
	case finances.AddPlayer{}.Name():
		var a finances.AddPlayer
		if err := decodeJSON(body, &a); err != nil {
			return nil, err
		}
		return a, nil
	case finances.RemovePlayer{}.Name():
		var a finances.RemovePlayer
		if err := decodeJSON(body, &a); err != nil {
			return nil, err
		}
		return a, nil
	case finances.UpdateBudget{}.Name():
		var a finances.UpdateBudget
		if err := decodeJSON(body, &a); err != nil {
			return nil, err
		}
		return a, nil
	case "":
		return nil, apperr.Validation("action is required")
	default:
		return nil, apperr.Validation("unknown action %q", head.Action)
	}
}
