package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/auth"
	"github.com/mcdev12/leaguefc/go/internal/freeagency"
)

// placeBidBody is the wire shape of a bid; numeric terms may arrive as strings
type placeBidBody struct {
	LeagueID      uuid.UUID    `json:"leagueId"`
	TeamID        uuid.UUID    `json:"teamId"`
	PlayerID      uuid.UUID    `json:"playerId"`
	SalaryPerYear looseNumber  `json:"salaryPerYear"`
	ContractYears looseNumber  `json:"contractYears"`
	GuaranteedPct *looseNumber `json:"guaranteedPct"`
	SigningBonus  looseNumber  `json:"signingBonus"`
	NoTradeClause bool         `json:"noTradeClause"`
}

func (b placeBidBody) action(actorID uuid.UUID) freeagency.PlaceBidAction {
	req := freeagency.BidRequest{
		ActorID:       actorID,
		LeagueID:      b.LeagueID,
		TeamID:        b.TeamID,
		PlayerID:      b.PlayerID,
		SalaryPerYear: float64(b.SalaryPerYear),
		ContractYears: float64(b.ContractYears),
		SigningBonus:  float64(b.SigningBonus),
		NoTradeClause: b.NoTradeClause,
	}
	if b.GuaranteedPct != nil {
		g := float64(*b.GuaranteedPct)
		req.GuaranteedPct = &g
	}
	return freeagency.PlaceBidAction{BidRequest: req}
}

func (s *Server) handleListFreeAgents(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUser(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	leagueID, err := requiredQueryID(r, "leagueId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	teamID, err := optionalQueryID(r, "teamId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := s.deps.FreeAgency.ListFreeAgents(r.Context(), userID, leagueID, teamID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, list)
}

func (s *Server) handleFreeAgentAction(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUser(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	action, err := decodeFreeAgencyAction(body, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.validate(action); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.deps.FreeAgency.Execute(r.Context(), action)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, result)
}

// decodeFreeAgencyAction selects the action variant named by the body's
// action field and decodes the rest of the body into it
func decodeFreeAgencyAction(body []byte, actorID uuid.UUID) (freeagency.Action, error) {
	var head struct {
		Action string `json:"action"`
	}
	if err := decodeJSON(body, &head); err != nil {
		return nil, err
	}

	switch head.Action {
	case "placeBid":
		var b placeBidBody
		if err := decodeJSON(body, &b); err != nil {
			return nil, err
		}
		return b.action(actorID), nil
	case "sign":
		var a freeagency.SignAction
		if err := decodeJSON(body, &a); err != nil {
			return nil, err
		}
		a.ActorID = actorID
		return a, nil
	case "clear":
		var a freeagency.ClearAction
		if err := decodeJSON(body, &a); err != nil {
			return nil, err
		}
		a.ActorID = actorID
		return a, nil
	case "setPool":
		var a freeagency.SetPoolAction
		if err := decodeJSON(body, &a); err != nil {
			return nil, err
		}
		a.ActorID = actorID
		return a, nil
	case "resolve":
		var a freeagency.ResolveAction
		if err := decodeJSON(body, &a); err != nil {
			return nil, err
		}
		a.ActorID = actorID
		return a, nil
	case "":
		return nil, apperr.Validation("action is required")
	default:
		return nil, apperr.Validation("unknown action %q", head.Action)
	}
}
