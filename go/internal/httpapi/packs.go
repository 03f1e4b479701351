package httpapi

import (
	"net/http"

	"github.com/mcdev12/leaguefc/go/internal/auth"
	"github.com/mcdev12/leaguefc/go/internal/packs"
)

func (s *Server) handleOpenPack(w http.ResponseWriter, r *http.Request) {
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

	var req packs.OpenRequest
	if err := decodeJSON(body, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.validate(req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ActorID = userID

	result, err := s.deps.Packs.OpenPack(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, result)
}

func (s *Server) handleListPurchases(w http.ResponseWriter, r *http.Request) {
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

	purchases, err := s.deps.Packs.ListPurchases(r.Context(), userID, leagueID, teamID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, purchases)
}
