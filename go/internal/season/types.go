package season

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Lifecycle actions, recorded on the SeasonAction event
const (
	ActionGenerateSchedule            = "generate_schedule"
	ActionSimulateMatchday            = "simulate_matchday"
	ActionSimulateMatchdayCompetition = "simulate_matchday_competition"
	ActionEndSeason                   = "end_season"
	ActionValidateRegistration        = "validate_league_registration"
	ActionAutoStarterSquad            = "auto_starter_squad"
	ActionStartDraft                  = "start_draft"
	ActionInsertMatchResult           = "insert_match_result"
)

// LeagueRequest targets a league
type LeagueRequest struct {
	LeagueID uuid.UUID `json:"leagueId"`
}

// CompetitionRequest targets one competition of a league
type CompetitionRequest struct {
	LeagueID      uuid.UUID `json:"leagueId"`
	CompetitionID uuid.UUID `json:"competitionId"`
}

// TeamRequest targets a team
type TeamRequest struct {
	TeamID uuid.UUID `json:"teamId"`
}

// MatchResultRequest records a manually entered score
type MatchResultRequest struct {
	LeagueID  uuid.UUID `json:"leagueId"`
	MatchID   uuid.UUID `json:"matchId"`
	HomeGoals int       `json:"homeGoals"`
	AwayGoals int       `json:"awayGoals"`
}

// ActionResponse relays the procedure's own result document
type ActionResponse struct {
	LeagueID uuid.UUID       `json:"leagueId"`
	Action   string          `json:"action"`
	Result   json.RawMessage `json:"result"`
}
