package leagues

import (
	"github.com/google/uuid"
	"github.com/mcdev12/leaguefc/go/internal/models"
)

// TeamContext is a team together with the league it plays in
type TeamContext struct {
	Team   *models.Team   `json:"team"`
	League *models.League `json:"league"`
}

// Access describes what a user may do within a league
type Access struct {
	UserID   uuid.UUID `json:"user_id"`
	IsHost   bool      `json:"is_host"`
	OwnsTeam bool      `json:"owns_team"`
}

// TeamOverview is a team, its league and the caller's rights over it
type TeamOverview struct {
	TeamContext
	Access Access `json:"access"`
}
