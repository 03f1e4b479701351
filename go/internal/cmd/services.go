package main

import (
	"database/sql"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/leaguefc/go/internal/auth"
	"github.com/mcdev12/leaguefc/go/internal/config"
	"github.com/mcdev12/leaguefc/go/internal/db"
	"github.com/mcdev12/leaguefc/go/internal/finances"
	"github.com/mcdev12/leaguefc/go/internal/freeagency"
	"github.com/mcdev12/leaguefc/go/internal/leagues"
	"github.com/mcdev12/leaguefc/go/internal/packs"
	"github.com/mcdev12/leaguefc/go/internal/season"
)

type Services struct {
	Auth       *auth.Authenticator
	FreeAgency *freeagency.App
	Packs      *packs.App
	Finances   *finances.App
	Leagues    *leagues.App

	SeasonPath    string
	SeasonHandler http.Handler
}

func setupServices(database *sql.DB, cfg *config.Config) *Services {
	// Database layer → Repository layer → App layer → Service layer
	queries := db.New(database)
	clock := clockwork.NewRealClock()

	authenticator := auth.New(queries)

	leagueApp := leagues.NewApp(leagues.NewRepository(queries))

	freeAgencyRepo := freeagency.NewRepository(database)
	freeAgencyApp := freeagency.NewApp(freeAgencyRepo, clock, freeAgencyRules(cfg.Economy))

	packsRepo := packs.NewRepository(database)
	packsApp := packs.NewApp(packsRepo, clock, packRules(cfg.Economy))

	financesRepo := finances.NewRepository(database)
	financesApp := finances.NewApp(financesRepo)

	seasonRepo := season.NewRepository(database)
	seasonApp := season.NewApp(seasonRepo, clock)
	seasonPath, seasonHandler := season.NewHandler(season.NewService(seasonApp))

	return &Services{
		Auth:          authenticator,
		FreeAgency:    freeAgencyApp,
		Packs:         packsApp,
		Finances:      financesApp,
		Leagues:       leagueApp,
		SeasonPath:    seasonPath,
		SeasonHandler: seasonHandler,
	}
}
