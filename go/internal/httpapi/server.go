// Package httpapi serves the league economy REST routes.
package httpapi

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/auth"
	"github.com/mcdev12/leaguefc/go/internal/finances"
	"github.com/mcdev12/leaguefc/go/internal/freeagency"
	"github.com/mcdev12/leaguefc/go/internal/leagues"
	"github.com/mcdev12/leaguefc/go/internal/models"
	"github.com/mcdev12/leaguefc/go/internal/packs"
)

// FreeAgencyApp defines what the routes need from the free agency engine
type FreeAgencyApp interface {
	Execute(ctx context.Context, action freeagency.Action) (any, error)
	ListFreeAgents(ctx context.Context, actorID, leagueID uuid.UUID, teamID *uuid.UUID) (*freeagency.FreeAgentList, error)
}

// PacksApp defines what the routes need from the pack engine
type PacksApp interface {
	OpenPack(ctx context.Context, req packs.OpenRequest) (*packs.OpenResult, error)
	ListPurchases(ctx context.Context, actorID, leagueID uuid.UUID, teamID *uuid.UUID) ([]models.PackPurchase, error)
}

// FinancesApp defines what the routes need from team finances
type FinancesApp interface {
	Summary(ctx context.Context, actorID, teamID uuid.UUID) (*finances.Summary, error)
	Simulate(ctx context.Context, actorID, teamID uuid.UUID, action finances.Action) (*finances.Projection, error)
}

// LeaguesApp defines what the routes need from league lookups
type LeaguesApp interface {
	TeamOverview(ctx context.Context, actorID, teamID uuid.UUID) (*leagues.TeamOverview, error)
}

// Deps are the collaborators the server routes to
type Deps struct {
	Auth       *auth.Authenticator
	FreeAgency FreeAgencyApp
	Packs      PacksApp
	Finances   FinancesApp
	Leagues    LeaguesApp

	// RPCPath and RPC mount an authenticated connect handler, if set
	RPCPath string
	RPC     http.Handler

	RequestTimeout time.Duration
}

// Server is the chi router for the API
type Server struct {
	deps      Deps
	validator *validator.Validate
	mux       *chi.Mux
}

// New builds the router
func New(deps Deps) *Server {
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 30 * time.Second
	}

	s := &Server{
		deps:      deps,
		validator: newValidator(),
		mux:       chi.NewRouter(),
	}
	s.routes()
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.deps.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.deps.Auth.Middleware(writeError))

		r.Route("/api", func(r chi.Router) {
			r.Get("/freeagents", s.handleListFreeAgents)
			r.Post("/freeagents", s.handleFreeAgentAction)

			r.Get("/packs", s.handleListPurchases)
			r.Post("/packs", s.handleOpenPack)

			r.Get("/team/{teamId}", s.handleTeamOverview)
			r.Get("/team/{teamId}/finances", s.handleFinanceSummary)
			r.Post("/team/{teamId}/finances", s.handleFinanceAction)
		})

		if s.deps.RPC != nil {
			r.Handle(s.deps.RPCPath+"*", s.deps.RPC)
		}
	})
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
