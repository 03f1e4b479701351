package season

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
	"github.com/mcdev12/leaguefc/go/internal/auth"
)

// ServiceName is the fully-qualified name of the season RPC service
const ServiceName = "season.v1.SeasonService"

// Procedure paths served by NewHandler
const (
	GenerateScheduleProcedure            = "/" + ServiceName + "/GenerateSchedule"
	SimulateMatchdayProcedure            = "/" + ServiceName + "/SimulateMatchday"
	SimulateMatchdayCompetitionProcedure = "/" + ServiceName + "/SimulateMatchdayCompetition"
	EndSeasonProcedure                   = "/" + ServiceName + "/EndSeason"
	ValidateRegistrationProcedure        = "/" + ServiceName + "/ValidateRegistration"
	AutoStarterSquadProcedure            = "/" + ServiceName + "/AutoStarterSquad"
	StartDraftProcedure                  = "/" + ServiceName + "/StartDraft"
	InsertMatchResultProcedure           = "/" + ServiceName + "/InsertMatchResult"
)

// SeasonApp defines what the service layer needs from the season application
type SeasonApp interface {
	GenerateSchedule(ctx context.Context, actorID, leagueID uuid.UUID) (*ActionResponse, error)
	SimulateMatchday(ctx context.Context, actorID, leagueID uuid.UUID) (*ActionResponse, error)
	SimulateMatchdayCompetition(ctx context.Context, actorID, leagueID, competitionID uuid.UUID) (*ActionResponse, error)
	EndSeason(ctx context.Context, actorID, leagueID uuid.UUID) (*ActionResponse, error)
	ValidateRegistration(ctx context.Context, actorID, leagueID uuid.UUID) (*ActionResponse, error)
	AutoStarterSquad(ctx context.Context, actorID, teamID uuid.UUID) (*ActionResponse, error)
	StartDraft(ctx context.Context, actorID, leagueID uuid.UUID) (*ActionResponse, error)
	InsertMatchResult(ctx context.Context, actorID uuid.UUID, req MatchResultRequest) (*ActionResponse, error)
}

// Service implements the season connect service
type Service struct {
	app SeasonApp
}

// NewService creates a new season service
func NewService(app SeasonApp) *Service {
	return &Service{
		app: app,
	}
}

// NewHandler builds the HTTP handler for every season procedure and returns
// the path prefix to mount it on
func NewHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GenerateScheduleProcedure, connect.NewUnaryHandler(GenerateScheduleProcedure, svc.GenerateSchedule, opts...))
	mux.Handle(SimulateMatchdayProcedure, connect.NewUnaryHandler(SimulateMatchdayProcedure, svc.SimulateMatchday, opts...))
	mux.Handle(SimulateMatchdayCompetitionProcedure, connect.NewUnaryHandler(SimulateMatchdayCompetitionProcedure, svc.SimulateMatchdayCompetition, opts...))
	mux.Handle(EndSeasonProcedure, connect.NewUnaryHandler(EndSeasonProcedure, svc.EndSeason, opts...))
	mux.Handle(ValidateRegistrationProcedure, connect.NewUnaryHandler(ValidateRegistrationProcedure, svc.ValidateRegistration, opts...))
	mux.Handle(AutoStarterSquadProcedure, connect.NewUnaryHandler(AutoStarterSquadProcedure, svc.AutoStarterSquad, opts...))
	mux.Handle(StartDraftProcedure, connect.NewUnaryHandler(StartDraftProcedure, svc.StartDraft, opts...))
	mux.Handle(InsertMatchResultProcedure, connect.NewUnaryHandler(InsertMatchResultProcedure, svc.InsertMatchResult, opts...))
	return "/" + ServiceName + "/", mux
}

func (s *Service) GenerateSchedule(ctx context.Context, req *connect.Request[LeagueRequest]) (*connect.Response[ActionResponse], error) {
	return s.leagueAction(ctx, req.Msg, s.app.GenerateSchedule)
}

func (s *Service) SimulateMatchday(ctx context.Context, req *connect.Request[LeagueRequest]) (*connect.Response[ActionResponse], error) {
	return s.leagueAction(ctx, req.Msg, s.app.SimulateMatchday)
}

func (s *Service) EndSeason(ctx context.Context, req *connect.Request[LeagueRequest]) (*connect.Response[ActionResponse], error) {
	return s.leagueAction(ctx, req.Msg, s.app.EndSeason)
}

func (s *Service) ValidateRegistration(ctx context.Context, req *connect.Request[LeagueRequest]) (*connect.Response[ActionResponse], error) {
	return s.leagueAction(ctx, req.Msg, s.app.ValidateRegistration)
}

func (s *Service) StartDraft(ctx context.Context, req *connect.Request[LeagueRequest]) (*connect.Response[ActionResponse], error) {
	return s.leagueAction(ctx, req.Msg, s.app.StartDraft)
}

func (s *Service) SimulateMatchdayCompetition(ctx context.Context, req *connect.Request[CompetitionRequest]) (*connect.Response[ActionResponse], error) {
	actorID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if req.Msg.LeagueID == uuid.Nil || req.Msg.CompetitionID == uuid.Nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("leagueId and competitionId are required"))
	}

	resp, err := s.app.SimulateMatchdayCompetition(ctx, actorID, req.Msg.LeagueID, req.Msg.CompetitionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(resp), nil
}

func (s *Service) AutoStarterSquad(ctx context.Context, req *connect.Request[TeamRequest]) (*connect.Response[ActionResponse], error) {
	actorID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if req.Msg.TeamID == uuid.Nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("teamId is required"))
	}

	resp, err := s.app.AutoStarterSquad(ctx, actorID, req.Msg.TeamID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(resp), nil
}

func (s *Service) InsertMatchResult(ctx context.Context, req *connect.Request[MatchResultRequest]) (*connect.Response[ActionResponse], error) {
	actorID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	msg := req.Msg
	if msg.LeagueID == uuid.Nil || msg.MatchID == uuid.Nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("leagueId and matchId are required"))
	}
	if msg.HomeGoals < 0 || msg.AwayGoals < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("goals must not be negative"))
	}

	resp, err := s.app.InsertMatchResult(ctx, actorID, *msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(resp), nil
}

func (s *Service) leagueAction(ctx context.Context, msg *LeagueRequest, call func(ctx context.Context, actorID, leagueID uuid.UUID) (*ActionResponse, error)) (*connect.Response[ActionResponse], error) {
	actorID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if msg.LeagueID == uuid.Nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("leagueId is required"))
	}

	resp, err := call(ctx, actorID, msg.LeagueID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(resp), nil
}

// toConnectError maps an application error kind onto a connect code
func toConnectError(err error) *connect.Error {
	code := connect.CodeInternal
	switch apperr.KindOf(err) {
	case apperr.KindUnauthorized:
		code = connect.CodeUnauthenticated
	case apperr.KindForbidden:
		code = connect.CodePermissionDenied
	case apperr.KindNotFound:
		code = connect.CodeNotFound
	case apperr.KindValidation:
		code = connect.CodeInvalidArgument
	case apperr.KindPhase, apperr.KindDeadlinePassed, apperr.KindRosterFull, apperr.KindNotFreeAgent, apperr.KindInsufficientBudget:
		code = connect.CodeFailedPrecondition
	default:
		log.Error().Err(err).Msg("season action failed")
	}
	return connect.NewError(code, errors.New(apperr.Message(err)))
}
