package db

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

type Querier interface {
	AppendTeamReserves(ctx context.Context, arg AppendTeamReservesParams) error
	AssignLeaguePlayer(ctx context.Context, arg AssignLeaguePlayerParams) (int64, error)
	AutoStarterSquad(ctx context.Context, teamID uuid.UUID) (json.RawMessage, error)
	CalculateTeamWages(ctx context.Context, teamID uuid.UUID) (int64, error)
	ClearPendingBids(ctx context.Context, arg ClearPendingBidsParams) (int64, error)
	ClearPendingBidsForPlayer(ctx context.Context, arg ClearPendingBidsForPlayerParams) (int64, error)
	CountPoolPlayers(ctx context.Context, arg CountPoolPlayersParams) (int64, error)
	CountRosterPlayers(ctx context.Context, teamID uuid.NullUUID) (int64, error)
	DeductTeamBudget(ctx context.Context, arg DeductTeamBudgetParams) (int64, error)
	DeletePendingBid(ctx context.Context, arg DeletePendingBidParams) error
	DeletePool(ctx context.Context, arg DeletePoolParams) error
	EndSeason(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	ExtendFADeadline(ctx context.Context, arg ExtendFADeadlineParams) (int64, error)
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (LeagueOutbox, error)
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]LeagueOutbox, error)
	FindCatalogPlayersByRating(ctx context.Context, arg FindCatalogPlayersByRatingParams) ([]CatalogCandidate, error)
	FindCatalogPlayersByRatingAndPosition(ctx context.Context, arg FindCatalogPlayersByRatingAndPositionParams) ([]CatalogCandidate, error)
	FindCatalogPlayersNearRating(ctx context.Context, arg FindCatalogPlayersNearRatingParams) ([]CatalogCandidate, error)
	GenerateSchedule(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	GetCompetitionLeague(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	GetLeague(ctx context.Context, id uuid.UUID) (League, error)
	GetLeaguePlayer(ctx context.Context, arg GetLeaguePlayerParams) (LeaguePlayerRow, error)
	GetLeaguePlayerForUpdate(ctx context.Context, arg GetLeaguePlayerForUpdateParams) (LeaguePlayerRow, error)
	GetMatchLeague(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	GetPack(ctx context.Context, id uuid.UUID) (Pack, error)
	GetSessionUser(ctx context.Context, token string) (uuid.UUID, error)
	GetTeam(ctx context.Context, id uuid.UUID) (Team, error)
	GetTeamForUpdate(ctx context.Context, id uuid.UUID) (Team, error)
	InsertFreeAgentBid(ctx context.Context, arg InsertFreeAgentBidParams) (FreeAgentBid, error)
	InsertLeaguePlayer(ctx context.Context, arg InsertLeaguePlayerParams) (LeaguePlayer, error)
	InsertMatchResult(ctx context.Context, arg InsertMatchResultParams) (json.RawMessage, error)
	InsertOutboxEvent(ctx context.Context, arg InsertOutboxEventParams) error
	InsertPackPurchase(ctx context.Context, arg InsertPackPurchaseParams) (PackPurchase, error)
	InsertPoolPlayers(ctx context.Context, arg InsertPoolPlayersParams) (int64, error)
	IsLeagueHost(ctx context.Context, arg IsLeagueHostParams) (bool, error)
	IsLeagueMember(ctx context.Context, arg IsLeagueMemberParams) (bool, error)
	IsPoolPlayer(ctx context.Context, arg IsPoolPlayerParams) (bool, error)
	ListActiveContractsByTeam(ctx context.Context, teamID uuid.UUID) ([]ListActiveContractsByTeamRow, error)
	ListFreeAgents(ctx context.Context, arg ListFreeAgentsParams) ([]LeaguePlayerRow, error)
	ListPackPurchasesByLeague(ctx context.Context, leagueID uuid.UUID) ([]PackPurchase, error)
	ListPackRatingOdds(ctx context.Context, packID uuid.UUID) ([]PackRatingOdd, error)
	ListPendingBidsByTeam(ctx context.Context, arg ListPendingBidsByTeamParams) ([]FreeAgentBid, error)
	ListTeamPlayers(ctx context.Context, teamID uuid.NullUUID) ([]LeaguePlayerRow, error)
	MarkOutboxSent(ctx context.Context, id uuid.UUID) error
	ResolveFreeAgency(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	SimulateMatchday(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	SimulateMatchdayCompetition(ctx context.Context, competitionID uuid.UUID) (json.RawMessage, error)
	StartDraft(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	UpsertContract(ctx context.Context, arg UpsertContractParams) (Contract, error)
	ValidateLeagueRegistration(ctx context.Context, leagueID uuid.UUID) (json.RawMessage, error)
	WriteAuditLog(ctx context.Context, arg WriteAuditLogParams) error
	WriteFinanceEntry(ctx context.Context, arg WriteFinanceEntryParams) error
}

var _ Querier = (*Queries)(nil)
