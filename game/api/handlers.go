// game/api/handlers.go
package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ordemrpg/go-services/game/service"
	"github.com/ordemrpg/go-services/shared/api"
	"github.com/ordemrpg/go-services/shared/auth"
)

// GameAPIHandlers holds references to the services that handle business logic.
type GameAPIHandlers struct {
	ProfileService   *service.ProfileService
	CharacterService *service.ProfileService
	ShopService      *service.ShopService
	MissionService   *service.MissionService
	TeamService      *service.TeamService
	RankingService   *service.RankingService
}

// NewGameAPIHandlers is the constructor for the API handlers. The character
// service is a second ProfileService mounted on the master sheets collection.
func NewGameAPIHandlers(
	profileService *service.ProfileService,
	characterService *service.ProfileService,
	shopService *service.ShopService,
	missionService *service.MissionService,
	teamService *service.TeamService,
	rankingService *service.RankingService,
) *GameAPIHandlers {
	return &GameAPIHandlers{
		ProfileService:   profileService,
		CharacterService: characterService,
		ShopService:      shopService,
		MissionService:   missionService,
		TeamService:      teamService,
		RankingService:   rankingService,
	}
}

// writeServiceError maps domain errors onto HTTP statuses. Anything not in
// the domain list is logged and reported as an internal error.
func writeServiceError(w http.ResponseWriter, err error, logContext string) {
	if ife, ok := service.AsInsufficientFunds(err); ok {
		api.WriteError(w, http.StatusPaymentRequired, fmt.Sprintf("Insufficient funds: %d gold short", ife.Shortfall))
		return
	}

	switch {
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrAgentNotFound),
		errors.Is(err, service.ErrMissionNotFound),
		errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrNoTeam):
		api.WriteNotFound(w, err.Error())
	case errors.Is(err, service.ErrProfileAlreadyExists),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrAlreadyAccepted),
		errors.Is(err, service.ErrNotAccepted),
		errors.Is(err, service.ErrAlreadyCompleted),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrTeamFull):
		api.WriteConflict(w, err.Error())
	case errors.Is(err, service.ErrLeaderCannotLeave),
		errors.Is(err, service.ErrNotLeader),
		errors.Is(err, service.ErrPermissionDenied):
		api.WriteForbidden(w, err.Error())
	default:
		log.Printf("ERROR: %s: %v", logContext, err)
		api.WriteInternalServerError(w, "Internal server error")
	}
}

// pathVar pulls a required mux path variable, writing a 400 when absent.
func pathVar(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := mux.Vars(r)[name]
	if value == "" {
		api.WriteBadRequest(w, fmt.Sprintf("%s is required", name))
		return "", false
	}
	return value, true
}

// RegisterRoutes registers all API endpoints for the game service.
func (gah *GameAPIHandlers) RegisterRoutes(router *mux.Router) {
	// Profiles
	router.HandleFunc("/profiles", auth.RequireUser(gah.CreateProfileHandler)).Methods("POST")
	router.HandleFunc("/profiles/{id}", gah.GetProfileHandler).Methods("GET")
	router.HandleFunc("/profiles/{id}", auth.RequireUser(gah.UpdateProfileHandler)).Methods("PUT")
	router.HandleFunc("/profiles/{id}", auth.RequireUser(gah.DeleteProfileHandler)).Methods("DELETE")
	router.HandleFunc("/profiles/{id}/kills/creature", auth.RequireUser(gah.CreatureKillHandler)).Methods("POST")
	router.HandleFunc("/profiles/{id}/kills/player", auth.RequireUser(gah.PlayerKillHandler)).Methods("POST")
	router.HandleFunc("/profiles/{id}/deaths", auth.RequireUser(gah.DeathHandler)).Methods("POST")
	router.HandleFunc("/profiles/{id}/rewards", auth.RequireMaster(gah.GrantRewardHandler)).Methods("POST")
	router.HandleFunc("/users/{userId}/profile", gah.GetProfileByUserHandler).Methods("GET")

	// Master character sheets
	router.HandleFunc("/characters", auth.RequireMaster(gah.CreateCharacterHandler)).Methods("POST")
	router.HandleFunc("/characters/{id}", gah.GetCharacterHandler).Methods("GET")
	router.HandleFunc("/characters/{id}", auth.RequireMaster(gah.UpdateCharacterHandler)).Methods("PUT")
	router.HandleFunc("/characters/{id}", auth.RequireMaster(gah.DeleteCharacterHandler)).Methods("DELETE")

	// Shop
	router.HandleFunc("/shop/items", gah.ListShopItemsHandler).Methods("GET")
	router.HandleFunc("/shop/items", auth.RequireMaster(gah.CreateShopItemHandler)).Methods("POST")
	router.HandleFunc("/shop/items/{id}", auth.RequireMaster(gah.UpdateShopItemHandler)).Methods("PUT")
	router.HandleFunc("/shop/items/{id}", auth.RequireMaster(gah.DeleteShopItemHandler)).Methods("DELETE")
	router.HandleFunc("/shop/items/{id}/buy", auth.RequireUser(gah.BuyItemHandler)).Methods("POST")

	// Agents
	router.HandleFunc("/agents", gah.ListAgentsHandler).Methods("GET")
	router.HandleFunc("/agents", auth.RequireMaster(gah.CreateAgentHandler)).Methods("POST")
	router.HandleFunc("/agents/{id}", auth.RequireMaster(gah.DeleteAgentHandler)).Methods("DELETE")
	router.HandleFunc("/agents/{id}/recruit", auth.RequireUser(gah.RecruitAgentHandler)).Methods("POST")
	router.HandleFunc("/users/{userId}/agents", gah.ListRecruitsHandler).Methods("GET")

	// Missions
	router.HandleFunc("/missions", gah.ListMissionsHandler).Methods("GET")
	router.HandleFunc("/missions", auth.RequireMaster(gah.CreateMissionHandler)).Methods("POST")
	router.HandleFunc("/missions/{id}", gah.GetMissionHandler).Methods("GET")
	router.HandleFunc("/missions/{id}", auth.RequireUser(gah.UpdateMissionHandler)).Methods("PUT")
	router.HandleFunc("/missions/{id}", auth.RequireUser(gah.DeleteMissionHandler)).Methods("DELETE")
	router.HandleFunc("/missions/{id}/accept", auth.RequireUser(gah.AcceptMissionHandler)).Methods("POST")
	router.HandleFunc("/missions/{id}/complete", auth.RequireUser(gah.CompleteMissionHandler)).Methods("POST")
	router.HandleFunc("/users/{userId}/missions", gah.ListAcceptedMissionsHandler).Methods("GET")

	// Teams
	router.HandleFunc("/teams", gah.ListTeamsHandler).Methods("GET")
	router.HandleFunc("/teams", auth.RequireUser(gah.CreateTeamHandler)).Methods("POST")
	router.HandleFunc("/teams/{id}", gah.GetTeamHandler).Methods("GET")
	router.HandleFunc("/teams/{id}", auth.RequireUser(gah.DeleteTeamHandler)).Methods("DELETE")
	router.HandleFunc("/teams/{id}/join", auth.RequireUser(gah.JoinTeamHandler)).Methods("POST")
	router.HandleFunc("/teams/{id}/leave", auth.RequireUser(gah.LeaveTeamHandler)).Methods("POST")
	router.HandleFunc("/users/{userId}/team", gah.CurrentTeamHandler).Methods("GET")

	// Rankings
	router.HandleFunc("/rankings/kills", gah.RankingByKillsHandler).Methods("GET")
	router.HandleFunc("/rankings/deaths", gah.RankingByDeathsHandler).Methods("GET")
	router.HandleFunc("/rankings/level", gah.RankingByLevelHandler).Methods("GET")
	router.HandleFunc("/rankings/class/{class}", gah.RankingByClassHandler).Methods("GET")
	router.HandleFunc("/rankings/search", gah.RankingSearchHandler).Methods("GET")
}
