// game/api/profile_handlers.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ordemrpg/go-services/game/service"
	"github.com/ordemrpg/go-services/shared/api"
	"github.com/ordemrpg/go-services/shared/auth"
	"github.com/ordemrpg/go-services/shared/models"
)

// --- Request DTOs ---

type CreateProfileRequest struct {
	Username    string            `json:"username"`
	Class       string            `json:"class"`
	Attributes  models.Attributes `json:"attributes"`
	Faction     string            `json:"faction,omitempty"`
	Description string            `json:"description,omitempty"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	Gold        int               `json:"gold,omitempty"`
}

type UpdateProfileRequest struct {
	Username    *string         `json:"username,omitempty"`
	Description *string         `json:"description,omitempty"`
	Faction     *string         `json:"faction,omitempty"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Skills      *[]models.Skill `json:"skills,omitempty"`
	Health      *int            `json:"health,omitempty"`
	Mana        *int            `json:"mana,omitempty"`

	Level         *int               `json:"level,omitempty"`
	Experience    *int               `json:"experience,omitempty"`
	Attributes    *models.Attributes `json:"attributes,omitempty"`
	CreatureKills *int               `json:"creatureKills,omitempty"`
	PlayerKills   *int               `json:"playerKills,omitempty"`
	Deaths        *int               `json:"deaths,omitempty"`
	Gold          *int               `json:"gold,omitempty"`
	IsDeceased    *bool              `json:"isDeceased,omitempty"`
	CauseOfDeath  *string            `json:"causeOfDeath,omitempty"`
}

func (req *UpdateProfileRequest) toUpdate() *service.ProfileUpdate {
	return &service.ProfileUpdate{
		Username:      req.Username,
		Description:   req.Description,
		Faction:       req.Faction,
		ImageURL:      req.ImageURL,
		Skills:        req.Skills,
		Health:        req.Health,
		Mana:          req.Mana,
		Level:         req.Level,
		Experience:    req.Experience,
		Attributes:    req.Attributes,
		CreatureKills: req.CreatureKills,
		PlayerKills:   req.PlayerKills,
		Deaths:        req.Deaths,
		Gold:          req.Gold,
		IsDeceased:    req.IsDeceased,
		CauseOfDeath:  req.CauseOfDeath,
	}
}

type KillRequest struct {
	Experience int `json:"experience"`
	Gold       int `json:"gold,omitempty"`
}

type GrantRewardRequest struct {
	Experience int `json:"experience"`
	Gold       int `json:"gold"`
}

// --- Handler Methods ---

// CreateProfileHandler creates the acting user's profile.
// POST /profiles
func (gah *GameAPIHandlers) CreateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Username == "" {
		api.WriteBadRequest(w, "Username is required")
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := gah.ProfileService.CreateProfile(ctx, service.CreateProfileInput{
		UserID:      userID,
		Username:    req.Username,
		Class:       req.Class,
		Attributes:  req.Attributes,
		Faction:     req.Faction,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Gold:        req.Gold,
	})
	if err != nil {
		writeServiceError(w, err, "creating profile")
		return
	}

	api.WriteJSON(w, http.StatusCreated, profile)
}

// GetProfileHandler retrieves a profile by id.
// GET /profiles/{id}
func (gah *GameAPIHandlers) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := gah.ProfileService.GetProfile(ctx, id)
	if err != nil {
		writeServiceError(w, err, "getting profile")
		return
	}
	api.WriteJSON(w, http.StatusOK, profile)
}

// GetProfileByUserHandler retrieves the profile owned by a user.
// GET /users/{userId}/profile
func (gah *GameAPIHandlers) GetProfileByUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathVar(w, r, "userId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := gah.ProfileService.GetProfileByUser(ctx, userID)
	if err != nil {
		writeServiceError(w, err, "getting profile by user")
		return
	}
	api.WriteJSON(w, http.StatusOK, profile)
}

// UpdateProfileHandler applies a partial profile edit. Privileged fields are
// rejected for non-masters inside the service.
// PUT /profiles/{id}
func (gah *GameAPIHandlers) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := gah.ProfileService.UpdateProfile(ctx, id, userID, auth.IsMaster(r.Context()), req.toUpdate())
	if err != nil {
		writeServiceError(w, err, "updating profile")
		return
	}
	api.WriteJSON(w, http.StatusOK, profile)
}

// DeleteProfileHandler removes a profile (owner or master).
// DELETE /profiles/{id}
func (gah *GameAPIHandlers) DeleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := gah.ProfileService.DeleteProfile(ctx, id, userID, auth.IsMaster(r.Context())); err != nil {
		writeServiceError(w, err, "deleting profile")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Profile deleted"})
}

// CreatureKillHandler records a creature kill and its reward.
// POST /profiles/{id}/kills/creature
func (gah *GameAPIHandlers) CreatureKillHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	var req KillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := gah.ProfileService.RegisterCreatureKill(ctx, id, req.Experience, req.Gold)
	if err != nil {
		writeServiceError(w, err, "registering creature kill")
		return
	}
	api.WriteJSON(w, http.StatusOK, profile)
}

// PlayerKillHandler records a player kill.
// POST /profiles/{id}/kills/player
func (gah *GameAPIHandlers) PlayerKillHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	var req KillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := gah.ProfileService.RegisterPlayerKill(ctx, id, req.Experience)
	if err != nil {
		writeServiceError(w, err, "registering player kill")
		return
	}
	api.WriteJSON(w, http.StatusOK, profile)
}

// DeathHandler records a death.
// POST /profiles/{id}/deaths
func (gah *GameAPIHandlers) DeathHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := gah.ProfileService.RegisterDeath(ctx, id)
	if err != nil {
		writeServiceError(w, err, "registering death")
		return
	}
	api.WriteJSON(w, http.StatusOK, profile)
}

// GrantRewardHandler lets a master grant raw experience and gold.
// POST /profiles/{id}/rewards
func (gah *GameAPIHandlers) GrantRewardHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	var req GrantRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, err := gah.ProfileService.GrantExperience(ctx, id, req.Experience, req.Gold)
	if err != nil {
		writeServiceError(w, err, "granting reward")
		return
	}
	api.WriteJSON(w, http.StatusOK, profile)
}
