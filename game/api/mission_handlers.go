// game/api/mission_handlers.go
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

type CreateMissionRequest struct {
	Title        string                      `json:"title"`
	Description  string                      `json:"description,omitempty"`
	Difficulty   models.MissionDifficulty    `json:"difficulty"`
	Reward       models.MissionReward        `json:"reward"`
	Requirements *models.MissionRequirements `json:"requirements,omitempty"`
}

type UpdateMissionRequest struct {
	Title        string                      `json:"title"`
	Description  string                      `json:"description,omitempty"`
	Difficulty   models.MissionDifficulty    `json:"difficulty"`
	Status       models.MissionStatus        `json:"status"`
	Reward       models.MissionReward        `json:"reward"`
	Requirements *models.MissionRequirements `json:"requirements,omitempty"`
}

// ListMissionsHandler returns the browsable (available) missions.
// GET /missions
func (gah *GameAPIHandlers) ListMissionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	missions, err := gah.MissionService.ListAvailable(ctx)
	if err != nil {
		writeServiceError(w, err, "listing missions")
		return
	}
	api.WriteJSON(w, http.StatusOK, missions)
}

// GetMissionHandler retrieves a mission by id.
// GET /missions/{id}
func (gah *GameAPIHandlers) GetMissionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	mission, err := gah.MissionService.GetMission(ctx, id)
	if err != nil {
		writeServiceError(w, err, "getting mission")
		return
	}
	api.WriteJSON(w, http.StatusOK, mission)
}

// CreateMissionHandler creates a mission (masters only).
// POST /missions
func (gah *GameAPIHandlers) CreateMissionHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Title == "" {
		api.WriteBadRequest(w, "Mission title is required")
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// The creator's display name is best-effort; masters without a profile
	// still get attributed by user id.
	createdByName := ""
	if profile, err := gah.ProfileService.GetProfileByUser(ctx, userID); err == nil {
		createdByName = profile.Username
	}

	mission, err := gah.MissionService.CreateMission(ctx, service.CreateMissionInput{
		Title:         req.Title,
		Description:   req.Description,
		Difficulty:    req.Difficulty,
		Reward:        req.Reward,
		Requirements:  req.Requirements,
		CreatedBy:     userID,
		CreatedByName: createdByName,
	})
	if err != nil {
		writeServiceError(w, err, "creating mission")
		return
	}
	api.WriteJSON(w, http.StatusCreated, mission)
}

// UpdateMissionHandler edits a mission (creator or master).
// PUT /missions/{id}
func (gah *GameAPIHandlers) UpdateMissionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	var req UpdateMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	mission := &models.Mission{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Difficulty:   req.Difficulty,
		Status:       req.Status,
		Reward:       req.Reward,
		Requirements: req.Requirements,
	}
	if err := gah.MissionService.UpdateMission(ctx, mission, userID, auth.IsMaster(r.Context())); err != nil {
		writeServiceError(w, err, "updating mission")
		return
	}
	api.WriteJSON(w, http.StatusOK, mission)
}

// DeleteMissionHandler removes a mission (creator or master).
// DELETE /missions/{id}
func (gah *GameAPIHandlers) DeleteMissionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := gah.MissionService.DeleteMission(ctx, id, userID, auth.IsMaster(r.Context())); err != nil {
		writeServiceError(w, err, "deleting mission")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Mission deleted"})
}

// AcceptMissionHandler puts the acting user's mission into the accepted state.
// POST /missions/{id}/accept
func (gah *GameAPIHandlers) AcceptMissionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := gah.MissionService.Accept(ctx, id, userID); err != nil {
		writeServiceError(w, err, "accepting mission")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Mission accepted"})
}

// CompleteMissionHandler completes the acting user's accepted mission and
// grants its reward.
// POST /missions/{id}/complete
func (gah *GameAPIHandlers) CompleteMissionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := gah.MissionService.Complete(ctx, id, userID); err != nil {
		writeServiceError(w, err, "completing mission")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Mission completed"})
}

// ListAcceptedMissionsHandler returns the missions a user has accepted.
// GET /users/{userId}/missions
func (gah *GameAPIHandlers) ListAcceptedMissionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathVar(w, r, "userId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	missions, err := gah.MissionService.ListAcceptedBy(ctx, userID)
	if err != nil {
		writeServiceError(w, err, "listing accepted missions")
		return
	}
	api.WriteJSON(w, http.StatusOK, missions)
}
