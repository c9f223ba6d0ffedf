// game/api/character_handlers.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ordemrpg/go-services/game/service"
	"github.com/ordemrpg/go-services/shared/api"
	"github.com/ordemrpg/go-services/shared/auth"
	"github.com/ordemrpg/go-services/shared/models"
)

// CreateCharacterRequest creates a master-maintained character sheet. The
// optional userId binds the sheet to a player; unowned sheets (NPCs) get a
// synthetic owner id so the one-sheet-per-owner index still holds.
type CreateCharacterRequest struct {
	UserID      string            `json:"userId,omitempty"`
	Username    string            `json:"username"`
	Class       string            `json:"class"`
	Attributes  models.Attributes `json:"attributes"`
	Faction     string            `json:"faction,omitempty"`
	Description string            `json:"description,omitempty"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	Gold        int               `json:"gold,omitempty"`
}

// CreateCharacterHandler creates a character sheet (masters only).
// POST /characters
func (gah *GameAPIHandlers) CreateCharacterHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Username == "" {
		api.WriteBadRequest(w, "Username is required")
		return
	}
	if req.UserID == "" {
		req.UserID = uuid.New().String()
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	character, err := gah.CharacterService.CreateProfile(ctx, service.CreateProfileInput{
		UserID:      req.UserID,
		Username:    req.Username,
		Class:       req.Class,
		Attributes:  req.Attributes,
		Faction:     req.Faction,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Gold:        req.Gold,
	})
	if err != nil {
		writeServiceError(w, err, "creating character")
		return
	}
	api.WriteJSON(w, http.StatusCreated, character)
}

// GetCharacterHandler retrieves a character sheet by id.
// GET /characters/{id}
func (gah *GameAPIHandlers) GetCharacterHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	character, err := gah.CharacterService.GetProfile(ctx, id)
	if err != nil {
		writeServiceError(w, err, "getting character")
		return
	}
	api.WriteJSON(w, http.StatusOK, character)
}

// UpdateCharacterHandler applies a partial character edit (masters only, so
// every field is in reach).
// PUT /characters/{id}
func (gah *GameAPIHandlers) UpdateCharacterHandler(w http.ResponseWriter, r *http.Request) {
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

	character, err := gah.CharacterService.UpdateProfile(ctx, id, userID, true, req.toUpdate())
	if err != nil {
		writeServiceError(w, err, "updating character")
		return
	}
	api.WriteJSON(w, http.StatusOK, character)
}

// DeleteCharacterHandler removes a character sheet (masters only).
// DELETE /characters/{id}
func (gah *GameAPIHandlers) DeleteCharacterHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := gah.CharacterService.DeleteProfile(ctx, id, userID, true); err != nil {
		writeServiceError(w, err, "deleting character")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Character deleted"})
}
