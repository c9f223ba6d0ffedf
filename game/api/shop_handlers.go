// game/api/shop_handlers.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/ordemrpg/go-services/shared/api"
	"github.com/ordemrpg/go-services/shared/auth"
	"github.com/ordemrpg/go-services/shared/models"
)

type BuyItemRequest struct {
	Quantity int `json:"quantity"`
}

// ListShopItemsHandler returns the shop catalog.
// GET /shop/items
func (gah *GameAPIHandlers) ListShopItemsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := gah.ShopService.ListItems(ctx)
	if err != nil {
		writeServiceError(w, err, "listing shop items")
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}

// CreateShopItemHandler adds a catalog item (masters only).
// POST /shop/items
func (gah *GameAPIHandlers) CreateShopItemHandler(w http.ResponseWriter, r *http.Request) {
	var item models.ShopItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}
	if item.Name == "" {
		api.WriteBadRequest(w, "Item name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := gah.ShopService.CreateItem(ctx, &item)
	if err != nil {
		writeServiceError(w, err, "creating shop item")
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

// UpdateShopItemHandler replaces a catalog item (masters only).
// PUT /shop/items/{id}
func (gah *GameAPIHandlers) UpdateShopItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	var item models.ShopItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}
	item.ID = id

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := gah.ShopService.UpdateItem(ctx, &item); err != nil {
		writeServiceError(w, err, "updating shop item")
		return
	}
	api.WriteJSON(w, http.StatusOK, item)
}

// DeleteShopItemHandler removes a catalog item (masters only).
// DELETE /shop/items/{id}
func (gah *GameAPIHandlers) DeleteShopItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := gah.ShopService.DeleteItem(ctx, id); err != nil {
		writeServiceError(w, err, "deleting shop item")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}

// BuyItemHandler purchases units of a catalog item for the acting user's
// profile. Quantity defaults to 1.
// POST /shop/items/{id}/buy
func (gah *GameAPIHandlers) BuyItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	// An empty body means quantity 1.
	var req BuyItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profile, err := gah.ProfileService.GetProfileByUser(ctx, userID)
	if err != nil {
		writeServiceError(w, err, "resolving buyer profile")
		return
	}

	updated, err := gah.ShopService.BuyItem(ctx, profile.ID, itemID, req.Quantity)
	if err != nil {
		writeServiceError(w, err, "buying item")
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
}

// ListAgentsHandler returns the recruitable agent catalog.
// GET /agents
func (gah *GameAPIHandlers) ListAgentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	agents, err := gah.ShopService.ListAgents(ctx)
	if err != nil {
		writeServiceError(w, err, "listing agents")
		return
	}
	api.WriteJSON(w, http.StatusOK, agents)
}

// CreateAgentHandler adds a recruitable agent (masters only).
// POST /agents
func (gah *GameAPIHandlers) CreateAgentHandler(w http.ResponseWriter, r *http.Request) {
	var agent models.Agent
	if err := json.NewDecoder(r.Body).Decode(&agent); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}
	if agent.Name == "" {
		api.WriteBadRequest(w, "Agent name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := gah.ShopService.CreateAgent(ctx, &agent)
	if err != nil {
		writeServiceError(w, err, "creating agent")
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

// DeleteAgentHandler removes a recruitable agent (masters only).
// DELETE /agents/{id}
func (gah *GameAPIHandlers) DeleteAgentHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := gah.ShopService.DeleteAgent(ctx, id); err != nil {
		writeServiceError(w, err, "deleting agent")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Agent deleted"})
}

// RecruitAgentHandler recruits an agent onto the acting user's roster, paying
// from their profile's gold.
// POST /agents/{id}/recruit
func (gah *GameAPIHandlers) RecruitAgentHandler(w http.ResponseWriter, r *http.Request) {
	agentID, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profile, err := gah.ProfileService.GetProfileByUser(ctx, userID)
	if err != nil {
		writeServiceError(w, err, "resolving recruiter profile")
		return
	}

	recruit, err := gah.ShopService.RecruitAgent(ctx, userID, agentID, profile.ID)
	if err != nil {
		writeServiceError(w, err, "recruiting agent")
		return
	}
	api.WriteJSON(w, http.StatusCreated, recruit)
}

// ListRecruitsHandler returns a user's recruited roster.
// GET /users/{userId}/agents
func (gah *GameAPIHandlers) ListRecruitsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathVar(w, r, "userId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	recruits, err := gah.ShopService.ListRecruits(ctx, userID)
	if err != nil {
		writeServiceError(w, err, "listing recruits")
		return
	}
	api.WriteJSON(w, http.StatusOK, recruits)
}
