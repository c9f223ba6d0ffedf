// game/api/ranking_handlers.go
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ordemrpg/go-services/shared/api"
)

// RankingByKillsHandler returns the public creature-kill leaderboard.
// GET /rankings/kills
func (gah *GameAPIHandlers) RankingByKillsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entries, err := gah.RankingService.TopByCreatureKills(ctx)
	if err != nil {
		writeServiceError(w, err, "querying kills leaderboard")
		return
	}
	api.WriteJSON(w, http.StatusOK, entries)
}

// RankingByDeathsHandler returns the public death leaderboard.
// GET /rankings/deaths
func (gah *GameAPIHandlers) RankingByDeathsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entries, err := gah.RankingService.TopByDeaths(ctx)
	if err != nil {
		writeServiceError(w, err, "querying deaths leaderboard")
		return
	}
	api.WriteJSON(w, http.StatusOK, entries)
}

// RankingByLevelHandler returns the public level leaderboard.
// GET /rankings/level
func (gah *GameAPIHandlers) RankingByLevelHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entries, err := gah.RankingService.TopByLevel(ctx)
	if err != nil {
		writeServiceError(w, err, "querying level leaderboard")
		return
	}
	api.WriteJSON(w, http.StatusOK, entries)
}

// RankingByClassHandler returns the creature-kill board for one class.
// GET /rankings/class/{class}
func (gah *GameAPIHandlers) RankingByClassHandler(w http.ResponseWriter, r *http.Request) {
	class, ok := pathVar(w, r, "class")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entries, err := gah.RankingService.TopByClass(ctx, class)
	if err != nil {
		writeServiceError(w, err, "querying class leaderboard")
		return
	}
	api.WriteJSON(w, http.StatusOK, entries)
}

// RankingSearchHandler is the self-lookup path for players below the public
// cutoff. The entry comes back with rank 0 since it holds no board position.
// GET /rankings/search?username=...
func (gah *GameAPIHandlers) RankingSearchHandler(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		api.WriteBadRequest(w, "username query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entry, err := gah.RankingService.SearchByUsername(ctx, username)
	if err != nil {
		writeServiceError(w, err, "searching ranking")
		return
	}
	api.WriteJSON(w, http.StatusOK, entry)
}
