// game/api/team_handlers.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ordemrpg/go-services/game/service"
	"github.com/ordemrpg/go-services/shared/api"
	"github.com/ordemrpg/go-services/shared/auth"
)

type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxMembers  int    `json:"maxMembers,omitempty"`
}

// displayName resolves the acting user's profile username for member rows,
// falling back to the user id when no profile exists.
func (gah *GameAPIHandlers) displayName(ctx context.Context, userID string) string {
	profile, err := gah.ProfileService.GetProfileByUser(ctx, userID)
	if err != nil {
		return userID
	}
	return profile.Username
}

// ListTeamsHandler returns every team.
// GET /teams
func (gah *GameAPIHandlers) ListTeamsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	teams, err := gah.TeamService.ListTeams(ctx)
	if err != nil {
		writeServiceError(w, err, "listing teams")
		return
	}
	api.WriteJSON(w, http.StatusOK, teams)
}

// GetTeamHandler retrieves a team by id.
// GET /teams/{id}
func (gah *GameAPIHandlers) GetTeamHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	team, err := gah.TeamService.GetTeam(ctx, id)
	if err != nil {
		writeServiceError(w, err, "getting team")
		return
	}
	api.WriteJSON(w, http.StatusOK, team)
}

// CreateTeamHandler founds a team with the acting user as leader.
// POST /teams
func (gah *GameAPIHandlers) CreateTeamHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		api.WriteBadRequest(w, "Team name is required")
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	team, err := gah.TeamService.CreateTeam(ctx, service.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		LeaderID:    userID,
		LeaderName:  gah.displayName(ctx, userID),
		MaxMembers:  req.MaxMembers,
	})
	if err != nil {
		writeServiceError(w, err, "creating team")
		return
	}
	api.WriteJSON(w, http.StatusCreated, team)
}

// JoinTeamHandler adds the acting user to a team as a regular member.
// POST /teams/{id}/join
func (gah *GameAPIHandlers) JoinTeamHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	team, err := gah.TeamService.JoinTeam(ctx, id, userID, gah.displayName(ctx, userID))
	if err != nil {
		writeServiceError(w, err, "joining team")
		return
	}
	api.WriteJSON(w, http.StatusOK, team)
}

// LeaveTeamHandler removes the acting user from a team.
// POST /teams/{id}/leave
func (gah *GameAPIHandlers) LeaveTeamHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := gah.TeamService.LeaveTeam(ctx, id, userID); err != nil {
		writeServiceError(w, err, "leaving team")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Left team"})
}

// DeleteTeamHandler deletes a team (leader or master).
// DELETE /teams/{id}
func (gah *GameAPIHandlers) DeleteTeamHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathVar(w, r, "id")
	if !ok {
		return
	}

	userID, _ := auth.UserID(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := gah.TeamService.DeleteTeam(ctx, id, userID, auth.IsMaster(r.Context())); err != nil {
		writeServiceError(w, err, "deleting team")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Team deleted"})
}

// CurrentTeamHandler returns the team a user belongs to. A user on no team
// gets a 200 with a null body rather than an error, so clients can render the
// empty state without special-casing.
// GET /users/{userId}/team
func (gah *GameAPIHandlers) CurrentTeamHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathVar(w, r, "userId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	team, err := gah.TeamService.CurrentTeam(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNoTeam) {
			api.WriteJSON(w, http.StatusOK, nil)
			return
		}
		writeServiceError(w, err, "getting current team")
		return
	}
	api.WriteJSON(w, http.StatusOK, team)
}
