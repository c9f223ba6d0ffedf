// shared/service/gameclient.go
package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ordemrpg/go-services/shared/api"
	"github.com/ordemrpg/go-services/shared/models"
)

// GameClient is a typed client for the game service API, used by sibling
// services and tooling. Identity travels on the underlying api.Client; call
// As to act on behalf of a user.
type GameClient struct {
	client *api.Client
}

// NewGameClient creates a game service client against the given base URL.
// Pass nil to use the default HTTP client.
func NewGameClient(baseURL string, httpClient *http.Client) *GameClient {
	return &GameClient{client: api.NewClient(baseURL, httpClient)}
}

// As returns a copy of the client acting as the given user.
func (gc *GameClient) As(userID, email string) *GameClient {
	return &GameClient{client: gc.client.WithIdentity(userID, email)}
}

// GetProfile fetches a profile by id.
func (gc *GameClient) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	var profile models.Profile
	if err := gc.client.Get(ctx, fmt.Sprintf("/profiles/%s", profileID), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfileByUser fetches the profile owned by a user.
func (gc *GameClient) GetProfileByUser(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := gc.client.Get(ctx, fmt.Sprintf("/users/%s/profile", userID), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// BuyItem purchases quantity units of a shop item for the acting user and
// returns their updated profile.
func (gc *GameClient) BuyItem(ctx context.Context, itemID string, quantity int) (*models.Profile, error) {
	body := map[string]int{"quantity": quantity}
	var profile models.Profile
	if err := gc.client.Post(ctx, fmt.Sprintf("/shop/items/%s/buy", itemID), body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListShopItems fetches the shop catalog.
func (gc *GameClient) ListShopItems(ctx context.Context) ([]models.ShopItem, error) {
	var items []models.ShopItem
	if err := gc.client.Get(ctx, "/shop/items", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// RecruitAgent recruits an agent onto the acting user's roster.
func (gc *GameClient) RecruitAgent(ctx context.Context, agentID string) (*models.RecruitedAgent, error) {
	var recruit models.RecruitedAgent
	if err := gc.client.Post(ctx, fmt.Sprintf("/agents/%s/recruit", agentID), nil, &recruit); err != nil {
		return nil, err
	}
	return &recruit, nil
}

// AcceptMission accepts a mission for the acting user.
func (gc *GameClient) AcceptMission(ctx context.Context, missionID string) error {
	return gc.client.Post(ctx, fmt.Sprintf("/missions/%s/accept", missionID), nil, nil)
}

// CompleteMission completes a mission for the acting user.
func (gc *GameClient) CompleteMission(ctx context.Context, missionID string) error {
	return gc.client.Post(ctx, fmt.Sprintf("/missions/%s/complete", missionID), nil, nil)
}

// ListAvailableMissions fetches the browsable missions.
func (gc *GameClient) ListAvailableMissions(ctx context.Context) ([]models.Mission, error) {
	var missions []models.Mission
	if err := gc.client.Get(ctx, "/missions", &missions); err != nil {
		return nil, err
	}
	return missions, nil
}

// CurrentTeam fetches the team a user belongs to. A user on no team yields a
// nil team and no error.
func (gc *GameClient) CurrentTeam(ctx context.Context, userID string) (*models.Team, error) {
	var team *models.Team
	if err := gc.client.Get(ctx, fmt.Sprintf("/users/%s/team", userID), &team); err != nil {
		return nil, err
	}
	return team, nil
}

// Leaderboard fetches one of the public boards ("kills", "deaths", "level").
func (gc *GameClient) Leaderboard(ctx context.Context, board string) ([]models.RankingEntry, error) {
	var entries []models.RankingEntry
	if err := gc.client.Get(ctx, fmt.Sprintf("/rankings/%s", board), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SearchRanking looks up a single player's ranking entry by username.
func (gc *GameClient) SearchRanking(ctx context.Context, username string) (*models.RankingEntry, error) {
	var entry models.RankingEntry
	path := fmt.Sprintf("/rankings/search?username=%s", url.QueryEscape(username))
	if err := gc.client.Get(ctx, path, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
