// game/store/leaderboard_cache.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ordemrpg/go-services/shared/models"
	redisu "github.com/ordemrpg/go-services/shared/redis"
	"github.com/redis/go-redis/v9"
)

// LeaderboardCache holds ranked boards in Redis so leaderboard pages don't
// hit MongoDB on every view. Entries are stored ranked, as JSON, under TTL'd
// keys; the background refresher re-warms them before they expire.
type LeaderboardCache struct {
	redisClient *redis.ClusterClient
	ttl         time.Duration
}

// NewLeaderboardCache creates a new LeaderboardCache instance.
func NewLeaderboardCache(redisClient *redis.ClusterClient, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// GetBoard returns the cached board for a key.
// Returns redisu.ErrRedisKeyNotFound on a miss.
func (lc *LeaderboardCache) GetBoard(ctx context.Context, key string) ([]models.RankingEntry, error) {
	redisKey := fmt.Sprintf(redisu.LeaderboardKeyPrefix, key)

	payload, err := lc.redisClient.Get(ctx, redisKey).Result()
	if err == redis.Nil {
		return nil, redisu.ErrRedisKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached leaderboard %s: %w", key, err)
	}

	var entries []models.RankingEntry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cached leaderboard %s: %w", key, err)
	}
	return entries, nil
}

// SetBoard stores a ranked board under the cache TTL.
func (lc *LeaderboardCache) SetBoard(ctx context.Context, key string, entries []models.RankingEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode leaderboard %s for caching: %w", key, err)
	}

	redisKey := fmt.Sprintf(redisu.LeaderboardKeyPrefix, key)
	if err := lc.redisClient.Set(ctx, redisKey, payload, lc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache leaderboard %s: %w", key, err)
	}
	return nil
}
