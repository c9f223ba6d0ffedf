// game/service/ranking_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ordemrpg/go-services/shared/models"
	redisu "github.com/ordemrpg/go-services/shared/redis"
	"go.mongodb.org/mongo-driver/mongo"
)

// Board kinds used as cache keys and refresh targets.
const (
	BoardCreatureKills = "kills"
	BoardDeaths        = "deaths"
	BoardLevel         = "level"
)

// RankingStore is the read-only projection contract over the profiles
// collection. Entries come back sorted but unranked.
type RankingStore interface {
	TopByCreatureKills(ctx context.Context, limit int64) ([]models.RankingEntry, error)
	TopByDeaths(ctx context.Context, limit int64) ([]models.RankingEntry, error)
	TopByLevel(ctx context.Context, limit int64) ([]models.RankingEntry, error)
	TopByClass(ctx context.Context, class string, limit int64) ([]models.RankingEntry, error)
	FindByUsername(ctx context.Context, username string) (*models.RankingEntry, error)
}

// RankingCache caches ranked boards. Lookups return
// redisu.ErrRedisKeyNotFound on a miss.
type RankingCache interface {
	GetBoard(ctx context.Context, key string) ([]models.RankingEntry, error)
	SetBoard(ctx context.Context, key string, entries []models.RankingEntry) error
}

// RankingService produces the leaderboard views. Every query returns the same
// uniform projection with Rank assigned by result-set position; ties break by
// result order only.
type RankingService struct {
	rankingStore RankingStore
	cache        RankingCache
	boardSize    int64
}

// NewRankingService creates a new RankingService instance. cache may be nil,
// in which case every query goes straight to the store.
func NewRankingService(rs RankingStore, cache RankingCache, boardSize int64) *RankingService {
	if boardSize <= 0 {
		boardSize = 10
	}
	return &RankingService{
		rankingStore: rs,
		cache:        cache,
		boardSize:    boardSize,
	}
}

// BoardSize returns the public top-N cutoff.
func (rs *RankingService) BoardSize() int64 {
	return rs.boardSize
}

// rank assigns 1-based positions in place and returns the slice.
func rank(entries []models.RankingEntry) []models.RankingEntry {
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func (rs *RankingService) cachedBoard(ctx context.Context, key string, fetch func(context.Context, int64) ([]models.RankingEntry, error)) ([]models.RankingEntry, error) {
	if rs.cache != nil {
		cached, err := rs.cache.GetBoard(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redisu.ErrRedisKeyNotFound) {
			log.Printf("WARN: Leaderboard cache read failed for %s: %v. Falling back to store.", key, err)
		}
	}

	entries, err := fetch(ctx, rs.boardSize)
	if err != nil {
		return nil, fmt.Errorf("service failed to query leaderboard %s: %w", key, err)
	}
	ranked := rank(entries)

	if rs.cache != nil {
		if err := rs.cache.SetBoard(ctx, key, ranked); err != nil {
			log.Printf("WARN: Leaderboard cache write failed for %s: %v", key, err)
		}
	}
	return ranked, nil
}

// TopByCreatureKills returns the public creature-kill board.
func (rs *RankingService) TopByCreatureKills(ctx context.Context) ([]models.RankingEntry, error) {
	return rs.cachedBoard(ctx, BoardCreatureKills, rs.rankingStore.TopByCreatureKills)
}

// TopByDeaths returns the public death board.
func (rs *RankingService) TopByDeaths(ctx context.Context) ([]models.RankingEntry, error) {
	return rs.cachedBoard(ctx, BoardDeaths, rs.rankingStore.TopByDeaths)
}

// TopByLevel returns the public level board.
func (rs *RankingService) TopByLevel(ctx context.Context) ([]models.RankingEntry, error) {
	return rs.cachedBoard(ctx, BoardLevel, rs.rankingStore.TopByLevel)
}

// TopByClass returns the creature-kill board filtered to one class. Class
// boards are not cached; they are long-tail queries.
func (rs *RankingService) TopByClass(ctx context.Context, class string) ([]models.RankingEntry, error) {
	entries, err := rs.rankingStore.TopByClass(ctx, class, rs.boardSize)
	if err != nil {
		return nil, fmt.Errorf("service failed to query class leaderboard %s: %w", class, err)
	}
	return rank(entries), nil
}

// SearchByUsername is the self-lookup path for players below the public
// cutoff. The entry comes back unranked (Rank 0) since it has no board
// position.
func (rs *RankingService) SearchByUsername(ctx context.Context, username string) (*models.RankingEntry, error) {
	entry, err := rs.rankingStore.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("service failed to search ranking by username %s: %w", username, err)
	}
	return entry, nil
}

// RefreshPublicBoards re-warms the cached boards from the store. Called by
// the background refresher; individual board failures are logged and the
// remaining boards still refresh.
func (rs *RankingService) RefreshPublicBoards(ctx context.Context) {
	if rs.cache == nil {
		return
	}
	boards := []struct {
		key   string
		fetch func(context.Context, int64) ([]models.RankingEntry, error)
	}{
		{BoardCreatureKills, rs.rankingStore.TopByCreatureKills},
		{BoardDeaths, rs.rankingStore.TopByDeaths},
		{BoardLevel, rs.rankingStore.TopByLevel},
	}

	for _, board := range boards {
		entries, err := board.fetch(ctx, rs.boardSize)
		if err != nil {
			log.Printf("ERROR: Failed to refresh leaderboard %s: %v", board.key, err)
			continue
		}
		if err := rs.cache.SetBoard(ctx, board.key, rank(entries)); err != nil {
			log.Printf("ERROR: Failed to cache refreshed leaderboard %s: %v", board.key, err)
		}
	}
}
