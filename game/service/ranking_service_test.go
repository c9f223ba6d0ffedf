// game/service/ranking_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ordemrpg/go-services/shared/models"
	redisu "github.com/ordemrpg/go-services/shared/redis"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRankingStore struct {
	byKills   []models.RankingEntry
	byDeaths  []models.RankingEntry
	byLevel   []models.RankingEntry
	byClass   map[string][]models.RankingEntry
	byName    map[string]models.RankingEntry
	fetches   int
	lastLimit int64
}

func clip(entries []models.RankingEntry, limit int64) []models.RankingEntry {
	if int64(len(entries)) > limit {
		entries = entries[:limit]
	}
	return append([]models.RankingEntry(nil), entries...)
}

func (f *fakeRankingStore) TopByCreatureKills(ctx context.Context, limit int64) ([]models.RankingEntry, error) {
	f.fetches++
	f.lastLimit = limit
	return clip(f.byKills, limit), nil
}

func (f *fakeRankingStore) TopByDeaths(ctx context.Context, limit int64) ([]models.RankingEntry, error) {
	f.fetches++
	f.lastLimit = limit
	return clip(f.byDeaths, limit), nil
}

func (f *fakeRankingStore) TopByLevel(ctx context.Context, limit int64) ([]models.RankingEntry, error) {
	f.fetches++
	f.lastLimit = limit
	return clip(f.byLevel, limit), nil
}

func (f *fakeRankingStore) TopByClass(ctx context.Context, class string, limit int64) ([]models.RankingEntry, error) {
	f.fetches++
	return clip(f.byClass[class], limit), nil
}

func (f *fakeRankingStore) FindByUsername(ctx context.Context, username string) (*models.RankingEntry, error) {
	entry, ok := f.byName[username]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &entry, nil
}

type fakeRankingCache struct {
	boards map[string][]models.RankingEntry
	hits   int
	sets   int
}

func newFakeRankingCache() *fakeRankingCache {
	return &fakeRankingCache{boards: make(map[string][]models.RankingEntry)}
}

func (f *fakeRankingCache) GetBoard(ctx context.Context, key string) ([]models.RankingEntry, error) {
	board, ok := f.boards[key]
	if !ok {
		return nil, redisu.ErrRedisKeyNotFound
	}
	f.hits++
	return append([]models.RankingEntry(nil), board...), nil
}

func (f *fakeRankingCache) SetBoard(ctx context.Context, key string, entries []models.RankingEntry) error {
	f.boards[key] = append([]models.RankingEntry(nil), entries...)
	f.sets++
	return nil
}

func killsEntries() []models.RankingEntry {
	return []models.RankingEntry{
		{ProfileID: "p1", Username: "Alfa", CreatureKills: 90},
		{ProfileID: "p2", Username: "Bravo", CreatureKills: 70},
		{ProfileID: "p3", Username: "Charlie", CreatureKills: 40},
	}
}

func TestTopByCreatureKillsAssignsRanks(t *testing.T) {
	store := &fakeRankingStore{byKills: killsEntries()}
	svc := NewRankingService(store, nil, 10)

	entries, err := svc.TopByCreatureKills(context.Background())
	if err != nil {
		t.Fatalf("TopByCreatureKills returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("entry %d rank = %d, want %d", i, e.Rank, i+1)
		}
	}
	if entries[0].Username != "Alfa" || entries[2].Username != "Charlie" {
		t.Errorf("order = %q..%q, want Alfa..Charlie", entries[0].Username, entries[2].Username)
	}
}

func TestBoardSizeLimitsQuery(t *testing.T) {
	store := &fakeRankingStore{byKills: killsEntries()}
	svc := NewRankingService(store, nil, 2)

	entries, err := svc.TopByCreatureKills(context.Background())
	if err != nil {
		t.Fatalf("TopByCreatureKills returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("entries = %d, want board size 2", len(entries))
	}
	if store.lastLimit != 2 {
		t.Errorf("store queried with limit %d, want 2", store.lastLimit)
	}
}

func TestCachedBoardSkipsStoreOnHit(t *testing.T) {
	store := &fakeRankingStore{byKills: killsEntries()}
	cache := newFakeRankingCache()
	svc := NewRankingService(store, cache, 10)

	if _, err := svc.TopByCreatureKills(context.Background()); err != nil {
		t.Fatalf("first TopByCreatureKills returned error: %v", err)
	}
	if store.fetches != 1 || cache.sets != 1 {
		t.Fatalf("after miss: fetches=%d sets=%d, want 1/1", store.fetches, cache.sets)
	}

	entries, err := svc.TopByCreatureKills(context.Background())
	if err != nil {
		t.Fatalf("second TopByCreatureKills returned error: %v", err)
	}
	if store.fetches != 1 {
		t.Errorf("cache hit still fetched from store (fetches=%d)", store.fetches)
	}
	if cache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", cache.hits)
	}
	if len(entries) != 3 || entries[0].Rank != 1 {
		t.Errorf("cached board came back unranked: %+v", entries)
	}
}

func TestTopByClassIsUncached(t *testing.T) {
	store := &fakeRankingStore{byClass: map[string][]models.RankingEntry{
		"Combatente": {{ProfileID: "p9", Username: "Delta", CreatureKills: 12}},
	}}
	cache := newFakeRankingCache()
	svc := NewRankingService(store, cache, 10)

	entries, err := svc.TopByClass(context.Background(), "Combatente")
	if err != nil {
		t.Fatalf("TopByClass returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Rank != 1 {
		t.Errorf("class board = %+v, want single ranked entry", entries)
	}
	if cache.sets != 0 {
		t.Errorf("class board was cached (%d sets)", cache.sets)
	}
}

func TestSearchByUsername(t *testing.T) {
	store := &fakeRankingStore{byName: map[string]models.RankingEntry{
		"Echo": {ProfileID: "p5", Username: "Echo", Level: 4},
	}}
	svc := NewRankingService(store, nil, 10)

	entry, err := svc.SearchByUsername(context.Background(), "Echo")
	if err != nil {
		t.Fatalf("SearchByUsername returned error: %v", err)
	}
	if entry.Rank != 0 {
		t.Errorf("self-lookup rank = %d, want 0 (no board position)", entry.Rank)
	}

	if _, err := svc.SearchByUsername(context.Background(), "Nobody"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("missing username: error = %v, want ErrProfileNotFound", err)
	}
}

func TestRefreshPublicBoardsWarmsAllThree(t *testing.T) {
	store := &fakeRankingStore{
		byKills:  killsEntries(),
		byDeaths: []models.RankingEntry{{ProfileID: "p4", Username: "Delta", Deaths: 7}},
		byLevel:  []models.RankingEntry{{ProfileID: "p5", Username: "Echo", Level: 4}},
	}
	cache := newFakeRankingCache()
	svc := NewRankingService(store, cache, 10)

	svc.RefreshPublicBoards(context.Background())

	for _, key := range []string{BoardCreatureKills, BoardDeaths, BoardLevel} {
		board, ok := cache.boards[key]
		if !ok {
			t.Errorf("board %s not warmed", key)
			continue
		}
		if len(board) > 0 && board[0].Rank != 1 {
			t.Errorf("board %s cached unranked", key)
		}
	}
}
