// game/store/ranking_store.go
package store

import (
	"context"
	"fmt"

	"github.com/ordemrpg/go-services/shared/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// rankingProjection keeps leaderboard reads to the lightweight fields the
// projection type carries.
var rankingProjection = bson.D{
	{Key: "username", Value: 1},
	{Key: "class", Value: 1},
	{Key: "level", Value: 1},
	{Key: "creature_kills", Value: 1},
	{Key: "deaths", Value: 1},
	{Key: "gold", Value: 1},
}

// RankingStore runs the read-only leaderboard projections over the profiles
// collection.
type RankingStore struct {
	collection *mongo.Collection
}

// NewRankingStore creates a new RankingStore instance.
func NewRankingStore(collection *mongo.Collection) *RankingStore {
	return &RankingStore{collection: collection}
}

func (rs *RankingStore) top(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]models.RankingEntry, error) {
	opts := options.Find().
		SetSort(sort).
		SetLimit(limit).
		SetProjection(rankingProjection)

	cursor, err := rs.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.RankingEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard entries: %w", err)
	}
	return entries, nil
}

// TopByCreatureKills returns the top profiles by creature kills, descending.
func (rs *RankingStore) TopByCreatureKills(ctx context.Context, limit int64) ([]models.RankingEntry, error) {
	return rs.top(ctx, bson.M{}, bson.D{{Key: "creature_kills", Value: -1}}, limit)
}

// TopByDeaths returns the top profiles by deaths, descending.
func (rs *RankingStore) TopByDeaths(ctx context.Context, limit int64) ([]models.RankingEntry, error) {
	return rs.top(ctx, bson.M{}, bson.D{{Key: "deaths", Value: -1}}, limit)
}

// TopByLevel returns the top profiles by level, descending, with experience
// as the secondary sort so partial bands order sensibly.
func (rs *RankingStore) TopByLevel(ctx context.Context, limit int64) ([]models.RankingEntry, error) {
	return rs.top(ctx, bson.M{}, bson.D{{Key: "level", Value: -1}, {Key: "experience", Value: -1}}, limit)
}

// TopByClass returns the top profiles of one class by creature kills.
func (rs *RankingStore) TopByClass(ctx context.Context, class string, limit int64) ([]models.RankingEntry, error) {
	return rs.top(ctx, bson.M{"class": class}, bson.D{{Key: "creature_kills", Value: -1}}, limit)
}

// FindByUsername is the self-lookup path for profiles below the public
// cutoff. Returns mongo.ErrNoDocuments when no profile matches.
func (rs *RankingStore) FindByUsername(ctx context.Context, username string) (*models.RankingEntry, error) {
	opts := options.FindOne().SetProjection(rankingProjection)

	var entry models.RankingEntry
	err := rs.collection.FindOne(ctx, bson.M{"username": username}, opts).Decode(&entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
