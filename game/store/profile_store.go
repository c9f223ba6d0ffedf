// game/store/profile_store.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ordemrpg/go-services/game/service"
	"github.com/ordemrpg/go-services/shared/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileStore is the MongoDB data store for character profiles. The same
// type also backs the master-created character sheets collection.
type ProfileStore struct {
	collection *mongo.Collection
}

// NewProfileStore creates a new ProfileStore instance.
func NewProfileStore(collection *mongo.Collection) *ProfileStore {
	return &ProfileStore{collection: collection}
}

// Create inserts a new profile document.
func (ps *ProfileStore) Create(ctx context.Context, profile *models.Profile) error {
	_, err := ps.collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return err // Let the service map duplicates to its own error.
		}
		return fmt.Errorf("failed to create profile %s: %w", profile.ID, err)
	}
	return nil
}

// GetByID retrieves a profile by its id.
// Returns mongo.ErrNoDocuments when absent.
func (ps *ProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := ps.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByUserID retrieves the profile owned by a user.
// Returns mongo.ErrNoDocuments when absent.
func (ps *ProfileStore) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := ps.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ApplyUpdate sets the non-nil fields of the update on the profile document.
func (ps *ProfileStore) ApplyUpdate(ctx context.Context, id string, update *service.ProfileUpdate) error {
	set := bson.M{"updated_at": time.Now()}

	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Faction != nil {
		set["faction"] = *update.Faction
	}
	if update.ImageURL != nil {
		set["image_url"] = *update.ImageURL
	}
	if update.Skills != nil {
		set["skills"] = *update.Skills
	}
	if update.Health != nil {
		set["health"] = *update.Health
	}
	if update.Mana != nil {
		set["mana"] = *update.Mana
	}
	if update.Level != nil {
		set["level"] = *update.Level
	}
	if update.Experience != nil {
		set["experience"] = *update.Experience
	}
	if update.Attributes != nil {
		set["attributes"] = *update.Attributes
	}
	if update.CreatureKills != nil {
		set["creature_kills"] = *update.CreatureKills
	}
	if update.PlayerKills != nil {
		set["player_kills"] = *update.PlayerKills
	}
	if update.Deaths != nil {
		set["deaths"] = *update.Deaths
	}
	if update.Gold != nil {
		set["gold"] = *update.Gold
	}
	if update.IsDeceased != nil {
		set["is_deceased"] = *update.IsDeceased
	}
	if update.CauseOfDeath != nil {
		set["cause_of_death"] = *update.CauseOfDeath
	}

	res, err := ps.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update profile %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a profile document.
func (ps *ProfileStore) Delete(ctx context.Context, id string) error {
	_, err := ps.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", id, err)
	}
	return nil
}

// rewardPipeline builds an aggregation-pipeline update applying the delta and
// recomputing level from the new experience total in the same write. This is
// the only code path that changes experience, which is what keeps
// level == floor(experience/100)+1 for every profile it touches.
func rewardPipeline(delta service.RewardDelta) mongo.Pipeline {
	newExperience := bson.D{{Key: "$add", Value: bson.A{"$experience", delta.Experience}}}
	newLevel := bson.D{{Key: "$add", Value: bson.A{
		bson.D{{Key: "$floor", Value: bson.D{{Key: "$divide", Value: bson.A{newExperience, service.ExperiencePerLevel}}}}},
		1,
	}}}

	return mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "experience", Value: newExperience},
			{Key: "level", Value: newLevel},
			{Key: "gold", Value: bson.D{{Key: "$add", Value: bson.A{"$gold", delta.Gold}}}},
			{Key: "creature_kills", Value: bson.D{{Key: "$add", Value: bson.A{"$creature_kills", delta.CreatureKills}}}},
			{Key: "player_kills", Value: bson.D{{Key: "$add", Value: bson.A{"$player_kills", delta.PlayerKills}}}},
			{Key: "deaths", Value: bson.D{{Key: "$add", Value: bson.A{"$deaths", delta.Deaths}}}},
			{Key: "updated_at", Value: "$$NOW"},
		}}},
	}
}

// GrantReward atomically applies the delta to a profile and returns the
// updated document. Returns mongo.ErrNoDocuments when the profile is absent.
func (ps *ProfileStore) GrantReward(ctx context.Context, id string, delta service.RewardDelta) (*models.Profile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Profile
	err := ps.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, rewardPipeline(delta), opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("failed to grant reward to profile %s: %w", id, err)
	}
	return &updated, nil
}

// GrantRewardByUser applies the delta to the profile owned by a user.
// Reports false when the user has no profile.
func (ps *ProfileStore) GrantRewardByUser(ctx context.Context, userID string, delta service.RewardDelta) (bool, error) {
	res, err := ps.collection.UpdateOne(ctx, bson.M{"user_id": userID}, rewardPipeline(delta))
	if err != nil {
		return false, fmt.Errorf("failed to grant reward to user %s: %w", userID, err)
	}
	return res.MatchedCount > 0, nil
}

// DeductGold subtracts gold behind a balance guard. Reports false when the
// profile is absent or the balance no longer covers the amount.
func (ps *ProfileStore) DeductGold(ctx context.Context, id string, amount int) (bool, error) {
	filter := bson.M{"_id": id, "gold": bson.M{"$gte": amount}}
	update := bson.M{
		"$inc": bson.M{"gold": -amount},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := ps.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to deduct %d gold from profile %s: %w", amount, id, err)
	}
	return res.MatchedCount > 0, nil
}

// CommitPurchase deducts the purchase cost and replaces the inventory in one
// write, guarded by the gold balance. Reports false when the guard fails.
func (ps *ProfileStore) CommitPurchase(ctx context.Context, id string, cost int, inventory []models.InventoryItem) (bool, error) {
	filter := bson.M{"_id": id, "gold": bson.M{"$gte": cost}}
	update := bson.M{
		"$inc": bson.M{"gold": -cost},
		"$set": bson.M{"inventory": inventory, "updated_at": time.Now()},
	}
	res, err := ps.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to commit purchase for profile %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// EnsureIndexes creates the unique owner index. Called once at startup.
func (ps *ProfileStore) EnsureIndexes(ctx context.Context) error {
	_, err := ps.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create profile user_id index: %w", err)
	}
	return nil
}
