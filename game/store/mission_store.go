// game/store/mission_store.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ordemrpg/go-services/shared/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MissionStore is the MongoDB data store for missions.
type MissionStore struct {
	collection *mongo.Collection
}

// NewMissionStore creates a new MissionStore instance.
func NewMissionStore(collection *mongo.Collection) *MissionStore {
	return &MissionStore{collection: collection}
}

// Create inserts a new mission document.
func (ms *MissionStore) Create(ctx context.Context, mission *models.Mission) error {
	_, err := ms.collection.InsertOne(ctx, mission)
	if err != nil {
		return fmt.Errorf("failed to create mission %s: %w", mission.ID, err)
	}
	return nil
}

// GetByID retrieves a mission by id.
// Returns mongo.ErrNoDocuments when absent.
func (ms *MissionStore) GetByID(ctx context.Context, id string) (*models.Mission, error) {
	var mission models.Mission
	err := ms.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&mission)
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

// Update replaces the mission document.
func (ms *MissionStore) Update(ctx context.Context, mission *models.Mission) error {
	res, err := ms.collection.ReplaceOne(ctx, bson.M{"_id": mission.ID}, mission)
	if err != nil {
		return fmt.Errorf("failed to update mission %s: %w", mission.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a mission document.
func (ms *MissionStore) Delete(ctx context.Context, id string) error {
	_, err := ms.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete mission %s: %w", id, err)
	}
	return nil
}

// ListByStatus returns missions with the given listing status, newest first.
func (ms *MissionStore) ListByStatus(ctx context.Context, status models.MissionStatus) ([]models.Mission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := ms.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions with status %s: %w", status, err)
	}
	defer cursor.Close(ctx)

	var missions []models.Mission
	if err := cursor.All(ctx, &missions); err != nil {
		return nil, fmt.Errorf("failed to decode missions: %w", err)
	}
	return missions, nil
}

// ListByAcceptedUser returns every mission the user has accepted.
func (ms *MissionStore) ListByAcceptedUser(ctx context.Context, userID string) ([]models.Mission, error) {
	cursor, err := ms.collection.Find(ctx, bson.M{"accepted_by": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list missions accepted by %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var missions []models.Mission
	if err := cursor.All(ctx, &missions); err != nil {
		return nil, fmt.Errorf("failed to decode missions: %w", err)
	}
	return missions, nil
}

// AddAccepted appends the user to accepted_by, guarded by their absence.
// Reports false when the mission is missing or the user already accepted.
func (ms *MissionStore) AddAccepted(ctx context.Context, missionID, userID string) (bool, error) {
	filter := bson.M{"_id": missionID, "accepted_by": bson.M{"$ne": userID}}
	update := bson.M{
		"$addToSet": bson.M{"accepted_by": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	res, err := ms.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to accept mission %s for user %s: %w", missionID, userID, err)
	}
	return res.MatchedCount > 0, nil
}

// AddCompleted appends the user to completed_by, guarded by their presence in
// accepted_by and absence from completed_by. The guard is what enforces the
// completed-implies-accepted invariant at the storage boundary.
func (ms *MissionStore) AddCompleted(ctx context.Context, missionID, userID string) (bool, error) {
	filter := bson.M{
		"_id":          missionID,
		"accepted_by":  userID,
		"completed_by": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$addToSet": bson.M{"completed_by": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	res, err := ms.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to complete mission %s for user %s: %w", missionID, userID, err)
	}
	return res.MatchedCount > 0, nil
}
