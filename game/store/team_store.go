// game/store/team_store.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ordemrpg/go-services/shared/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TeamStore is the MongoDB data store for teams.
type TeamStore struct {
	collection *mongo.Collection
}

// NewTeamStore creates a new TeamStore instance.
func NewTeamStore(collection *mongo.Collection) *TeamStore {
	return &TeamStore{collection: collection}
}

// Create inserts a new team document.
func (ts *TeamStore) Create(ctx context.Context, team *models.Team) error {
	_, err := ts.collection.InsertOne(ctx, team)
	if err != nil {
		return fmt.Errorf("failed to create team %s: %w", team.ID, err)
	}
	return nil
}

// GetByID retrieves a team by id.
// Returns mongo.ErrNoDocuments when absent.
func (ts *TeamStore) GetByID(ctx context.Context, id string) (*models.Team, error) {
	var team models.Team
	err := ts.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// List retrieves all team documents.
func (ts *TeamStore) List(ctx context.Context) ([]models.Team, error) {
	cursor, err := ts.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find all teams: %w", err)
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode all teams: %w", err)
	}
	return teams, nil
}

// Delete removes a team document outright.
func (ts *TeamStore) Delete(ctx context.Context, id string) error {
	_, err := ts.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete team %s: %w", id, err)
	}
	return nil
}

// AppendMember pushes a member onto the team, guarded by their absence and by
// the capacity bound evaluated inside the filter. Reports false when either
// guard fails, so two concurrent joins cannot push membership past capacity.
func (ts *TeamStore) AppendMember(ctx context.Context, teamID string, member models.TeamMember) (bool, error) {
	filter := bson.M{
		"_id":             teamID,
		"members.user_id": bson.M{"$ne": member.UserID},
		"$expr": bson.M{
			"$lt": bson.A{bson.M{"$size": "$members"}, "$max_members"},
		},
	}
	update := bson.M{
		"$push": bson.M{"members": member},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := ts.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to append member %s to team %s: %w", member.UserID, teamID, err)
	}
	return res.MatchedCount > 0, nil
}

// RemoveMember pulls a member off the team. Reports false when the user was
// not a member.
func (ts *TeamStore) RemoveMember(ctx context.Context, teamID, userID string) (bool, error) {
	update := bson.M{
		"$pull": bson.M{"members": bson.M{"user_id": userID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := ts.collection.UpdateOne(ctx, bson.M{"_id": teamID}, update)
	if err != nil {
		return false, fmt.Errorf("failed to remove member %s from team %s: %w", userID, teamID, err)
	}
	return res.ModifiedCount > 0, nil
}

// FindByMember returns the team the user belongs to. Membership has no
// dedicated index; this scans the members arrays.
// Returns mongo.ErrNoDocuments when the user has no team.
func (ts *TeamStore) FindByMember(ctx context.Context, userID string) (*models.Team, error) {
	var team models.Team
	err := ts.collection.FindOne(ctx, bson.M{"members.user_id": userID}).Decode(&team)
	if err != nil {
		return nil, err
	}
	return &team, nil
}
