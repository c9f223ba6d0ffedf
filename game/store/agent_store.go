// game/store/agent_store.go
package store

import (
	"context"
	"fmt"

	"github.com/ordemrpg/go-services/shared/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AgentStore is the MongoDB data store for the recruitable agent catalog and
// the per-user recruited rosters, which live in separate collections.
type AgentStore struct {
	agents    *mongo.Collection
	recruited *mongo.Collection
}

// NewAgentStore creates a new AgentStore instance.
func NewAgentStore(agents, recruited *mongo.Collection) *AgentStore {
	return &AgentStore{
		agents:    agents,
		recruited: recruited,
	}
}

// GetAgentByID retrieves a catalog agent.
// Returns mongo.ErrNoDocuments when absent.
func (as *AgentStore) GetAgentByID(ctx context.Context, id string) (*models.Agent, error) {
	var agent models.Agent
	err := as.agents.FindOne(ctx, bson.M{"_id": id}).Decode(&agent)
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// ListAgents returns the whole agent catalog.
func (as *AgentStore) ListAgents(ctx context.Context) ([]models.Agent, error) {
	cursor, err := as.agents.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer cursor.Close(ctx)

	var agents []models.Agent
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, fmt.Errorf("failed to decode agents: %w", err)
	}
	return agents, nil
}

// CreateAgent inserts a catalog agent.
func (as *AgentStore) CreateAgent(ctx context.Context, agent *models.Agent) error {
	_, err := as.agents.InsertOne(ctx, agent)
	if err != nil {
		return fmt.Errorf("failed to create agent %s: %w", agent.ID, err)
	}
	return nil
}

// DeleteAgent removes a catalog agent. Existing recruited rosters keep their
// copied agent data.
func (as *AgentStore) DeleteAgent(ctx context.Context, id string) error {
	res, err := as.agents.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete agent %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddRecruit appends a roster row. Every call inserts a new document; rosters
// never stack.
func (as *AgentStore) AddRecruit(ctx context.Context, recruit *models.RecruitedAgent) error {
	_, err := as.recruited.InsertOne(ctx, recruit)
	if err != nil {
		return fmt.Errorf("failed to add recruit %s for user %s: %w", recruit.ID, recruit.UserID, err)
	}
	return nil
}

// ListRecruitsByUser returns a user's roster, newest first.
func (as *AgentStore) ListRecruitsByUser(ctx context.Context, userID string) ([]models.RecruitedAgent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recruited_at", Value: -1}})
	cursor, err := as.recruited.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recruits for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var recruits []models.RecruitedAgent
	if err := cursor.All(ctx, &recruits); err != nil {
		return nil, fmt.Errorf("failed to decode recruits: %w", err)
	}
	return recruits, nil
}
