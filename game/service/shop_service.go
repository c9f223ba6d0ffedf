// game/service/shop_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ordemrpg/go-services/shared/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// ShopStore is the persistence contract for the shop catalog. ReserveStock
// must only succeed when the remaining stock covers the quantity, reported
// through the boolean, so two concurrent buyers cannot drive stock negative.
type ShopStore interface {
	GetItemByID(ctx context.Context, id string) (*models.ShopItem, error)
	ListItems(ctx context.Context) ([]models.ShopItem, error)
	CreateItem(ctx context.Context, item *models.ShopItem) error
	UpdateItem(ctx context.Context, item *models.ShopItem) error
	DeleteItem(ctx context.Context, id string) error
	ReserveStock(ctx context.Context, id string, quantity int) (bool, error)
	RestoreStock(ctx context.Context, id string, quantity int) error
}

// PurchaserStore is the slice of profile persistence the shop needs. Both
// conditional writes report through the boolean whether the gold guard held.
type PurchaserStore interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	CommitPurchase(ctx context.Context, id string, cost int, inventory []models.InventoryItem) (bool, error)
	DeductGold(ctx context.Context, id string, amount int) (bool, error)
}

// AgentStore is the persistence contract for the recruitable agent catalog
// and the per-user recruited rosters.
type AgentStore interface {
	GetAgentByID(ctx context.Context, id string) (*models.Agent, error)
	ListAgents(ctx context.Context) ([]models.Agent, error)
	CreateAgent(ctx context.Context, agent *models.Agent) error
	DeleteAgent(ctx context.Context, id string) error
	AddRecruit(ctx context.Context, recruit *models.RecruitedAgent) error
	ListRecruitsByUser(ctx context.Context, userID string) ([]models.RecruitedAgent, error)
}

// ShopService implements the economy engine: shop purchases and agent
// recruitment.
type ShopService struct {
	shopStore    ShopStore
	profileStore PurchaserStore
	agentStore   AgentStore
}

// NewShopService creates a new ShopService instance.
func NewShopService(ss ShopStore, ps PurchaserStore, as AgentStore) *ShopService {
	return &ShopService{
		shopStore:    ss,
		profileStore: ps,
		agentStore:   as,
	}
}

// BuyItem purchases quantity units of a catalog item for the buyer profile.
// On success the buyer's gold drops by price*quantity, the inventory gains
// the units (stacking on name/type/rarity), and the catalog stock drops by
// quantity. Precondition failures leave all state untouched.
//
// The stock is reserved with a guarded decrement before the profile write;
// if the gold write then loses a race, the reservation is rolled back.
func (ss *ShopService) BuyItem(ctx context.Context, buyerProfileID, itemID string, quantity int) (*models.Profile, error) {
	if quantity < 1 {
		quantity = 1
	}

	item, err := ss.shopStore.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("service failed to load shop item %s: %w", itemID, err)
	}
	if item.Stock < quantity {
		return nil, ErrOutOfStock
	}

	profile, err := ss.profileStore.GetByID(ctx, buyerProfileID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("service failed to load buyer profile %s: %w", buyerProfileID, err)
	}

	cost := item.Price * quantity
	if profile.Gold < cost {
		return nil, &InsufficientFundsError{Shortfall: cost - profile.Gold}
	}

	reserved, err := ss.shopStore.ReserveStock(ctx, itemID, quantity)
	if err != nil {
		return nil, fmt.Errorf("service failed to reserve stock for item %s: %w", itemID, err)
	}
	if !reserved {
		// A concurrent purchase consumed the stock between the read and the
		// guarded decrement.
		return nil, ErrOutOfStock
	}

	inventory := addToInventory(profile.Inventory, item, quantity)

	committed, err := ss.profileStore.CommitPurchase(ctx, buyerProfileID, cost, inventory)
	if err != nil || !committed {
		// The stock was already taken; put it back before reporting failure.
		if restoreErr := ss.shopStore.RestoreStock(ctx, itemID, quantity); restoreErr != nil {
			log.Printf("ERROR: Failed to restore %d units of item %s after aborted purchase by %s: %v",
				quantity, itemID, buyerProfileID, restoreErr)
		}
		if err != nil {
			return nil, fmt.Errorf("service failed to commit purchase for profile %s: %w", buyerProfileID, err)
		}
		return nil, &InsufficientFundsError{Shortfall: shortfallFor(ctx, ss.profileStore, buyerProfileID, cost)}
	}

	updated, err := ss.profileStore.GetByID(ctx, buyerProfileID)
	if err != nil {
		return nil, fmt.Errorf("service failed to reload buyer profile %s: %w", buyerProfileID, err)
	}
	return updated, nil
}

// addToInventory stacks the purchase onto a matching entry or appends a new
// one, preserving insertion order. New entries get a freshly minted id so
// distinct catalog items can never collide in an inventory.
func addToInventory(inventory []models.InventoryItem, item *models.ShopItem, quantity int) []models.InventoryItem {
	out := make([]models.InventoryItem, len(inventory))
	copy(out, inventory)

	for i := range out {
		if out[i].StacksWith(item) {
			out[i].Quantity += quantity
			return out
		}
	}

	return append(out, models.InventoryItem{
		ID:          uuid.New().String(),
		Name:        item.Name,
		Type:        item.Type,
		Rarity:      item.Rarity,
		Description: item.Description,
		Damage:      item.Damage,
		Defense:     item.Defense,
		Quantity:    quantity,
	})
}

// shortfallFor recomputes the gold shortfall after a lost purchase race.
func shortfallFor(ctx context.Context, store PurchaserStore, profileID string, cost int) int {
	profile, err := store.GetByID(ctx, profileID)
	if err != nil {
		return cost
	}
	if shortfall := cost - profile.Gold; shortfall > 0 {
		return shortfall
	}
	return 0
}

// RecruitAgent recruits an agent for a user: verifies the price against the
// profile's gold, deducts it, and appends a fresh roster row. Recruits never
// stack; recruiting the same agent twice yields two roster rows.
func (ss *ShopService) RecruitAgent(ctx context.Context, userID, agentID, profileID string) (*models.RecruitedAgent, error) {
	agent, err := ss.agentStore.GetAgentByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("service failed to load agent %s: %w", agentID, err)
	}

	profile, err := ss.profileStore.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("service failed to load profile %s: %w", profileID, err)
	}
	if profile.Gold < agent.Price {
		return nil, &InsufficientFundsError{Shortfall: agent.Price - profile.Gold}
	}

	deducted, err := ss.profileStore.DeductGold(ctx, profileID, agent.Price)
	if err != nil {
		return nil, fmt.Errorf("service failed to deduct gold from profile %s: %w", profileID, err)
	}
	if !deducted {
		return nil, &InsufficientFundsError{Shortfall: shortfallFor(ctx, ss.profileStore, profileID, agent.Price)}
	}

	now := time.Now()
	recruit := &models.RecruitedAgent{
		ID:          uuid.New().String(),
		UserID:      userID,
		AgentID:     agent.ID,
		AgentName:   agent.Name,
		AgentImage:  agent.ImageURL,
		Level:       1,
		Experience:  0,
		RecruitedAt: &now,
	}
	if err := ss.agentStore.AddRecruit(ctx, recruit); err != nil {
		// The gold is already gone; surface the inconsistency loudly.
		log.Printf("ERROR: Gold deducted but roster append failed for user %s recruiting agent %s: %v", userID, agentID, err)
		return nil, fmt.Errorf("service failed to record recruit for user %s: %w", userID, err)
	}
	return recruit, nil
}

// ListItems returns the shop catalog.
func (ss *ShopService) ListItems(ctx context.Context) ([]models.ShopItem, error) {
	items, err := ss.shopStore.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("service failed to list shop items: %w", err)
	}
	return items, nil
}

// CreateItem adds a catalog item (master only, enforced at the API layer).
func (ss *ShopService) CreateItem(ctx context.Context, item *models.ShopItem) (*models.ShopItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Price < 0 || item.Stock < 0 {
		return nil, fmt.Errorf("price and stock must be non-negative")
	}
	if err := ss.shopStore.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("service failed to create shop item: %w", err)
	}
	return item, nil
}

// UpdateItem replaces a catalog item.
func (ss *ShopService) UpdateItem(ctx context.Context, item *models.ShopItem) error {
	if err := ss.shopStore.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrItemNotFound
		}
		return fmt.Errorf("service failed to update shop item %s: %w", item.ID, err)
	}
	return nil
}

// DeleteItem removes a catalog item.
func (ss *ShopService) DeleteItem(ctx context.Context, id string) error {
	if err := ss.shopStore.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrItemNotFound
		}
		return fmt.Errorf("service failed to delete shop item %s: %w", id, err)
	}
	return nil
}

// ListAgents returns the recruitable agent catalog.
func (ss *ShopService) ListAgents(ctx context.Context) ([]models.Agent, error) {
	agents, err := ss.agentStore.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("service failed to list agents: %w", err)
	}
	return agents, nil
}

// CreateAgent adds a recruitable agent (master only, enforced at the API layer).
func (ss *ShopService) CreateAgent(ctx context.Context, agent *models.Agent) (*models.Agent, error) {
	if agent.ID == "" {
		agent.ID = uuid.New().String()
	}
	if agent.CreatedAt == nil {
		now := time.Now()
		agent.CreatedAt = &now
	}
	if err := ss.agentStore.CreateAgent(ctx, agent); err != nil {
		return nil, fmt.Errorf("service failed to create agent: %w", err)
	}
	return agent, nil
}

// DeleteAgent removes a recruitable agent.
func (ss *ShopService) DeleteAgent(ctx context.Context, id string) error {
	if err := ss.agentStore.DeleteAgent(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAgentNotFound
		}
		return fmt.Errorf("service failed to delete agent %s: %w", id, err)
	}
	return nil
}

// ListRecruits returns a user's recruited roster.
func (ss *ShopService) ListRecruits(ctx context.Context, userID string) ([]models.RecruitedAgent, error) {
	recruits, err := ss.agentStore.ListRecruitsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service failed to list recruits for user %s: %w", userID, err)
	}
	return recruits, nil
}
