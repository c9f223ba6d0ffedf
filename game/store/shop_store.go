// game/store/shop_store.go
package store

import (
	"context"
	"fmt"

	"github.com/ordemrpg/go-services/shared/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ShopStore is the MongoDB data store for the shop catalog.
type ShopStore struct {
	collection *mongo.Collection
}

// NewShopStore creates a new ShopStore instance.
func NewShopStore(collection *mongo.Collection) *ShopStore {
	return &ShopStore{collection: collection}
}

// GetItemByID retrieves a catalog item.
// Returns mongo.ErrNoDocuments when absent.
func (ss *ShopStore) GetItemByID(ctx context.Context, id string) (*models.ShopItem, error) {
	var item models.ShopItem
	err := ss.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns the whole catalog, name-ordered.
func (ss *ShopStore) ListItems(ctx context.Context) ([]models.ShopItem, error) {
	cursor, err := ss.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list shop items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.ShopItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode shop items: %w", err)
	}
	return items, nil
}

// CreateItem inserts a catalog item.
func (ss *ShopStore) CreateItem(ctx context.Context, item *models.ShopItem) error {
	_, err := ss.collection.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create shop item %s: %w", item.ID, err)
	}
	return nil
}

// UpdateItem replaces a catalog item document.
func (ss *ShopStore) UpdateItem(ctx context.Context, item *models.ShopItem) error {
	res, err := ss.collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("failed to update shop item %s: %w", item.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteItem removes a catalog item.
func (ss *ShopStore) DeleteItem(ctx context.Context, id string) error {
	res, err := ss.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete shop item %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReserveStock decrements stock behind a remaining-stock guard. Reports false
// when the item is absent or the stock no longer covers the quantity, so
// concurrent purchases can never drive stock negative.
func (ss *ShopStore) ReserveStock(ctx context.Context, id string, quantity int) (bool, error) {
	filter := bson.M{"_id": id, "stock": bson.M{"$gte": quantity}}
	update := bson.M{"$inc": bson.M{"stock": -quantity}}
	res, err := ss.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to reserve %d units of item %s: %w", quantity, id, err)
	}
	return res.MatchedCount > 0, nil
}

// RestoreStock returns reserved units to the catalog after an aborted purchase.
func (ss *ShopStore) RestoreStock(ctx context.Context, id string, quantity int) error {
	res, err := ss.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"stock": quantity}})
	if err != nil {
		return fmt.Errorf("failed to restore %d units of item %s: %w", quantity, id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
