package models

// ItemType enumerates shop/inventory item categories.
type ItemType string

const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeQuest      ItemType = "quest"
	ItemTypeOther      ItemType = "other"
)

// ItemRarity enumerates item scarcity tiers, ordered from most to least common.
type ItemRarity string

const (
	RarityCommon    ItemRarity = "common"
	RarityUncommon  ItemRarity = "uncommon"
	RarityRare      ItemRarity = "rare"
	RarityEpic      ItemRarity = "epic"
	RarityLegendary ItemRarity = "legendary"
)

// ShopItem is a catalog entry. Stock is mutated only by successful purchases.
type ShopItem struct {
	ID          string     `bson:"_id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Type        ItemType   `bson:"type" json:"type"`
	Rarity      ItemRarity `bson:"rarity" json:"rarity"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Damage      string     `bson:"damage,omitempty" json:"damage,omitempty"`
	Defense     int        `bson:"defense,omitempty" json:"defense,omitempty"`
	Price       int        `bson:"price" json:"price"`
	Stock       int        `bson:"stock" json:"stock"`
}

// InventoryItem is an owned stack embedded in a profile's inventory.
// Its ID is minted at purchase time and is independent of the catalog id,
// so two catalog items can never collide inside one inventory.
type InventoryItem struct {
	ID          string     `bson:"id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Type        ItemType   `bson:"type" json:"type"`
	Rarity      ItemRarity `bson:"rarity" json:"rarity"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Damage      string     `bson:"damage,omitempty" json:"damage,omitempty"`
	Defense     int        `bson:"defense,omitempty" json:"defense,omitempty"`
	Quantity    int        `bson:"quantity" json:"quantity"`
}

// StacksWith reports whether a purchase of the given catalog item should
// increment this stack instead of appending a new inventory entry.
func (it InventoryItem) StacksWith(shopItem *ShopItem) bool {
	return it.Name == shopItem.Name && it.Type == shopItem.Type && it.Rarity == shopItem.Rarity
}
