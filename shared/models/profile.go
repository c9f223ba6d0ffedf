package models

import "time"

// CharacterClass enumerates the playable classes. Master-created generic
// character sheets may carry free-text classes outside this set.
type CharacterClass string

const (
	ClassOcultista    CharacterClass = "Ocultista"
	ClassEspecialista CharacterClass = "Especialista"
	ClassCombatente   CharacterClass = "Combatente"
)

// Attributes holds the six rolled ability scores, typically 1-20.
type Attributes struct {
	Strength     int `bson:"strength" json:"strength"`
	Dexterity    int `bson:"dexterity" json:"dexterity"`
	Constitution int `bson:"constitution" json:"constitution"`
	Intelligence int `bson:"intelligence" json:"intelligence"`
	Wisdom       int `bson:"wisdom" json:"wisdom"`
	Charisma     int `bson:"charisma" json:"charisma"`
}

// Skill is a named ability on a character sheet.
type Skill struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Cost        int    `bson:"cost,omitempty" json:"cost,omitempty"`
}

// Profile represents a user's persistent progression record stored in MongoDB.
// Level is always derived from Experience (see service.LevelForExperience);
// every experience-mutating write recomputes it so the two never desync.
type Profile struct {
	ID            string          `bson:"_id" json:"id"`
	UserID        string          `bson:"user_id" json:"userId"`
	Username      string          `bson:"username" json:"username"`
	Class         string          `bson:"class" json:"class"`
	Level         int             `bson:"level" json:"level"`
	Experience    int             `bson:"experience" json:"experience"`
	Health        int             `bson:"health" json:"health"`
	MaxHealth     int             `bson:"max_health" json:"maxHealth"`
	Mana          int             `bson:"mana,omitempty" json:"mana,omitempty"`
	MaxMana       int             `bson:"max_mana,omitempty" json:"maxMana,omitempty"`
	Attributes    Attributes      `bson:"attributes" json:"attributes"`
	CreatureKills int             `bson:"creature_kills" json:"creatureKills"`
	PlayerKills   int             `bson:"player_kills" json:"playerKills"`
	Deaths        int             `bson:"deaths" json:"deaths"`
	Gold          int             `bson:"gold" json:"gold"`
	Inventory     []InventoryItem `bson:"inventory" json:"inventory"`
	Skills        []Skill         `bson:"skills,omitempty" json:"skills,omitempty"`
	Faction       string          `bson:"faction,omitempty" json:"faction,omitempty"`
	Description   string          `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL      string          `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	IsDeceased    bool            `bson:"is_deceased" json:"isDeceased"`
	CauseOfDeath  string          `bson:"cause_of_death,omitempty" json:"causeOfDeath,omitempty"`
	CreatedAt     *time.Time      `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time      `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
