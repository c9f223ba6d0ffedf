package models

import "time"

// AgentRarity enumerates agent scarcity tiers. This is a distinct closed set
// from ItemRarity: agents have no "uncommon" tier.
type AgentRarity string

const (
	AgentCommon    AgentRarity = "common"
	AgentRare      AgentRarity = "rare"
	AgentEpic      AgentRarity = "epic"
	AgentLegendary AgentRarity = "legendary"
)

// AgentStats are the 1-10 combat stats of a recruitable agent.
type AgentStats struct {
	Strength     int `bson:"strength" json:"strength"`
	Speed        int `bson:"speed" json:"speed"`
	Endurance    int `bson:"endurance" json:"endurance"`
	Intelligence int `bson:"intelligence" json:"intelligence"`
}

// Agent is a catalog-only recruitable roster entry. It is never owned
// directly; recruiting mints a RecruitedAgent row for the user.
type Agent struct {
	ID             string      `bson:"_id" json:"id"`
	Name           string      `bson:"name" json:"name"`
	Description    string      `bson:"description,omitempty" json:"description,omitempty"`
	Price          int         `bson:"price" json:"price"`
	ImageURL       string      `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Stats          AgentStats  `bson:"stats" json:"stats"`
	SpecialAbility string      `bson:"special_ability,omitempty" json:"specialAbility,omitempty"`
	Rarity         AgentRarity `bson:"rarity" json:"rarity"`
	CreatedAt      *time.Time  `bson:"created_at,omitempty" json:"createdAt,omitempty"`
}

// RecruitedAgent is one row in a user's recruited roster. Repeat recruits of
// the same agent always create new rows; rosters never stack.
type RecruitedAgent struct {
	ID          string     `bson:"_id" json:"id"`
	UserID      string     `bson:"user_id" json:"userId"`
	AgentID     string     `bson:"agent_id" json:"agentId"`
	AgentName   string     `bson:"agent_name" json:"agentName"`
	AgentImage  string     `bson:"agent_image,omitempty" json:"agentImage,omitempty"`
	Level       int        `bson:"level" json:"level"`
	Experience  int        `bson:"experience" json:"experience"`
	RecruitedAt *time.Time `bson:"recruited_at,omitempty" json:"recruitedAt,omitempty"`
}
