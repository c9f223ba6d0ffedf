package models

import "time"

// MissionDifficulty enumerates mission difficulty tiers.
type MissionDifficulty string

const (
	DifficultyEasy      MissionDifficulty = "easy"
	DifficultyMedium    MissionDifficulty = "medium"
	DifficultyHard      MissionDifficulty = "hard"
	DifficultyLegendary MissionDifficulty = "legendary"
)

// MissionStatus is the admin-maintained listing status of a mission. It is
// independent of the per-user accepted/completed sets and only filters which
// missions are browsable.
type MissionStatus string

const (
	MissionAvailable MissionStatus = "available"
	MissionActive    MissionStatus = "active"
	MissionCompleted MissionStatus = "completed"
)

// MissionReward is granted to a user when they complete the mission.
type MissionReward struct {
	Experience int `bson:"experience" json:"experience"`
	Gold       int `bson:"gold" json:"gold"`
}

// MissionRequirements are advisory filters for the UI; they are not enforced
// when a user accepts a mission.
type MissionRequirements struct {
	MinLevel        int      `bson:"min_level,omitempty" json:"minLevel,omitempty"`
	RequiredClasses []string `bson:"required_classes,omitempty" json:"requiredClasses,omitempty"`
	RequiredTeam    string   `bson:"required_team,omitempty" json:"requiredTeam,omitempty"`
}

// Mission is a quest-like task tracked per user through membership sets.
// Invariant: every user id in CompletedBy also appears in AcceptedBy.
type Mission struct {
	ID            string               `bson:"_id" json:"id"`
	Title         string               `bson:"title" json:"title"`
	Description   string               `bson:"description,omitempty" json:"description,omitempty"`
	Difficulty    MissionDifficulty    `bson:"difficulty" json:"difficulty"`
	Status        MissionStatus        `bson:"status" json:"status"`
	Reward        MissionReward        `bson:"reward" json:"reward"`
	Requirements  *MissionRequirements `bson:"requirements,omitempty" json:"requirements,omitempty"`
	AcceptedBy    []string             `bson:"accepted_by" json:"acceptedBy"`
	CompletedBy   []string             `bson:"completed_by" json:"completedBy"`
	CreatedBy     string               `bson:"created_by" json:"createdBy"`
	CreatedByName string               `bson:"created_by_name,omitempty" json:"createdByName,omitempty"`
	CreatedAt     *time.Time           `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time           `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
