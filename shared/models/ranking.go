package models

// RankingEntry is the uniform projection returned by every leaderboard query,
// regardless of which sort produced it. Rank is the 1-based position within
// the result set; ties are broken by result order only.
type RankingEntry struct {
	Rank          int    `bson:"-" json:"rank"`
	ProfileID     string `bson:"_id" json:"profileId"`
	Username      string `bson:"username" json:"username"`
	Class         string `bson:"class" json:"class"`
	Level         int    `bson:"level" json:"level"`
	CreatureKills int    `bson:"creature_kills" json:"creatureKills"`
	Deaths        int    `bson:"deaths" json:"deaths"`
	Gold          int    `bson:"gold" json:"gold"`
}
