package redis

import "fmt"

const (
	// Leaderboard cache keys, one per board kind: leaderboard:{kills}
	LeaderboardKeyPrefix = "leaderboard:{%s}:"
	// Class boards carry the class in the key: leaderboard_class:{Ocultista}
	LeaderboardClassKeyPrefix = "leaderboard_class:{%s}:"
)

// ErrRedisKeyNotFound is returned by cache lookups when the key is absent or expired.
var ErrRedisKeyNotFound = fmt.Errorf("redis key not found")
