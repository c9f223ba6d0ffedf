// shared/config/config.go
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// CommonConfig holds configuration fields shared by every service instance.
type CommonConfig struct {
	RedisAddrs              []string      // Redis cluster addresses (e.g., "redis-cluster:6379")
	RedisPassword           string        // Redis password for authentication
	HeartbeatInterval       time.Duration // How often to send a registry heartbeat (e.g., 5s)
	HeartbeatTTL            time.Duration // How long an instance is considered alive without a heartbeat (e.g., 15s)
	RegistryCleanupInterval time.Duration // How often the registry actively cleans stale entries (e.g., 30s)
	ServiceIP               string        // The IP this instance advertises for registration (Kubernetes Pod IP)
	ServicePort             int           // The port this instance listens on, used for registration
}

// GameServiceConfig holds configuration for the character/game service.
type GameServiceConfig struct {
	CommonConfig                             // Embed CommonConfig
	ListenAddr                 string        // Address for the HTTP server (e.g., ":8080")
	MongoDBConnStr             string        // MongoDB connection string
	MongoDBDatabase            string        // MongoDB database name
	MongoDBProfilesCollection  string        // Collection for player profiles
	MongoDBCharactersColl      string        // Collection for master-created character sheets
	MongoDBMissionsCollection  string        // Collection for missions
	MongoDBTeamsCollection     string        // Collection for teams
	MongoDBShopItemsCollection string        // Collection for the shop catalog
	MongoDBAgentsCollection    string        // Collection for the recruitable agent catalog
	MongoDBRecruitedCollection string        // Collection for per-user recruited agents
	MasterEmails               []string      // Allowlisted master/admin emails
	LeaderboardCacheTTL        time.Duration // TTL for cached leaderboard keys in Redis
	LeaderboardRefreshInterval time.Duration // How often the background refresher re-warms the boards
	LeaderboardSize            int64         // Public top-N cutoff
}

// LoadCommonConfig loads common configuration from environment variables.
func LoadCommonConfig() (CommonConfig, error) {
	cfg := CommonConfig{}
	var err error

	redisAddrsStr := os.Getenv("REDIS_ADDRS")
	if redisAddrsStr == "" {
		cfg.RedisAddrs = []string{"redis-cluster-headless.ordem.svc.cluster.local:6379"}
	} else {
		for _, addr := range strings.Split(redisAddrsStr, ",") {
			cfg.RedisAddrs = append(cfg.RedisAddrs, strings.TrimSpace(addr))
		}
	}

	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	cfg.HeartbeatInterval, err = getDuration("SERVICE_HEARTBEAT_INTERVAL", 5*time.Second)
	if err != nil {
		return cfg, err
	}
	cfg.HeartbeatTTL, err = getDuration("SERVICE_HEARTBEAT_TTL", 15*time.Second)
	if err != nil {
		return cfg, err
	}
	cfg.RegistryCleanupInterval, err = getDuration("SERVICE_REGISTRY_CLEANUP_INTERVAL", 30*time.Second)
	if err != nil {
		return cfg, err
	}

	// Service IP for registration, injected by Kubernetes.
	cfg.ServiceIP = os.Getenv("POD_IP")
	if cfg.ServiceIP == "" {
		cfg.ServiceIP = "0.0.0.0"
		fmt.Printf("WARNING: POD_IP not set, defaulting ServiceIP to %s\n", cfg.ServiceIP)
	}

	return cfg, nil
}

// LoadGameServiceConfig loads configuration for the character/game service.
func LoadGameServiceConfig() (*GameServiceConfig, error) {
	common, err := LoadCommonConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load common config for game-service: %w", err)
	}

	cfg := &GameServiceConfig{
		CommonConfig:               common,
		ListenAddr:                 os.Getenv("GAME_SERVICE_LISTEN_ADDR"),
		MongoDBConnStr:             os.Getenv("MONGODB_CONN_STR"),
		MongoDBDatabase:            os.Getenv("MONGODB_DATABASE"),
		MongoDBProfilesCollection:  os.Getenv("MONGODB_PROFILES_COLLECTION"),
		MongoDBCharactersColl:      os.Getenv("MONGODB_CHARACTERS_COLLECTION"),
		MongoDBMissionsCollection:  os.Getenv("MONGODB_MISSIONS_COLLECTION"),
		MongoDBTeamsCollection:     os.Getenv("MONGODB_TEAMS_COLLECTION"),
		MongoDBShopItemsCollection: os.Getenv("MONGODB_SHOP_ITEMS_COLLECTION"),
		MongoDBAgentsCollection:    os.Getenv("MONGODB_AGENTS_COLLECTION"),
		MongoDBRecruitedCollection: os.Getenv("MONGODB_RECRUITED_COLLECTION"),
	}

	// Apply defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.MongoDBConnStr == "" {
		cfg.MongoDBConnStr = "mongodb://mongodb-service:27017"
	}
	if cfg.MongoDBDatabase == "" {
		cfg.MongoDBDatabase = "ordem"
	}
	if cfg.MongoDBProfilesCollection == "" {
		cfg.MongoDBProfilesCollection = "profiles"
	}
	if cfg.MongoDBCharactersColl == "" {
		cfg.MongoDBCharactersColl = "characters"
	}
	if cfg.MongoDBMissionsCollection == "" {
		cfg.MongoDBMissionsCollection = "missions"
	}
	if cfg.MongoDBTeamsCollection == "" {
		cfg.MongoDBTeamsCollection = "teams"
	}
	if cfg.MongoDBShopItemsCollection == "" {
		cfg.MongoDBShopItemsCollection = "shop_items"
	}
	if cfg.MongoDBAgentsCollection == "" {
		cfg.MongoDBAgentsCollection = "agents"
	}
	if cfg.MongoDBRecruitedCollection == "" {
		cfg.MongoDBRecruitedCollection = "recruited_agents"
	}

	// Master/admin allowlist. Checks against this list live client-side in the
	// original app; keeping them in service config at least centralizes them.
	for _, email := range strings.Split(os.Getenv("MASTER_EMAILS"), ",") {
		email = strings.TrimSpace(strings.ToLower(email))
		if email != "" {
			cfg.MasterEmails = append(cfg.MasterEmails, email)
		}
	}

	cfg.LeaderboardCacheTTL, err = getDuration("LEADERBOARD_CACHE_TTL", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.LeaderboardRefreshInterval, err = getDuration("LEADERBOARD_REFRESH_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	size, err := getInt("LEADERBOARD_SIZE", 10)
	if err != nil {
		return nil, err
	}
	cfg.LeaderboardSize = int64(size)

	// Extract ServicePort from ListenAddr
	cfg.ServicePort, err = extractPort(cfg.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to extract port from GAME_SERVICE_LISTEN_ADDR '%s': %w", cfg.ListenAddr, err)
	}

	return cfg, nil
}

// Helper function to parse duration from environment variable
func getDuration(envKey string, defaultVal time.Duration) (time.Duration, error) {
	valStr := os.Getenv(envKey)
	if valStr == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format for %s: %w", envKey, err)
	}
	return d, nil
}

// Helper function to parse int from environment variable
func getInt(envKey string, defaultVal int) (int, error) {
	valStr := os.Getenv(envKey)
	if valStr == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid integer format for %s: %w", envKey, err)
	}
	return i, nil
}

// extractPort extracts the numeric port from a listen address (e.g., ":8080" -> 8080)
func extractPort(listenAddr string) (int, error) {
	_, portStr, err := net.SplitHostPort(listenAddr)
	if err != nil {
		if strings.HasPrefix(listenAddr, ":") {
			portStr = strings.TrimPrefix(listenAddr, ":")
		} else {
			return 0, fmt.Errorf("invalid ListenAddr format for port extraction: %w", err)
		}
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number '%s': %w", portStr, err)
	}
	return port, nil
}
