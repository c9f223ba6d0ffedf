// game/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	gameapi "github.com/ordemrpg/go-services/game/api"
	"github.com/ordemrpg/go-services/game/service"
	"github.com/ordemrpg/go-services/game/store"
	"github.com/ordemrpg/go-services/game/updater"
	"github.com/ordemrpg/go-services/shared/api"
	"github.com/ordemrpg/go-services/shared/auth"
	"github.com/ordemrpg/go-services/shared/config"
	"github.com/ordemrpg/go-services/shared/mongodb"
	"github.com/ordemrpg/go-services/shared/redis"
	"github.com/ordemrpg/go-services/shared/registry"
)

const serviceType = "game-service"

func main() {
	log.Println("Starting Game Service...")

	cfg, err := config.LoadGameServiceConfig()
	if err != nil {
		log.Fatalf("Failed to load game service config: %v", err)
	}
	log.Printf("Game Service configuration loaded. Listen Address: %s, MongoDB Database: %s",
		cfg.ListenAddr, cfg.MongoDBDatabase)
	if len(cfg.MasterEmails) == 0 {
		log.Println("WARN: MASTER_EMAILS is empty; master-only endpoints will reject everyone.")
	}

	// --- MongoDB ---
	mongoClient, err := mongodb.NewClient(cfg.MongoDBConnStr, cfg.MongoDBDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Printf("ERROR: Failed to disconnect from MongoDB: %v", err)
		}
	}()

	// --- Redis (leaderboard cache + service registry) ---
	redisClient, err := redis.NewRedisClusterClient(cfg.RedisAddrs, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to connect to Redis cluster: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("ERROR: Failed to close Redis client: %v", err)
		}
	}()

	// --- Stores ---
	profilesColl := mongoClient.Collection(cfg.MongoDBProfilesCollection)
	profileStore := store.NewProfileStore(profilesColl)
	characterStore := store.NewProfileStore(mongoClient.Collection(cfg.MongoDBCharactersColl))
	shopStore := store.NewShopStore(mongoClient.Collection(cfg.MongoDBShopItemsCollection))
	agentStore := store.NewAgentStore(
		mongoClient.Collection(cfg.MongoDBAgentsCollection),
		mongoClient.Collection(cfg.MongoDBRecruitedCollection),
	)
	missionStore := store.NewMissionStore(mongoClient.Collection(cfg.MongoDBMissionsCollection))
	teamStore := store.NewTeamStore(mongoClient.Collection(cfg.MongoDBTeamsCollection))
	rankingStore := store.NewRankingStore(profilesColl)
	leaderboardCache := store.NewLeaderboardCache(redisClient, cfg.LeaderboardCacheTTL)

	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := profileStore.EnsureIndexes(ctx); err != nil {
			cancel()
			log.Fatalf("Failed to ensure profile indexes: %v", err)
		}
		if err := characterStore.EnsureIndexes(ctx); err != nil {
			cancel()
			log.Fatalf("Failed to ensure character indexes: %v", err)
		}
		cancel()
	}

	// --- Services ---
	profileService := service.NewProfileService(profileStore)
	characterService := service.NewProfileService(characterStore)
	shopService := service.NewShopService(shopStore, profileStore, agentStore)
	missionService := service.NewMissionService(missionStore, profileStore)
	teamService := service.NewTeamService(teamStore)
	rankingService := service.NewRankingService(rankingStore, leaderboardCache, cfg.LeaderboardSize)

	// --- HTTP server ---
	baseServer := api.NewBaseServer(cfg.ListenAddr, log.Default())
	baseServer.Router.Use(auth.Middleware(cfg.MasterEmails))

	handlers := gameapi.NewGameAPIHandlers(
		profileService, characterService, shopService, missionService, teamService, rankingService)
	handlers.RegisterRoutes(baseServer.Router)

	// --- Background workers ---
	registrar := registry.NewServiceRegistrar(redisClient, serviceType, &cfg.CommonConfig)
	registrar.Start()
	defer registrar.Stop()

	refresher := updater.NewLeaderboardRefresher(rankingService, cfg.LeaderboardRefreshInterval)
	refresher.Start()
	defer refresher.Stop()

	go func() {
		if err := baseServer.Start(); err != nil {
			log.Fatalf("Game Service HTTP server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down Game Service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := baseServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: HTTP server shutdown failed: %v", err)
	}
	log.Println("Game Service stopped.")
}
