// game/updater/leaderboard_refresher.go
package updater

import (
	"context"
	"log"
	"time"

	"github.com/ordemrpg/go-services/game/service"
)

// LeaderboardRefresher periodically re-warms the cached public leaderboards
// so reads stay cheap and the boards never go stale past one refresh
// interval plus the cache TTL.
type LeaderboardRefresher struct {
	rankingService *service.RankingService
	interval       time.Duration
	stopChan       chan struct{}
	doneChan       chan struct{}
}

// NewLeaderboardRefresher creates a new LeaderboardRefresher instance.
func NewLeaderboardRefresher(rs *service.RankingService, interval time.Duration) *LeaderboardRefresher {
	return &LeaderboardRefresher{
		rankingService: rs,
		interval:       interval,
		stopChan:       make(chan struct{}),
		doneChan:       make(chan struct{}),
	}
}

// Start begins the refresh loop in a goroutine.
func (lr *LeaderboardRefresher) Start() {
	log.Printf("Starting leaderboard refresher (interval: %v)...", lr.interval)
	go lr.run()
}

// Stop signals the refresher to stop and waits for the loop to exit.
func (lr *LeaderboardRefresher) Stop() {
	close(lr.stopChan)
	<-lr.doneChan
	log.Println("Leaderboard refresher stopped.")
}

func (lr *LeaderboardRefresher) run() {
	defer close(lr.doneChan)

	ticker := time.NewTicker(lr.interval)
	defer ticker.Stop()

	lr.refresh()

	for {
		select {
		case <-ticker.C:
			lr.refresh()
		case <-lr.stopChan:
			return
		}
	}
}

func (lr *LeaderboardRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lr.rankingService.RefreshPublicBoards(ctx)
}
