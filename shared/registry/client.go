// shared/registry/client.go
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RegistryClient reads the service registry. It is separate from the
// ServiceRegistrar so that consumers (proxies, tools) can discover instances
// without registering themselves.
type RegistryClient struct {
	redisClient    *redis.ClusterClient
	serviceTimeout time.Duration
}

// NewRegistryClient takes an already initialized *redis.ClusterClient.
func NewRegistryClient(redisClient *redis.ClusterClient, serviceTimeout time.Duration) *RegistryClient {
	return &RegistryClient{
		redisClient:    redisClient,
		serviceTimeout: serviceTimeout,
	}
}

// GetActiveServices retrieves the active instances for a service type, keyed
// by instance ID. Instances whose last heartbeat is older than the configured
// timeout are filtered out.
func (rc *RegistryClient) GetActiveServices(ctx context.Context, serviceType string) (map[string]ServiceInfo, error) {
	key := fmt.Sprintf("%s%s", RedisRegistryHashPrefix, serviceType)
	results, err := rc.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get all services of type %s from Redis: %w", serviceType, err)
	}

	activeServices := make(map[string]ServiceInfo)
	currentTime := time.Now()

	for instanceID, infoJSON := range results {
		var info ServiceInfo
		if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
			log.Printf("WARN: RegistryClient: failed to unmarshal ServiceInfo for ID %s (type %s): %v", instanceID, serviceType, err)
			continue // Skip malformed entries; the registrar's cleanup loop removes them.
		}
		if currentTime.Sub(time.UnixMilli(info.LastSeen)) <= rc.serviceTimeout {
			activeServices[instanceID] = info
		}
	}
	return activeServices, nil
}
