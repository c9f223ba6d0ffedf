// shared/registry/constants.go
package registry

const (
	// RedisRegistryHashPrefix is the prefix for the Redis hash keys holding
	// service registration data. Full key format: "services:<serviceType>".
	RedisRegistryHashPrefix = "services:"
)
