package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redhat-data-and-ai/adlookup/pkg/cache/inmemory"
	"github.com/redhat-data-and-ai/adlookup/pkg/cache/redis"
)

var (
	// ErrInvalidCacheDriver is returned when an invalid cache driver is provided
	ErrInvalidCacheDriver = errors.New("invalid cache driver")
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"

	NoExpiration = -1 * time.Second
)

// Cache implements a generic interface for cache clients
type Cache interface {
	// Get returns the value for the given key
	// returns an error if the key was not found
	Get(ctx context.Context, key string) (interface{}, error)

	// GetByPattern returns every key matching the glob pattern with its value
	GetByPattern(ctx context.Context, keyPattern string) (map[string]interface{}, error)

	// Set sets the value for the given key
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Delete deletes the value for the given key, missing keys are not an error
	Delete(ctx context.Context, key string) error
}

// Config is the configuration for the cache client
type Config struct {
	// Driver is the type of cache client, memory when empty
	Driver string `yaml:"driver"`

	// InMemory is the configuration for the inmemory cache client
	InMemory *inmemory.Config `yaml:"inmemory"`

	// Redis is the configuration for the redis client
	Redis *redis.Config `yaml:"redis"`
}

// New returns a new cache client
func New(config *Config) (Cache, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	switch config.Driver {
	case DriverMemory, "":
		return inmemory.NewCache(config.InMemory)
	case DriverRedis:
		return redis.NewCache(config.Redis)
	default:
		return nil, ErrInvalidCacheDriver
	}
}
