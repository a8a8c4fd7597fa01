package inmemory

import (
	"context"
	"fmt"
	"path"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// InMemoryCache holds the handler for the in-memory cache using go-cache
type InMemoryCache struct {
	client *gocache.Cache
}

// Config is the configuration for the in-memory cache, both values in seconds
type Config struct {
	DefaultExpiration int32 `yaml:"defaultExpiration"`
	CleanupInterval   int32 `yaml:"cleanupInterval"`
}

// NewCache returns an in-memory cache, never expiring entries when config is nil
func NewCache(config *Config) (*InMemoryCache, error) {
	if config == nil {
		config = getDefaultConfig()
	}

	defaultExpiration := time.Duration(config.DefaultExpiration) * time.Second
	cleanupExpiration := time.Duration(config.CleanupInterval) * time.Second

	return &InMemoryCache{
		client: gocache.New(defaultExpiration, cleanupExpiration),
	}, nil
}

// Set implements Cache.
func (imc *InMemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	imc.client.Set(key, value, ttl)
	return nil
}

// Get implements Cache.
func (imc *InMemoryCache) Get(_ context.Context, key string) (interface{}, error) {
	val, found := imc.client.Get(key)
	if !found {
		return "", fmt.Errorf("key not found")
	}
	return val, nil
}

// GetByPattern implements Cache. Patterns use the same glob syntax as redis SCAN MATCH.
func (imc *InMemoryCache) GetByPattern(_ context.Context, keyPattern string) (map[string]interface{}, error) {
	values := make(map[string]interface{})
	for key, item := range imc.client.Items() {
		matched, err := path.Match(keyPattern, key)
		if err != nil {
			return nil, fmt.Errorf("invalid key pattern %q: %w", keyPattern, err)
		}
		if matched {
			values[key] = item.Object
		}
	}
	return values, nil
}

// Delete implements Cache.
func (imc *InMemoryCache) Delete(_ context.Context, key string) error {
	imc.client.Delete(key)
	return nil
}

// Flush removes every key.
func (imc *InMemoryCache) Flush(_ context.Context) {
	imc.client.Flush()
}

func getDefaultConfig() *Config {
	return &Config{
		DefaultExpiration: -1,
		CleanupInterval:   -1,
	}
}
