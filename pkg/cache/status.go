package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redhat-data-and-ai/adlookup/pkg/common/structs"
)

const accountStatusPrefix = "account_status:"

// StatusStore keeps the last known AccountStatus per user.
type StatusStore struct {
	cache Cache
	ttl   time.Duration
}

// NewStatusStore stores statuses in c, expiring them after ttl (NoExpiration keeps them).
func NewStatusStore(c Cache, ttl time.Duration) *StatusStore {
	return &StatusStore{cache: c, ttl: ttl}
}

func statusKey(username string) string {
	return accountStatusPrefix + strings.ToLower(username)
}

// Save stores status under its username.
func (s *StatusStore) Save(ctx context.Context, status *structs.AccountStatus) error {
	b, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal account status: %w", err)
	}
	return s.cache.Set(ctx, statusKey(status.Username), string(b), s.ttl)
}

// Load returns the stored status of username.
func (s *StatusStore) Load(ctx context.Context, username string) (*structs.AccountStatus, error) {
	val, err := s.cache.Get(ctx, statusKey(username))
	if err != nil {
		return nil, err
	}
	return decodeStatus(val)
}

// List returns every stored status keyed by lower-cased username.
func (s *StatusStore) List(ctx context.Context) (map[string]*structs.AccountStatus, error) {
	values, err := s.cache.GetByPattern(ctx, accountStatusPrefix+"*")
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]*structs.AccountStatus, len(values))
	for key, val := range values {
		status, err := decodeStatus(val)
		if err != nil {
			return nil, fmt.Errorf("invalid account status under %s: %w", key, err)
		}
		statuses[strings.TrimPrefix(key, accountStatusPrefix)] = status
	}
	return statuses, nil
}

// Remove drops the stored status of username.
func (s *StatusStore) Remove(ctx context.Context, username string) error {
	return s.cache.Delete(ctx, statusKey(username))
}

func decodeStatus(val interface{}) (*structs.AccountStatus, error) {
	str, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("account status is not a string: %T", val)
	}
	var status structs.AccountStatus
	if err := json.Unmarshal([]byte(str), &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account status: %w", err)
	}
	return &status, nil
}
