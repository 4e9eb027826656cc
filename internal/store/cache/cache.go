// Package cache implements the local fallback cache store: a durable
// key-value shadow of the remote store, one key per entity type, JSON
// serialized, no TTL or eviction. Entries persist until overwritten.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/23BCE0066/Hirely/internal/common/errors"
	"github.com/23BCE0066/Hirely/internal/common/logger"
)

type Store struct {
	rdb    *redis.Client
	prefix string
	log    logger.Logger
}

func New(rdb *redis.Client, keyPrefix string, log logger.Logger) *Store {
	return &Store{
		rdb:    rdb,
		prefix: keyPrefix,
		log:    log.WithFields(map[string]interface{}{"component": "cache"}),
	}
}

func (s *Store) key(entity string) string {
	return fmt.Sprintf("%s:%s", s.prefix, entity)
}

// Read unmarshals the cached list for entity into out, which must be a
// pointer to a slice. A missing key or corrupt payload yields an empty
// list, never an error; only a transport-level failure is returned.
func (s *Store) Read(ctx context.Context, entity string, out any) error {
	raw, err := s.rdb.Get(ctx, s.key(entity)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return apperrors.NewCacheUnavailable(err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Warn("discarding corrupt cache entry", map[string]interface{}{
			"entity": entity,
			"error":  err.Error(),
		})
		return nil
	}
	return nil
}

// WriteAll replaces the cached list for entity. No TTL is set.
func (s *Store) WriteAll(ctx context.Context, entity string, list any) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal %s cache entry: %w", entity, err)
	}
	if err := s.rdb.Set(ctx, s.key(entity), data, 0).Err(); err != nil {
		return apperrors.NewCacheUnavailable(err)
	}
	return nil
}
