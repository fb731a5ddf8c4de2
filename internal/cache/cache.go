package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fhuszti/event-medias-go/internal/port"
	"github.com/redis/go-redis/v9"
)

const (
	catalogKey        = "catalog:assets"
	catalogEtagKey    = "catalog:assets:etag"
	catalogVersionKey = "catalog:assets:version"
)

var errStaleCatalog = errors.New("catalog version moved")

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

// Ping checks the connection so a misconfigured REDIS_ADDR shows up at startup.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) GetCatalog(ctx context.Context) ([]byte, error) {
	val, err := c.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) GetEtagCatalog(ctx context.Context) (string, error) {
	val, err := c.client.Get(ctx, catalogEtagKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

// CatalogVersion returns the invalidation counter, 0 before the first write.
func (c *Cache) CatalogVersion(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, catalogVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get failed: %w", err)
	}
	return v, nil
}

// SetCatalog stores the listing and its etag together, but only while the
// version still matches the one read before the listing was loaded.
func (c *Cache) SetCatalog(ctx context.Context, version int64, data []byte, etag string, ttl time.Duration) {
	log.Printf("caching catalog listing for %s...", ttl)

	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, catalogVersionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != version {
			return errStaleCatalog
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, catalogKey, data, ttl)
			pipe.Set(ctx, catalogEtagKey, etag, ttl)
			return nil
		})
		return err
	}, catalogVersionKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleCatalog), errors.Is(err, redis.TxFailedErr):
		log.Printf("catalog changed while it was loaded, not caching it")
	default:
		log.Printf("redis set failed for catalog: %v", err)
	}
}

// DeleteCatalog bumps the version, then drops both the listing and its etag.
func (c *Cache) DeleteCatalog(ctx context.Context) error {
	log.Printf("invalidating cached catalog listing...")

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, catalogVersionKey)
		pipe.Del(ctx, catalogKey, catalogEtagKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
