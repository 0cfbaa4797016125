package packages

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	listKey     = "pkg:list"     // public listing snapshot
	featuredKey = "pkg:featured" // random sample shown on the landing page
	listTTL     = 5 * time.Minute
	featuredTTL = 24 * time.Hour
)

// ErrCacheMiss is returned when no snapshot is stored.
var ErrCacheMiss = errors.New("cache miss")

// Cache holds short-lived snapshots of the public package reads. Only
// public, non-authorization data goes through here; role and auth state
// are never cached.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) GetList(ctx context.Context) ([]TourPackage, error) {
	return c.get(ctx, listKey)
}

func (c *Cache) SetList(ctx context.Context, pkgs []TourPackage) error {
	return c.set(ctx, listKey, pkgs, listTTL)
}

func (c *Cache) GetFeatured(ctx context.Context) ([]TourPackage, error) {
	return c.get(ctx, featuredKey)
}

func (c *Cache) SetFeatured(ctx context.Context, pkgs []TourPackage) error {
	return c.set(ctx, featuredKey, pkgs, featuredTTL)
}

// Invalidate drops all snapshots. Called after any package write.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, listKey, featuredKey).Err()
}

func (c *Cache) get(ctx context.Context, key string) ([]TourPackage, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var pkgs []TourPackage
	if err := json.Unmarshal(data, &pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (c *Cache) set(ctx context.Context, key string, pkgs []TourPackage, ttl time.Duration) error {
	data, err := json.Marshal(pkgs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}
