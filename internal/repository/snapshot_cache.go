package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hazard_duel/internal/domain"

	redis "github.com/redis/go-redis/v9"
)

// SnapshotCache keeps recent game snapshots in redis under game:<id>.
// A nil client turns every call into a miss.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

func snapshotKey(id string) string {
	return "game:" + id
}

func (c *SnapshotCache) Set(ctx context.Context, g *domain.Game) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, snapshotKey(g.ID), data, c.ttl).Err()
}

// Get returns domain.ErrGameNotFound on a miss.
func (c *SnapshotCache) Get(ctx context.Context, id string) (*domain.Game, error) {
	if c.client == nil {
		return nil, domain.ErrGameNotFound
	}
	data, err := c.client.Get(ctx, snapshotKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	var g domain.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *SnapshotCache) Del(ctx context.Context, id string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, snapshotKey(id)).Err()
}
