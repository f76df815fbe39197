//go:build integration

package containers

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"saku/internal/platform/config"
	"saku/internal/platform/redis"
)

// RulesKey is the key the Redis container keeps its rule document under.
const RulesKey = "saku:test:rules"

// RedisContainer wraps a testcontainers Redis instance connected through
// the platform client, with helpers for the rule document key.
type RedisContainer struct {
	Container testcontainers.Container
	Config    config.RedisConfig
	Client    *redis.Client
}

// NewRedisContainer starts a new Redis container.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}

	url, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get redis connection string: %v", err)
	}

	cfg := config.RedisConfig{
		URL:         url,
		RulesKey:    RulesKey,
		PoolSize:    4,
		DialTimeout: 5 * time.Second,
	}
	client, err := redis.New(ctx, cfg)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to redis: %v", err)
	}

	return &RedisContainer{
		Container: container,
		Config:    cfg,
		Client:    client,
	}
}

// SeedRules stores a raw rule document under the rules key.
func (r *RedisContainer) SeedRules(ctx context.Context, document string) error {
	return r.Client.Set(ctx, r.Config.RulesKey, document, 0).Err()
}

// Rules returns the raw document under the rules key. ok is false when the
// key is unset.
func (r *RedisContainer) Rules(ctx context.Context) (string, bool, error) {
	doc, err := r.Client.Get(ctx, r.Config.RulesKey).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc, true, nil
}

// Reset deletes the rules key so each test starts without a document.
func (r *RedisContainer) Reset(ctx context.Context) error {
	return r.Client.Del(ctx, r.Config.RulesKey).Err()
}
