package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"saku/internal/rules"
	dErrors "saku/pkg/domain-errors"
	"saku/pkg/platform/sentinel"
)

// DefaultRedisKey holds the rule document when no key is configured.
const DefaultRedisKey = "saku:rules"

// Redis keeps the whole YAML document under a single key.
type Redis struct {
	client redis.Cmdable
	key    string
}

// NewRedis constructs a Redis-backed rule store.
func NewRedis(client redis.Cmdable, key string) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	return &Redis{client: client, key: key}
}

func (r *Redis) Name() string {
	return "redis:" + r.key
}

// Read decodes the stored document; a missing key is an empty rule set.
func (r *Redis) Read(ctx context.Context) (rules.RuleSet, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return rules.RuleSet{}, nil
		}
		return nil, dErrors.Wrap(fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err), dErrors.CodeInternal, "read rule document from redis")
	}
	return rules.Decode(data, r.Name())
}

// Save replaces the stored document.
func (r *Redis) Save(ctx context.Context, doc rules.Document) error {
	data, err := rules.Encode(doc)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("store rule document in redis: %w", err)
	}
	return nil
}
