package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// AnswerCache caches finished answers keyed by the normalized question, so
// repeated questions skip the model entirely. A nil *AnswerCache is a valid,
// always-missing cache: Redis stays optional.
type AnswerCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAnswerCache(rdb *redis.Client, ttl time.Duration) *AnswerCache {
	return &AnswerCache{rdb: rdb, ttl: ttl}
}

func cacheKey(question string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(question)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return "answer:" + hex.EncodeToString(sum[:])
}

// Get returns the cached payload and whether it was present.
func (c *AnswerCache) Get(ctx context.Context, question string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, cacheKey(question)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *AnswerCache) Set(ctx context.Context, question, payload string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, cacheKey(question), payload, c.ttl).Err()
}
