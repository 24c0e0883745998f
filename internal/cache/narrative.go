// Package cache provides an optional Redis-backed cache for generated
// narratives. Market data is never cached; only generator output keyed by
// the exact prompt, which already embeds the fresh indicator values.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NarrativeCache caches generator responses by prompt hash. A nil cache is
// valid and means caching is disabled.
type NarrativeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewNarrativeCache connects to Redis and returns a cache. Returns nil if
// Redis is unreachable; callers treat a nil cache as a no-op.
func NewNarrativeCache(addr, password string, ttl time.Duration) *NarrativeCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("narrative cache disabled, redis unreachable at %s: %v", addr, err)
		return nil
	}

	return &NarrativeCache{client: client, ttl: ttl}
}

// Get returns the cached narrative for a prompt, if present.
func (c *NarrativeCache) Get(ctx context.Context, prompt string) (string, bool) {
	if c == nil {
		return "", false
	}
	text, err := c.client.Get(ctx, cacheKey(prompt)).Result()
	if err != nil {
		return "", false
	}
	return text, true
}

// Set stores a narrative for a prompt. Failures are logged and ignored; the
// cache is best-effort.
func (c *NarrativeCache) Set(ctx context.Context, prompt, text string) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(prompt), text, c.ttl).Err(); err != nil {
		log.Printf("failed to cache narrative: %v", err)
	}
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf("narrative:%s", hex.EncodeToString(sum[:]))
}
