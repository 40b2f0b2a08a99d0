package collaborators

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"trustlens/config"
	"trustlens/types"
)

const verdictKeyPrefix = "trustlens:verdict:"

// VerdictCache caches fact-check results in Redis keyed by a hash of the
// claim text, so repeated claims across requests skip the model call. A nil
// cache is valid and does nothing.
type VerdictCache struct {
	client *redis.Client
}

// NewVerdictCache connects to Redis using REDIS_ADDR (and optional
// REDIS_PASSWORD). Returns nil when Redis is not configured; callers treat a
// nil cache as disabled.
func NewVerdictCache() *VerdictCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	return &VerdictCache{client: client}
}

func verdictKey(claim string) string {
	return verdictKeyPrefix + types.GenerateID(claim)
}

// Get returns the cached result for a claim, if any.
func (c *VerdictCache) Get(ctx context.Context, claim string) (FactCheckResult, bool) {
	if c == nil || c.client == nil {
		return FactCheckResult{}, false
	}

	raw, err := c.client.Get(ctx, verdictKey(claim)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Warning: verdict cache get failed: %v", err)
		}
		return FactCheckResult{}, false
	}

	var out FactCheckResult
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("Warning: verdict cache entry corrupt, dropping: %v", err)
		c.client.Del(ctx, verdictKey(claim))
		return FactCheckResult{}, false
	}
	return out, true
}

// Set stores a result with the configured TTL. Best-effort only.
func (c *VerdictCache) Set(ctx context.Context, claim string, result FactCheckResult) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, verdictKey(claim), raw, config.VerdictCacheTTL).Err(); err != nil {
		log.Printf("Warning: verdict cache set failed: %v", err)
	}
}

// Close releases the Redis connection.
func (c *VerdictCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Ping verifies connectivity, used at startup for a clear log line.
func (c *VerdictCache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("verdict cache not configured")
	}
	return c.client.Ping(ctx).Err()
}
