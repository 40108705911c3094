package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Google ID tokens live for one hour, so a remembered credential can expire with them.
const replayTTL = time.Hour

// ReplayGuard remembers external login credentials that were already exchanged.
// Key format: gcred:<sha256 of credential>
type ReplayGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReplayGuard creates a ReplayGuard wrapping the given Redis client.
func NewReplayGuard(client *redis.Client) *ReplayGuard {
	return &ReplayGuard{client: client, ttl: replayTTL}
}

// FirstUse atomically records the credential and reports whether it was unseen.
func (g *ReplayGuard) FirstUse(ctx context.Context, credential string) (bool, error) {
	ok, err := g.client.SetNX(ctx, replayKey(credential), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("replay guard: %w", err)
	}
	return ok, nil
}

// The raw credential is a bearer secret and never lands in Redis.
func replayKey(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return "gcred:" + hex.EncodeToString(sum[:])
}
