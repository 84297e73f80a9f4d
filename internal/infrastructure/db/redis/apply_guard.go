package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const applyGuardTTL = 10 * time.Second

// ApplyGuard holds a short-lived in-flight marker per (job, user) so that a
// double-clicked apply is turned away before it reaches MongoDB.
// Key format: apply:<job_id>:<user_id>
type ApplyGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewApplyGuard creates an ApplyGuard wrapping the given Redis client.
func NewApplyGuard(client *redis.Client) *ApplyGuard {
	return &ApplyGuard{client: client, ttl: applyGuardTTL}
}

// Acquire reports whether the caller now holds the marker. The marker expires
// on its own if Release is never called.
func (g *ApplyGuard) Acquire(ctx context.Context, jobID, userID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(jobID, userID), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("apply guard acquire: %w", err)
	}
	return ok, nil
}

func (g *ApplyGuard) Release(ctx context.Context, jobID, userID string) error {
	if err := g.client.Del(ctx, g.key(jobID, userID)).Err(); err != nil {
		return fmt.Errorf("apply guard release: %w", err)
	}
	return nil
}

func (g *ApplyGuard) key(jobID, userID string) string {
	return fmt.Sprintf("apply:%s:%s", jobID, userID)
}
