package redis

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/blogplatform/blog/internal/core/domain"
)

// DefaultGuardTTL is how long an accepted contact message blocks identical resubmissions.
const DefaultGuardTTL = 10 * time.Minute

// SubmissionGuard rejects repeated contact-form submissions backed by Redis.
// Key format: msgdup:<blake2b-256 hex of email|subject|content>
type SubmissionGuard struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSubmissionGuard creates a guard wrapping the given Redis client. A
// non-positive ttl falls back to DefaultGuardTTL.
func NewSubmissionGuard(client redis.Cmdable, ttl time.Duration) *SubmissionGuard {
	if ttl <= 0 {
		ttl = DefaultGuardTTL
	}
	return &SubmissionGuard{client: client, ttl: ttl}
}

// IsDuplicate reports whether an identical message was accepted within the TTL.
func (g *SubmissionGuard) IsDuplicate(ctx context.Context, msg *domain.Message) (bool, error) {
	n, err := g.client.Exists(ctx, Fingerprint(msg)).Result()
	if err != nil {
		return false, fmt.Errorf("submission check: %w", err)
	}
	return n > 0, nil
}

// Mark records an accepted message (expires after the guard TTL).
func (g *SubmissionGuard) Mark(ctx context.Context, msg *domain.Message) error {
	if err := g.client.Set(ctx, Fingerprint(msg), "1", g.ttl).Err(); err != nil {
		return fmt.Errorf("submission mark: %w", err)
	}
	return nil
}

// Fingerprint returns the Redis key for msg. Email is compared case-insensitively.
func Fingerprint(msg *domain.Message) string {
	payload := strings.ToLower(strings.TrimSpace(msg.Email)) + "|" +
		strings.TrimSpace(msg.Subject) + "|" +
		strings.TrimSpace(msg.Content)
	sum := blake2b.Sum256([]byte(payload))
	return "msgdup:" + hex.EncodeToString(sum[:])
}
