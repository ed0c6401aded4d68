package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "auth:denylist:"

// TokenDenylist stores revoked token IDs (jti) in Redis until their natural
// expiry. Logout adds the token; the auth middleware rejects denylisted ones.
type TokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist builds a denylist backed by the given Redis client.
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Revoke marks the token ID as revoked until expiresAt.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if d == nil || d.client == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token ID has been revoked. Redis being
// unreachable fails open so that a cache outage does not lock everyone out.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) bool {
	if d == nil || d.client == nil {
		return false
	}
	exists, err := d.client.Exists(ctx, denylistPrefix+tokenID).Result()
	if err != nil {
		return false
	}
	return exists > 0
}
