package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// TokenDenylist remembers revoked token ids until the token would have
// expired anyway.
type TokenDenylist struct {
	client *redis.Client
	now    func() time.Time
}

func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client, now: time.Now}
}

// Revoke marks jti as revoked. It reports false when jti was already on
// the list, which lets refresh rotation detect a replayed token.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return true, nil
	}
	fresh, err := d.client.SetNX(ctx, revokedKeyPrefix+jti, 1, ttl).Result()
	if err != nil {
		return false, wrapErr("revoke token", err)
	}
	return fresh, nil
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, wrapErr("check revoked token", err)
	}
	return n > 0, nil
}
