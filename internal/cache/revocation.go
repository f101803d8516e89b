package cache

import (
	"context"
	"time"

	"forkful/internal/observability"
)

// RevokeToken marks a token's jti as revoked until the token would have
// expired anyway. Revocation lives in Redis so it survives restarts and is
// shared across instances; the TTL keeps the store bounded.
func RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || jti == "" || ttl <= 0 {
		return nil
	}
	if err := client.Set(ctx, revokedTokenKey(jti), "1", ttl).Err(); err != nil {
		return err
	}
	observability.TokensRevoked.Inc()
	return nil
}

// IsTokenRevoked reports whether the jti has been revoked. Errors fail open:
// an unreachable Redis must not lock every user out.
func IsTokenRevoked(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	n, err := client.Exists(ctx, revokedTokenKey(jti)).Result()
	if err != nil {
		return false
	}
	return n > 0
}
