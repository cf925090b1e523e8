// Package tokencache provides server-side token revocation on top of Redis.
//
// JWTs are stateless, so revoking a session before its natural expiry
// needs an external record. The denylist stores, per account, the moment
// all previously issued tokens became invalid; verification compares the
// token's issued-at claim against it.
package tokencache

import (
	"context"
	"strconv"
	"time"

	"github.com/hexanode/accounts/internal/constants"
	"github.com/hexanode/accounts/pkg/redis"
)

type Denylist struct {
	client *redis.Client
	// ttl bounds how long a revocation entry is kept; anything issued
	// before it has expired on its own by then.
	ttl time.Duration
}

// NewDenylist creates a denylist whose entries outlive the longest-lived
// token (pass the refresh TTL).
func NewDenylist(client *redis.Client, ttl time.Duration) *Denylist {
	return &Denylist{client: client, ttl: ttl}
}

func key(userID uint) string {
	return constants.CacheKeyRevoked + strconv.FormatUint(uint64(userID), 10)
}

// RevokeAll invalidates every token issued to the account before now.
// Called on logout and on password change.
func (d *Denylist) RevokeAll(ctx context.Context, userID uint) error {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	return d.client.Set(ctx, key(userID), now, d.ttl)
}

// revokedBy compares a token's issued-at claim against the revocation
// instant. JWT iat carries whole seconds only, so the comparison excludes
// the revocation second itself: a login in the same second as a logout
// must not mint tokens that are dead on arrival.
func revokedBy(issuedAt, revokedAt time.Time) bool {
	return issuedAt.Before(revokedAt.Truncate(time.Second))
}

// IsRevoked reports whether a token issued at issuedAt has been revoked.
// With Redis unavailable the answer is always false (stateless fallback).
func (d *Denylist) IsRevoked(ctx context.Context, userID uint, issuedAt time.Time) (bool, error) {
	val, ok, err := d.client.Get(ctx, key(userID))
	if err != nil || !ok {
		return false, err
	}

	revokedAt, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, nil
	}

	return revokedBy(issuedAt, time.Unix(revokedAt, 0)), nil
}
