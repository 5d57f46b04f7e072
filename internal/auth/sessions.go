package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/callboard/callboard-backend/internal/shared"
)

const sessionKeyPrefix = "login:"

// SessionRegistry tracks active login sessions in redis, keyed by the
// token jti. A token whose jti is no longer present is treated as
// revoked even if its signature is still valid.
type SessionRegistry struct {
	redis *redis.Client
}

func NewSessionRegistry(redisClient *redis.Client) *SessionRegistry {
	return &SessionRegistry{redis: redisClient}
}

func (r *SessionRegistry) Register(ctx context.Context, jti string, userID uint, ttl time.Duration) error {
	return r.redis.Set(ctx, sessionKeyPrefix+jti, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (r *SessionRegistry) IsActive(ctx context.Context, jti string) (bool, error) {
	n, err := r.redis.Exists(ctx, sessionKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Validate returns shared.ErrSessionRevoked when the session behind
// jti is no longer registered.
func (r *SessionRegistry) Validate(ctx context.Context, jti string) error {
	active, err := r.IsActive(ctx, jti)
	if err != nil {
		return err
	}
	if !active {
		return shared.ErrSessionRevoked
	}
	return nil
}

func (r *SessionRegistry) Revoke(ctx context.Context, jti string) error {
	return r.redis.Del(ctx, sessionKeyPrefix+jti).Err()
}
