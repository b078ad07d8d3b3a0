package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrStoreUnavailable wraps any failure talking to the blacklist store
var ErrStoreUnavailable = errors.New("token store unavailable")

const blacklistMarker = "blacklisted"

//go:generate mockgen -source=blacklist.go -destination=../../mocks/token_blacklist.go -package=mocks

// TokenBlacklist records revoked access tokens until they would expire anyway
type TokenBlacklist interface {
	Put(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
}

// RedisTokenBlacklist stores one key per revoked token in its own logical database
type RedisTokenBlacklist struct {
	client redis.Cmdable
}

func NewRedisTokenBlacklist(client redis.Cmdable) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// Put revokes token for ttl. A non-positive ttl means the token is already
// expired and nothing is written.
func (b *RedisTokenBlacklist) Put(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := b.client.Set(ctx, token, blacklistMarker, ttl).Err(); err != nil {
		log.Error().Err(err).Msg("Error blacklisting token")
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (b *RedisTokenBlacklist) Exists(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, token).Result()
	if err != nil {
		log.Error().Err(err).Msg("Error checking token blacklist")
		return false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return n > 0, nil
}
