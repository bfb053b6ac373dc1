package store

import (
	"context"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/rs/zerolog"

	"github.com/mrz1836/syncstatus/internal/ctxutil"
	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
)

// Hash fields of the outcome.
const (
	fieldAt     = "at"
	fieldFailed = "failed"
)

const (
	redisMaxIdle     = 2
	redisIdleTimeout = 4 * time.Minute
	redisDialTimeout = 3 * time.Second
)

// RedisStore keeps the outcome in a redis hash so several machines can
// share one "last synced" value.
type RedisStore struct {
	pool   *redis.Pool
	key    string
	logger zerolog.Logger
}

// NewRedisStore wraps an existing pool.
func NewRedisStore(pool *redis.Pool, key string, logger zerolog.Logger) *RedisStore {
	return &RedisStore{pool: pool, key: key, logger: logger}
}

// OpenRedis dials url and verifies the server answers PING.
func OpenRedis(ctx context.Context, url, key string, logger zerolog.Logger) (*RedisStore, error) {
	pool := &redis.Pool{
		MaxIdle:     redisMaxIdle,
		IdleTimeout: redisIdleTimeout,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialURLContext(ctx, url, redis.DialConnectTimeout(redisDialTimeout))
		},
	}

	conn, err := pool.GetContext(ctx)
	if err != nil {
		_ = pool.Close()
		return nil, errors.Wrapf(errors.ErrStoreUnavailable, "dial redis: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := redis.DoContext(conn, ctx, "PING"); err != nil {
		_ = pool.Close()
		return nil, errors.Wrapf(errors.ErrStoreUnavailable, "ping redis: %v", err)
	}

	return NewRedisStore(pool, key, logger), nil
}

// Read implements LastSync.
func (s *RedisStore) Read() domain.SyncOutcome {
	conn := s.pool.Get()
	defer func() { _ = conn.Close() }()

	values, err := redis.Int64Map(conn.Do("HGETALL", s.key))
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to read last sync outcome")
		return domain.SyncOutcome{}
	}
	return domain.NewSyncOutcome(values[fieldAt], values[fieldFailed] == 1)
}

// Record implements LastSync.
func (s *RedisStore) Record(ctx context.Context, outcome domain.SyncOutcome) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	outcome = outcome.Normalize()

	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrStoreUnavailable, "redis: %v", err)
	}
	defer func() { _ = conn.Close() }()

	failed := 0
	if outcome.Failed {
		failed = 1
	}
	if _, err := redis.DoContext(conn, ctx, "HSET", s.key,
		fieldAt, outcome.LastSyncedAtMillis,
		fieldFailed, failed,
	); err != nil {
		return errors.Wrap(err, "failed to record sync outcome")
	}
	return nil
}

// Close implements LastSync.
func (s *RedisStore) Close() error {
	return s.pool.Close()
}
