package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps sessions and password reset codes.
type Store interface {
	SaveSession(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	SessionUser(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error

	SaveResetCode(ctx context.Context, email, hash string, ttl time.Duration) error
	ResetCode(ctx context.Context, email string) (hash string, attempts int, err error)
	IncrResetAttempts(ctx context.Context, email string) error
	DeleteResetCode(ctx context.Context, email string) error
}

func redisKeySession(sessionID string) string { return "session:" + sessionID }

func redisKeyReset(email string) string { return "reset:" + strings.ToLower(email) }

func redisKeyResetAttempts(email string) string { return "reset:attempts:" + strings.ToLower(email) }

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) SaveSession(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, redisKeySession(sessionID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *RedisStore) SessionUser(ctx context.Context, sessionID string) (string, error) {
	uid, err := s.rdb.Get(ctx, redisKeySession(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get session: %w", err)
	}
	return uid, nil
}

func (s *RedisStore) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, redisKeySession(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SaveResetCode replaces any pending code and clears its attempt counter.
func (s *RedisStore) SaveResetCode(ctx context.Context, email, hash string, ttl time.Duration) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, redisKeyReset(email), hash, ttl)
	pipe.Del(ctx, redisKeyResetAttempts(email))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save reset code: %w", err)
	}
	return nil
}

func (s *RedisStore) ResetCode(ctx context.Context, email string) (string, int, error) {
	hash, err := s.rdb.Get(ctx, redisKeyReset(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", 0, ErrResetCodeExpired
	}
	if err != nil {
		return "", 0, fmt.Errorf("redis get reset code: %w", err)
	}
	attempts, err := s.rdb.Get(ctx, redisKeyResetAttempts(email)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", 0, fmt.Errorf("redis get reset attempts: %w", err)
	}
	return hash, attempts, nil
}

// IncrResetAttempts keeps the counter alive no longer than the code itself.
func (s *RedisStore) IncrResetAttempts(ctx context.Context, email string) error {
	key := redisKeyResetAttempts(email)
	ttl, err := s.rdb.TTL(ctx, redisKeyReset(email)).Result()
	if err != nil {
		return fmt.Errorf("redis ttl reset code: %w", err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis incr reset attempts: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteResetCode(ctx context.Context, email string) error {
	if err := s.rdb.Del(ctx, redisKeyReset(email), redisKeyResetAttempts(email)).Err(); err != nil {
		return fmt.Errorf("delete reset code: %w", err)
	}
	return nil
}
