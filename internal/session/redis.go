package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKey = "wallet:session"

// RedisStore keeps the session record in a Redis hash with a TTL equal
// to the rolling session lifetime. Touch re-arms the TTL, which gives
// the same 30-day rolling expiry the file backend enforces through
// timestamps.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, dsn string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis DSN: %w", err)
	}

	// Connection pooling
	opt.PoolSize = 10
	opt.MinIdleConns = 1
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := s.client.HGetAll(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}

	createdAt, err := time.Parse(time.RFC3339, data["created_at"])
	if err != nil {
		return nil, fmt.Errorf("invalid created_at in session: %w", err)
	}
	lastAccessAt, err := time.Parse(time.RFC3339, data["last_access_at"])
	if err != nil {
		return nil, fmt.Errorf("invalid last_access_at in session: %w", err)
	}

	return &Record{
		ID:           data["id"],
		Address:      data["address"],
		CredentialID: data["credential_id"],
		CreatedAt:    createdAt,
		LastAccessAt: lastAccessAt,
	}, nil
}

// Put implements Store.
func (s *RedisStore) Put(ctx context.Context, rec *Record) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields := map[string]any{
		"id":             rec.ID,
		"address":        rec.Address,
		"credential_id":  rec.CredentialID,
		"created_at":     rec.CreatedAt.Format(time.RFC3339),
		"last_access_at": rec.LastAccessAt.Format(time.RFC3339),
	}

	if err := s.client.HSet(ctx, redisKey, fields).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	if err := s.client.Expire(ctx, redisKey, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session expiry: %w", err)
	}
	return nil
}

// Touch implements Store: bumps last access and re-arms the TTL.
func (s *RedisStore) Touch(ctx context.Context, rec *Record) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.client.HSet(ctx, redisKey, "last_access_at", rec.LastAccessAt.Format(time.RFC3339)).Err(); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return s.client.Expire(ctx, redisKey, s.ttl).Err()
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.client.Del(ctx, redisKey).Err()
}

// Close releases the underlying Redis connections.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
