package storage

import (
	"context"
	"errors"
	"time"

	"github.com/gamevault/storefront-backend/pkg/redis"
)

// RedisBackend stores entries under gv:session:<sid>:<key> with a sliding TTL.
type RedisBackend struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBackend(client *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, ttl: ttl}
}

func (b *RedisBackend) Name() string { return "redis" }

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx)
}

func (b *RedisBackend) Open(sessionID string) Store {
	return &RedisStore{client: b.client, sessionID: sessionID, ttl: b.ttl}
}

// RedisStore is a session view over Redis.
type RedisStore struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	redisKey := s.client.SessionKey(s.sessionID, key)
	value, err := s.client.Get(ctx, redisKey)
	if errors.Is(err, redis.ErrNil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if err := s.client.Touch(ctx, redisKey, s.ttl); err != nil {
		return "", err
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.client.SessionKey(s.sessionID, key), value, s.ttl)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.client.SessionKey(s.sessionID, key))
}
