package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks issued token ids so tokens can be revoked before they
// expire. A nil store disables revocation; signature and expiry checks still
// apply.
type SessionStore interface {
	Save(ctx context.Context, jti string, userId uint, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
	Delete(ctx context.Context, jti string) error
}

type redisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func sessionKey(jti string) string {
	return fmt.Sprintf("session:%s", jti)
}

func (s *redisSessionStore) Save(ctx context.Context, jti string, userId uint, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(jti), userId, ttl).Err()
}

func (s *redisSessionStore) Exists(ctx context.Context, jti string) (bool, error) {
	count, err := s.client.Exists(ctx, sessionKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, jti string) error {
	return s.client.Del(ctx, sessionKey(jti)).Err()
}
