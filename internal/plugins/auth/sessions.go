package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix is the Redis key prefix for session records.
const sessionKeyPrefix = "session:"

// SessionStore is the server-side session registry. Session ids are random
// UUIDs, so the id alone is the cookie value.
type SessionStore interface {
	Create(ctx context.Context, s Session) (id string, err error)
	Destroy(ctx context.Context, id string) error
}

type redisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSessionStore keeps each record for ttl, matching the token
// lifetime so a session never outlives the token it mirrors.
func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{rdb: rdb, ttl: ttl}
}

func (s *redisSessionStore) Create(ctx context.Context, sess Session) (string, error) {
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshaling session: %w", err)
	}

	id := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing session in Redis: %w", err)
	}
	return id, nil
}

// Destroy is idempotent: deleting an absent session succeeds.
func (s *redisSessionStore) Destroy(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("deleting session from Redis: %w", err)
	}
	return nil
}
