package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"infobot-backend/internal/dialogue"
	"infobot-backend/internal/errx"
)

const keyFormat = "session:%s:context"

// RedisStore keeps contexts in Redis with a sliding TTL so several server
// replicas can share sessions.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(sessionID string) string {
	return fmt.Sprintf(keyFormat, sessionID)
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (dialogue.ConversationContext, error) {
	v, err := s.client.Get(ctx, key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return dialogue.ContextNone, nil
	}
	if err != nil {
		return dialogue.ContextNone, errx.WrapRedis(err)
	}
	return dialogue.ParseConversationContext(v), nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, c dialogue.ConversationContext) error {
	if c == dialogue.ContextNone {
		return s.Delete(ctx, sessionID)
	}
	return errx.WrapRedis(s.client.Set(ctx, key(sessionID), string(c), s.ttl).Err())
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return errx.WrapRedis(s.client.Del(ctx, key(sessionID)).Err())
}
