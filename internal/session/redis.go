package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "dogwalk:session:"

// RedisStore keeps sessions in Redis as JSON, expiring them with the key
// TTL so stale sessions clean themselves up.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Duration(0)
	if !sess.ExpiresAt.IsZero() {
		ttl = sess.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return nil
		}
	}

	return s.client.Set(ctx, redisKey(sess.ID), payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKey(id)).Err()
}
