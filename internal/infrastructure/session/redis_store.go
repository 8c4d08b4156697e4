package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/superstar-bot/pkg/helpers"
)

// RedisStore keeps sessions as JSON values that expire after TTL of inactivity.
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
	now func() time.Time
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl, now: time.Now}
}

func (r *RedisStore) Load(ctx context.Context, chatID int64) (Session, error) {
	var s Session
	ok, err := helpers.RedisGetJSON(ctx, r.rdb, helpers.KeyConversation(chatKey(chatID)), &s)
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return New(chatID), nil
	}
	s.ChatID = chatID
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, s Session) error {
	s.UpdatedAt = r.now().UTC()
	if err := helpers.RedisSetJSON(ctx, r.rdb, helpers.KeyConversation(chatKey(s.ChatID)), s, r.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, chatID int64) error {
	if err := helpers.RedisDel(ctx, r.rdb, helpers.KeyConversation(chatKey(chatID))); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
