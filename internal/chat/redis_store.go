package chat

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const historyKeyPrefix = "chat:history:"

// redisStore — эфемерная история в Redis.
// Ключ — список JSON-реплик, TTL обновляется при каждой записи.
type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) HistoryStore {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (s *redisStore) key(sessionKey string) string {
	return historyKeyPrefix + sessionKey
}

func (s *redisStore) GetTurns(ctx context.Context, sessionKey string) ([]Turn, error) {
	raw, err := s.rdb.LRange(ctx, s.key(sessionKey), 0, -1).Result()
	if err != nil {
		return nil, NewError(KindStoreUnavailable, "chat.redis.GetTurns", err)
	}

	turns := make([]Turn, 0, len(raw))
	for _, item := range raw {
		var t Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			// битая запись не должна ронять всю историю
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (s *redisStore) AppendUser(ctx context.Context, sessionKey, content string) (int64, error) {
	return s.append(ctx, sessionKey, RoleUser, content)
}

func (s *redisStore) AppendAssistant(ctx context.Context, sessionKey, content string) (int64, error) {
	return s.append(ctx, sessionKey, RoleAssistant, content)
}

func (s *redisStore) append(ctx context.Context, sessionKey, role, content string) (int64, error) {
	data, err := json.Marshal(Turn{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return 0, NewError(KindStoreUnavailable, "chat.redis.append", err)
	}

	key := s.key(sessionKey)
	pipe := s.rdb.TxPipeline()
	push := pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, NewError(KindStoreUnavailable, "chat.redis.append", err)
	}
	return push.Val(), nil
}
