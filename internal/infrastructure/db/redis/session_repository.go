package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/canteen-system/canteen-console/internal/core/domain"
	"github.com/canteen-system/canteen-console/internal/core/ports"
)

// SessionRepository stores the two durable session keys, the bearer token
// and the serialized user record, in Redis with a shared TTL.
// Key format: session:<sid>:token and session:<sid>:user
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) Save(ctx context.Context, sid, token string, user *domain.User, ttl time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.tokenKey(sid), token, ttl)
	pipe.Set(ctx, r.userKey(sid), data, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns domain.ErrNoSession when either key is absent or the user
// record does not decode. The caller decides whether to clear leftovers.
func (r *SessionRepository) Load(ctx context.Context, sid string) (string, *domain.User, error) {
	values, err := r.client.MGet(ctx, r.tokenKey(sid), r.userKey(sid)).Result()
	if err != nil {
		return "", nil, fmt.Errorf("load session: %w", err)
	}

	token, okToken := values[0].(string)
	raw, okUser := values[1].(string)
	if !okToken || !okUser || token == "" {
		return "", nil, domain.ErrNoSession
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return "", nil, domain.ErrNoSession
	}
	return token, &user, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, r.tokenKey(sid), r.userKey(sid)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) tokenKey(sid string) string {
	return fmt.Sprintf("session:%s:token", sid)
}

func (r *SessionRepository) userKey(sid string) string {
	return fmt.Sprintf("session:%s:user", sid)
}
