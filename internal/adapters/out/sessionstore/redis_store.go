package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

var _ ports.SessionStore = &RedisStore{}

// DefaultRedisKey is the key holding the slot when none is configured.
const DefaultRedisKey = "deliverypartner:session"

// RedisStore keeps the session slot as a JSON value. A session with an
// expiry is stored with a matching TTL so Redis drops it on its own.
type RedisStore struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key, now: time.Now}
}

func (s *RedisStore) Load(ctx context.Context) (partner.Session, bool, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return partner.Session{}, false, nil
		}
		return partner.Session{}, false, err
	}

	var dto SessionDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return partner.Session{}, false, fmt.Errorf("stored session is corrupt: %w", err)
	}
	session, err := toDomain(dto)
	if err != nil {
		return partner.Session{}, false, fmt.Errorf("stored session is corrupt: %w", err)
	}
	return session, true, nil
}

func (s *RedisStore) Save(ctx context.Context, session partner.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	now := s.now()
	raw, err := json.Marshal(fromDomain(session, now))
	if err != nil {
		return err
	}

	var ttl time.Duration
	if exp, ok := session.ExpiresAt(); ok {
		ttl = exp.Sub(now)
		if ttl <= 0 {
			return s.Clear(ctx)
		}
	}
	return s.client.Set(ctx, s.key, raw, ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
