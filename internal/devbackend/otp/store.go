// Package otp issues and checks the one-time codes the development backend
// mails to delivery partners. Codes are never stored in clear text.
package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is a pending code for one email address.
type Entry struct {
	Hash      []byte    `json:"hash"`
	ExpiresAt time.Time `json:"expiresAt"`
	Attempts  int       `json:"attempts"`
}

// Store keeps at most one pending entry per email.
type Store interface {
	Save(ctx context.Context, email string, entry Entry) error
	Load(ctx context.Context, email string) (Entry, bool, error)
	Delete(ctx context.Context, email string) error
}

// MemoryStore is the default store. Expired entries linger until Sweep runs.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Save(_ context.Context, email string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry
	return nil
}

func (s *MemoryStore) Load(_ context.Context, email string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[email]
	return entry, ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}

// Sweep drops entries expired at now and returns how many went.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for email, entry := range s.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(s.entries, email)
			removed++
		}
	}
	return removed
}

const defaultRedisPrefix = "deliverypartner:otp:"

// RedisStore keeps entries as JSON values that expire with the code.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisStore) Save(ctx context.Context, email string, entry Entry) error {
	ttl := entry.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, email)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(email), data, ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, email string) (Entry, bool, error) {
	data, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("stored code is corrupt: %w", err)
	}
	return entry, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}

func (s *RedisStore) key(email string) string {
	return s.prefix + strings.ToLower(email)
}
