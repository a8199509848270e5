package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"hostel-http-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionKeyPrefix = "session:"

// InterfaceSessionStore maps opaque session ids (the legacy cookie) to bearer tokens.
type InterfaceSessionStore interface {
	Create(ctx context.Context, token string) (string, error)
	Resolve(ctx context.Context, sessionID string) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

// NewSessionStore returns a Redis-backed store when Redis is configured,
// otherwise an in-process one.
func NewSessionStore(cfg *config.Config, client *redis.Client) InterfaceSessionStore {
	if client != nil {
		return NewRedisSessionStore(client, cfg.SessionTTL)
	}
	return NewMemorySessionStore(cfg.SessionTTL)
}

// NewRedisClient builds the Redis client for cfg, or nil when Redis is disabled.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if !cfg.RedisEnabled() {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// RedisSessionStore keeps sessions in Redis with a TTL.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisSessionStore wraps client.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

// 1 Create stores token under a fresh session id
func (s *RedisSessionStore) Create(ctx context.Context, token string) (string, error) {
	id := uuid.NewString()
	if err := s.Client.Set(ctx, sessionKeyPrefix+id, token, s.TTL).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// 2 Resolve returns the token behind a session id
func (s *RedisSessionStore) Resolve(ctx context.Context, sessionID string) (string, error) {
	token, err := s.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	return token, err
}

// 3 Revoke deletes a session
func (s *RedisSessionStore) Revoke(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

type memorySession struct {
	token     string
	expiresAt time.Time
}

// MemorySessionStore is the single-process fallback used when Redis is not configured.
type MemorySessionStore struct {
	mu    sync.Mutex
	items map[string]memorySession
	ttl   time.Duration
	now   func() time.Time
}

// NewMemorySessionStore creates an empty store.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		items: make(map[string]memorySession),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemorySessionStore) Create(_ context.Context, token string) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = memorySession{token: token, expiresAt: s.now().Add(s.ttl)}
	return id, nil
}

func (s *MemorySessionStore) Resolve(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	if s.ttl > 0 && !s.now().Before(item.expiresAt) {
		delete(s.items, sessionID)
		return "", ErrSessionNotFound
	}
	return item.token, nil
}

func (s *MemorySessionStore) Revoke(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, sessionID)
	return nil
}
