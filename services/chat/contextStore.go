package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"pitchbook/models"

	"github.com/go-redis/redis/v8"
)

const chatContextPrefix = "chat:ctx:"

// RedisContextStore implements SessionContextStore on Redis. The TTL acts as
// an idle timeout: every write refreshes it, so abandoned sessions expire
// instead of accumulating forever.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, sessionID string) (*models.SessionContext, error) {
	key := chatContextPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.SessionContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var sc models.SessionContext
	if err := json.Unmarshal([]byte(data), &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *RedisContextStore) Set(ctx context.Context, sessionID string, sc *models.SessionContext) error {
	key := chatContextPrefix + sessionID
	b, err := json.Marshal(sc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

type memoryContextEntry struct {
	ctx     models.SessionContext
	touched time.Time
}

// MemoryContextStore is a process-local SessionContextStore used in tests and
// as a fallback when Redis is not configured. Expired entries are swept
// lazily on writes.
type MemoryContextStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryContextEntry
}

// NewMemoryContextStore creates an in-memory store; ttl <= 0 disables expiry.
func NewMemoryContextStore(ttl time.Duration) *MemoryContextStore {
	return &MemoryContextStore{
		ttl:     ttl,
		entries: make(map[string]memoryContextEntry),
	}
}

func (s *MemoryContextStore) Get(ctx context.Context, sessionID string) (*models.SessionContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok || s.expired(e, time.Now()) {
		return &models.SessionContext{}, nil
	}
	sc := e.ctx
	return &sc, nil
}

func (s *MemoryContextStore) Set(ctx context.Context, sessionID string, sc *models.SessionContext) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
		}
	}
	s.entries[sessionID] = memoryContextEntry{ctx: *sc, touched: now}
	return nil
}

func (s *MemoryContextStore) expired(e memoryContextEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.touched) > s.ttl
}
