package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists token -> user id bindings. Implementations must be safe for
// concurrent use; Delete on a missing token is a no-op.
type Store interface {
	Put(ctx context.Context, token string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, token string) (uint, bool, error)
	Delete(ctx context.Context, token string) error
}

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis so they survive restarts and are shared
// across instances. Expiry is enforced by Redis key TTLs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	key := redisKeyPrefix + token
	if err := s.client.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (uint, bool, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load session: %w", err)
	}

	userID, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, false, nil
	}
	return uint(userID), true, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, redisKeyPrefix+token).Err()
}

type memoryEntry struct {
	userID    uint
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. It serves single-instance
// deployments and tests when no Redis is configured; sessions do not survive
// a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

// NewMemoryStore returns an empty in-process session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, token string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.sessions[token] = memoryEntry{
		userID:    userID,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (uint, bool, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return 0, false, nil
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return 0, false, nil
	}
	return entry.userID, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// sweepLocked drops expired entries. Caller holds the write lock.
func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for token, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, token)
		}
	}
}
