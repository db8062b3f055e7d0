package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/mrqz-remodeling/console-api/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SessionStore caches validated sessions by token
type SessionStore interface {
	Get(ctx context.Context, key string) (*Session, bool, error)
	Set(ctx context.Context, key string, session *Session, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Revoke rejects key until ttl elapses, even though the token still validates
	Revoke(ctx context.Context, key string, ttl time.Duration) error
	Revoked(ctx context.Context, key string) (bool, error)
	// Purge drops expired entries and returns how many were removed
	Purge(ctx context.Context) (int, error)
	Close() error
}

// TokenKey derives the cache key for a bearer token; raw tokens are never stored
func TokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewSessionStore builds the store named by cfg.Auth.SessionStore
func NewSessionStore(cfg *config.Config, logger *zap.Logger) (SessionStore, error) {
	switch cfg.Auth.SessionStore {
	case "", "memory":
		logger.Info("Using in-memory session store")
		return NewMemorySessionStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("Using redis session store", zap.String("addr", cfg.Redis.Addr))
		return NewRedisSessionStore(client), nil
	default:
		return nil, fmt.Errorf("unknown session store: %s", cfg.Auth.SessionStore)
	}
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in a process-local map
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		entries: make(map[string]memoryEntry),
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemorySessionStore) Get(ctx context.Context, key string) (*Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}
	session := entry.session
	return &session, true, nil
}

func (s *MemorySessionStore) Set(ctx context.Context, key string, session *Session, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{session: *session, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemorySessionStore) Revoke(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[key] = s.now().Add(ttl)
	return nil
}

func (s *MemorySessionStore) Revoked(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[key]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, key)
		return false, nil
	}
	return true, nil
}

func (s *MemorySessionStore) Purge(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	for key, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, key)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of cached sessions, expired or not
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemorySessionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]memoryEntry)
	s.revoked = make(map[string]time.Time)
	return nil
}

// Process-wide session cache, set up by Init and released by Teardown
var (
	storeMu sync.RWMutex
	store   SessionStore
)

// Init installs the process-wide session store
func Init(s SessionStore) {
	storeMu.Lock()
	defer storeMu.Unlock()
	store = s
}

// Teardown closes and removes the process-wide session store
func Teardown() error {
	storeMu.Lock()
	defer storeMu.Unlock()
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// Invalidate removes the cached session for token and rejects the token until
// it expires at until. Without a store there is nothing to remember the
// revocation in, so the token stays usable.
func Invalidate(ctx context.Context, token string, until time.Time) error {
	s := currentStore()
	if s == nil {
		return nil
	}
	key := TokenKey(token)
	if err := s.Delete(ctx, key); err != nil {
		return err
	}
	return s.Revoke(ctx, key, time.Until(until))
}

// PurgeExpired drops expired sessions from the process-wide store
func PurgeExpired(ctx context.Context) (int, error) {
	s := currentStore()
	if s == nil {
		return 0, nil
	}
	return s.Purge(ctx)
}

// Ping reports whether the process-wide store is reachable. Stores without a
// remote backend are always reachable.
func Ping(ctx context.Context) error {
	s := currentStore()
	if s == nil {
		return nil
	}
	if p, ok := s.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

func currentStore() SessionStore {
	storeMu.RLock()
	defer storeMu.RUnlock()
	return store
}
