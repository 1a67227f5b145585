package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"ncfqr/internal/models"
	apperrors "ncfqr/pkg/errors"
)

// Store keeps sessions between requests. Implementations must be safe for
// concurrent use. Load returns apperrors.ErrSessionNotFound for unknown or
// expired ids.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore holds snapshots in process memory. Expired entries are
// dropped on Load and swept from the whole map on Save, at most once per ttl.
type MemoryStore struct {
	mutex     sync.Mutex
	sessions  map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, apperrors.ErrSessionNotFound
	}
	return decode(entry.data)
}

// Save stores a copy so later mutation of s does not leak into the store.
func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	if !now.Before(s.nextSweep) {
		s.sweep(now)
	}
	s.sessions[sess.ID] = memoryEntry{data: data, expiresAt: now.Add(s.ttl)}
	return nil
}

// sweep must be called with the mutex held.
func (s *MemoryStore) sweep(now time.Time) {
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
	s.nextSweep = now.Add(s.ttl)
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.sessions, id)
	return nil
}

// RedisStore keeps each session as a JSON snapshot that expires after ttl.
type RedisStore struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

func NewRedisStore(client *redis.Client, namespace string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, namespace: namespace, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func createKey(namespace, id string) string {
	return fmt.Sprintf("%s:session:%s", namespace, id)
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, createKey(s.namespace, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return decode(data)
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.client.Set(ctx, createKey(s.namespace, sess.ID), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, createKey(s.namespace, id)).Err()
}

func decode(data []byte) (*Session, error) {
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if sess.Errors == nil {
		sess.Errors = models.ValidationErrors{}
	}
	return &sess, nil
}
