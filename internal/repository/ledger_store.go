package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"chopengine/internal/ledger"

	"github.com/redis/go-redis/v9"
)

// LedgerStore persists a session's ledger entries between requests.
// Load returns an empty slice for an unknown session.
type LedgerStore interface {
	Load(ctx context.Context, sessionID string) ([]ledger.Entry, error)
	Save(ctx context.Context, sessionID string, entries []ledger.Entry) error
	Delete(ctx context.Context, sessionID string) error
}

// ── Redis ─────────────────────────────────────────────────────────────────────

type redisLedgerStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisLedgerStore keeps each ledger as one JSON value under
// ledger:<session>, refreshed to ttl on every save.
func NewRedisLedgerStore(rdb *redis.Client, ttl time.Duration) LedgerStore {
	return &redisLedgerStore{rdb: rdb, ttl: ttl}
}

func ledgerKey(sessionID string) string { return "ledger:" + sessionID }

func (s *redisLedgerStore) Load(ctx context.Context, sessionID string) ([]ledger.Entry, error) {
	val, err := s.rdb.Get(ctx, ledgerKey(sessionID)).Bytes()
	if err == redis.Nil {
		return []ledger.Entry{}, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []ledger.Entry
	if err := json.Unmarshal(val, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *redisLedgerStore) Save(ctx context.Context, sessionID string, entries []ledger.Entry) error {
	if len(entries) == 0 {
		return s.Delete(ctx, sessionID)
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, ledgerKey(sessionID), payload, s.ttl).Err()
}

func (s *redisLedgerStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, ledgerKey(sessionID)).Err()
}

// ── Memory ────────────────────────────────────────────────────────────────────

type memoryLedgerStore struct {
	mu       sync.RWMutex
	sessions map[string][]ledger.Entry
}

// NewMemoryLedgerStore is used when REDIS_URL is empty and in tests.
func NewMemoryLedgerStore() LedgerStore {
	return &memoryLedgerStore{sessions: make(map[string][]ledger.Entry)}
}

func (s *memoryLedgerStore) Load(_ context.Context, sessionID string) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Entry, len(s.sessions[sessionID]))
	copy(out, s.sessions[sessionID])
	return out, nil
}

func (s *memoryLedgerStore) Save(_ context.Context, sessionID string, entries []ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(entries) == 0 {
		delete(s.sessions, sessionID)
		return nil
	}
	cp := make([]ledger.Entry, len(entries))
	copy(cp, entries)
	s.sessions[sessionID] = cp
	return nil
}

func (s *memoryLedgerStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
