// Package session keeps per-session search history: the ordered list of
// prior query strings that seeds personalization.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store holds session search history in Redis, falling back to an in-process
// map when Redis is not configured. History is append-only and trimmed to
// the most recent maxHistory entries.
type Store struct {
	rdb        *redis.Client
	ttl        time.Duration
	maxHistory int

	mu  sync.Mutex
	mem map[string][]string
}

// NewStore creates a history store. rdb may be nil.
func NewStore(rdb *redis.Client, ttl time.Duration, maxHistory int) *Store {
	if maxHistory <= 0 {
		maxHistory = 20
	}
	return &Store{
		rdb:        rdb,
		ttl:        ttl,
		maxHistory: maxHistory,
		mem:        make(map[string][]string),
	}
}

// History returns the session's prior queries, oldest first. A missing
// session or a Redis failure yields an empty history, never an error.
func (s *Store) History(ctx context.Context, sessionID string) []string {
	if s.rdb == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return append([]string(nil), s.mem[sessionID]...)
	}

	history, err := s.rdb.LRange(ctx, key(sessionID), 0, -1).Result()
	if err != nil {
		slog.Warn("failed to read session history", "session_id", sessionID, "error", err)
		return nil
	}
	return history
}

// Append adds a query to the session history and refreshes the session TTL.
func (s *Store) Append(ctx context.Context, sessionID, query string) {
	if s.rdb == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		h := append(s.mem[sessionID], query)
		if len(h) > s.maxHistory {
			h = h[len(h)-s.maxHistory:]
		}
		s.mem[sessionID] = h
		return
	}

	k := key(sessionID)
	pipe := s.rdb.Pipeline()
	pipe.RPush(ctx, k, query)
	pipe.LTrim(ctx, k, int64(-s.maxHistory), -1)
	pipe.Expire(ctx, k, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("failed to append session history", "session_id", sessionID, "error", err)
	}
}

func key(sessionID string) string {
	return "session:history:" + sessionID
}
