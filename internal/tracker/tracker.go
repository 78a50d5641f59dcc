// Package tracker records user-movie interactions and derives the preferred
// genres used as personalization context.
package tracker

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const (
	preferredGenresLimit    = 5
	preferredGenresCacheTTL = 10 * time.Minute
)

// Tracker persists interactions in PostgreSQL and caches genre profiles in
// Redis. Both backends are optional: with no database, tracking is a no-op
// and every profile is empty.
type Tracker struct {
	db  *sql.DB
	rdb *redis.Client
}

// New creates a Tracker. db and rdb may be nil.
func New(db *sql.DB, rdb *redis.Client) *Tracker {
	return &Tracker{db: db, rdb: rdb}
}

// Track records one interaction. Callers treat it as fire-and-forget: the
// error is returned for logging but must never block a chat response.
func (t *Tracker) Track(ctx context.Context, userID, movieID, kind string, genres []string) error {
	if t.db == nil {
		return nil
	}
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO user_interactions (user_id, movie_id, interaction_type, genres)
		VALUES ($1, $2, $3, $4)
	`, userID, movieID, kind, pq.Array(genres))
	if err != nil {
		return fmt.Errorf("failed to record interaction: %w", err)
	}

	// Interaction changes the profile, so drop the cached copy.
	t.delCache(ctx, cacheKey(userID))
	return nil
}

// PreferredGenres returns the user's most frequent genres across positive
// interactions, most frequent first, capped at five.
func (t *Tracker) PreferredGenres(ctx context.Context, userID string) ([]string, error) {
	if t.db == nil || userID == "" {
		return nil, nil
	}

	key := cacheKey(userID)
	if cached, err := t.getFromCache(ctx, key); err == nil {
		var genres []string
		if json.Unmarshal([]byte(cached), &genres) == nil {
			return genres, nil
		}
	}

	rows, err := t.db.QueryContext(ctx, `
		SELECT g.genre
		FROM user_interactions u, unnest(u.genres) AS g(genre)
		WHERE u.user_id = $1 AND u.interaction_type IN ('like', 'watched', 'search')
		GROUP BY g.genre
		ORDER BY COUNT(*) DESC, g.genre
		LIMIT $2
	`, userID, preferredGenresLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferred genres: %w", err)
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate genres: %w", err)
	}

	if data, err := json.Marshal(genres); err == nil {
		t.setCache(ctx, key, string(data), preferredGenresCacheTTL)
	}
	return genres, nil
}

func cacheKey(userID string) string {
	return "user:genres:" + userID
}

// Redis helpers

func (t *Tracker) getFromCache(ctx context.Context, key string) (string, error) {
	if t.rdb == nil {
		return "", fmt.Errorf("redis not available")
	}
	return t.rdb.Get(ctx, key).Result()
}

func (t *Tracker) setCache(ctx context.Context, key, value string, ttl time.Duration) {
	if t.rdb == nil {
		return
	}
	if err := t.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

func (t *Tracker) delCache(ctx context.Context, key string) {
	if t.rdb == nil {
		return
	}
	t.rdb.Del(ctx, key)
}
