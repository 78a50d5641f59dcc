package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"movie-chat-service/internal/config"
)

// NewPostgres creates a new PostgreSQL connection and runs migrations.
func NewPostgres(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	slog.Info("connected to PostgreSQL", "db", cfg.DBName)

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS movies (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			director TEXT DEFAULT '',
			"cast" TEXT DEFAULT '',
			genres TEXT DEFAULT '',
			imdb_id TEXT DEFAULT '',
			original_language VARCHAR(10) DEFAULT '',
			overview TEXT DEFAULT '',
			popularity DOUBLE PRECISION DEFAULT 0,
			poster_path TEXT DEFAULT '',
			release_date TEXT DEFAULT '',
			runtime TEXT DEFAULT '',
			vote_average DOUBLE PRECISION DEFAULT 0,
			vote_count INTEGER DEFAULT 0,
			loaded_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS user_interactions (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			movie_id TEXT NOT NULL,
			interaction_type VARCHAR(20) NOT NULL,
			genres TEXT[] DEFAULT '{}',
			created_at TIMESTAMP DEFAULT NOW()
		)`,
		// Indexes for common query patterns
		`CREATE INDEX IF NOT EXISTS idx_movies_popularity ON movies(popularity)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_user ON user_interactions(user_id)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
