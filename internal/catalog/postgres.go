package catalog

import (
	"database/sql"
	"fmt"
	"log/slog"

	"movie-chat-service/internal/models"
)

// LoadPostgres materializes the full catalog from the movies table, keeping
// insertion order so ties in later sorts stay deterministic.
func LoadPostgres(db *sql.DB) ([]models.Movie, error) {
	rows, err := db.Query(`
		SELECT id, title, director, "cast", genres, imdb_id, original_language,
			overview, popularity, poster_path, release_date, runtime,
			vote_average, vote_count
		FROM movies
		WHERE title <> ''
		ORDER BY loaded_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Director, &m.Cast, &m.Genres, &m.IMDbID,
			&m.OriginalLanguage, &m.Overview, &m.Popularity, &m.PosterPath,
			&m.ReleaseDate, &m.Runtime, &m.VoteAverage, &m.VoteCount,
		); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	slog.Info("catalog loaded from PostgreSQL", "movies", len(movies))
	return movies, nil
}
