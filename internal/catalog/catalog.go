// Package catalog loads the movie catalog into memory. The catalog is loaded
// once at startup and is read-only for the lifetime of the process.
package catalog

import (
	"database/sql"
	"fmt"

	"movie-chat-service/internal/config"
	"movie-chat-service/internal/models"
)

// Load materializes the catalog from the configured source. The db handle is
// only required for the postgres source.
func Load(cfg config.CatalogConfig, db *sql.DB) ([]models.Movie, error) {
	switch cfg.Source {
	case "csv":
		return LoadCSV(cfg.CSVPath)
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("postgres catalog source requires a database connection")
		}
		return LoadPostgres(db)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}
