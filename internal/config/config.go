package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the movie chat service.
type Config struct {
	Port    string
	Catalog CatalogConfig
	DB      DBConfig
	Redis   RedisConfig
	AI      AIConfig
	Session SessionConfig
}

// CatalogConfig selects where the movie catalog is loaded from.
type CatalogConfig struct {
	Source  string // "csv" or "postgres"
	CSVPath string
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// AIConfig holds the endpoints for the external AI collaborators. Empty
// endpoints disable the corresponding feature.
type AIConfig struct {
	SemanticSearchURL string
	GenerativeURL     string
	APIKey            string
	Model             string
}

// SessionConfig controls chat session history.
type SessionConfig struct {
	TTLMinutes int
	MaxHistory int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Catalog: CatalogConfig{
			Source:  getEnv("CATALOG_SOURCE", "csv"),
			CSVPath: getEnv("CATALOG_CSV_PATH", "data/movies.csv"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "movie_chat"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			PoolSize: getEnvInt("REDIS_POOL_SIZE", 10),
		},
		AI: AIConfig{
			SemanticSearchURL: getEnv("SEMANTIC_SEARCH_URL", ""),
			GenerativeURL:     getEnv("GENERATIVE_URL", "https://api.openai.com/v1/chat/completions"),
			APIKey:            getEnv("AI_API_KEY", ""),
			Model:             getEnv("AI_MODEL", ""),
		},
		Session: SessionConfig{
			TTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 120),
			MaxHistory: getEnvInt("SESSION_MAX_HISTORY", 20),
		},
		Port: getEnv("SERVER_PORT", "8080"),
	}

	if cfg.Catalog.Source != "csv" && cfg.Catalog.Source != "postgres" {
		return nil, fmt.Errorf("invalid CATALOG_SOURCE %q: must be csv or postgres", cfg.Catalog.Source)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid numeric env value, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
