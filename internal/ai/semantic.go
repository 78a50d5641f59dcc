// Package ai holds the HTTP clients for the external AI collaborators:
// the semantic (embedding) search service and the generative text service.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"movie-chat-service/internal/models"
)

// SemanticClient calls the embedding-based movie search endpoint.
type SemanticClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewSemanticClient creates a semantic search client.
func NewSemanticClient(endpoint, apiKey string) *SemanticClient {
	return &SemanticClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type semanticSearchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id,omitempty"`
}

type semanticSearchResponse struct {
	Movies []semanticMatch `json:"movies"`
}

// semanticMatch is one vector-similarity hit. The service returns a sparse
// movie record; fields it does not index come back empty.
type semanticMatch struct {
	MovieID    string        `json:"movie_id"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	Similarity float64       `json:"similarity"`
	Metadata   matchMetadata `json:"metadata"`
}

type matchMetadata struct {
	Title       string  `json:"title"`
	Director    string  `json:"director"`
	Genres      string  `json:"genres"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

// Search runs a semantic query. An empty slice means the service had no
// confident match; errors are reserved for transport and protocol failures.
func (c *SemanticClient) Search(ctx context.Context, query, userID string) ([]models.Movie, error) {
	body, err := json.Marshal(semanticSearchRequest{Query: query, UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("marshal semantic request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build semantic request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	slog.Debug("semantic search", "query", query)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("semantic search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("semantic search returned %d: %s", resp.StatusCode, string(raw))
	}

	var result semanticSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode semantic response: %w", err)
	}

	movies := make([]models.Movie, 0, len(result.Movies))
	for _, match := range result.Movies {
		title := match.Metadata.Title
		if title == "" {
			title = match.Title
		}
		movies = append(movies, models.Movie{
			ID:          match.MovieID,
			Title:       title,
			Director:    match.Metadata.Director,
			Genres:      match.Metadata.Genres,
			Overview:    match.Content,
			PosterPath:  match.Metadata.PosterPath,
			ReleaseDate: match.Metadata.ReleaseDate,
			VoteAverage: match.Metadata.VoteAverage,
		})
	}
	return movies, nil
}
