package models

// ChatRequest is the request body for a chat turn.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
}

// MovieResult is a movie enriched with presentation fields for API responses.
type MovieResult struct {
	Movie
	PosterURL string   `json:"poster_url"`
	WatchURL  string   `json:"watch_url"`
	Tags      []string `json:"tags"`
}

// NewMovieResult wraps a catalog movie with its derived display fields.
func NewMovieResult(m Movie) MovieResult {
	return MovieResult{
		Movie:     m,
		PosterURL: m.PosterURL(),
		WatchURL:  m.WatchURL(),
		Tags:      m.Tags(),
	}
}

// ChatResponse is one bot reply: a message plus zero or more attached movies.
type ChatResponse struct {
	SessionID string        `json:"session_id"`
	Intent    string        `json:"intent"`
	Message   string        `json:"message"`
	Movies    []MovieResult `json:"movies"`
}

// CreateInteractionRequest is the request body for recording an interaction.
type CreateInteractionRequest struct {
	UserID          string   `json:"user_id"`
	MovieID         string   `json:"movie_id"`
	InteractionType string   `json:"interaction_type"`
	Genres          []string `json:"genres"`
}

// Valid interaction types
var ValidInteractionTypes = map[string]bool{
	"like":    true,
	"dislike": true,
	"watched": true,
	"search":  true,
}
