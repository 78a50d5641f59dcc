package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"movie-chat-service/internal/intent"
	"movie-chat-service/internal/models"
	"movie-chat-service/internal/search"
	"movie-chat-service/internal/session"
	"movie-chat-service/internal/tracker"
)

// WelcomeMessage opens a fresh chat session.
const WelcomeMessage = "🎬 Welcome to CinemaBot! I'm your personal movie assistant.\n\n" +
	"I can help you find movies by mood (\"I'm feeling romantic\"), genre, director or actor, " +
	"year or decade (\"90s Bollywood classics\"), and language (Hindi, Tamil, Telugu, English). " +
	"You can also ask me things like \"who directed Inception\" or just say \"surprise me\"!\n\n" +
	"What kind of movie are you in the mood for today?"

// ChatService orchestrates one chat turn: session history in, routed
// response out, history and tracking side effects applied afterwards.
type ChatService struct {
	catalog  []models.Movie
	router   *intent.Router
	sessions *session.Store
	tracker  *tracker.Tracker
}

// NewChatService creates a ChatService over an already-loaded catalog.
func NewChatService(catalog []models.Movie, router *intent.Router, sessions *session.Store, trk *tracker.Tracker) *ChatService {
	return &ChatService{
		catalog:  catalog,
		router:   router,
		sessions: sessions,
		tracker:  trk,
	}
}

// Chat processes one user message and returns the bot reply. A missing
// session id starts a new session.
func (s *ChatService) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("message is required")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history := s.sessions.History(ctx, sessionID)
	res := s.router.Respond(ctx, s.catalog, req.UserID, req.Message, history)

	if res.RememberQuery {
		s.sessions.Append(ctx, sessionID, req.Message)
	}

	// Record the top hit as a search signal. Fire-and-forget: tracking
	// failures are logged and never delay the reply.
	if req.UserID != "" && len(res.Movies) > 0 {
		top := res.Movies[0]
		go func() {
			if err := s.tracker.Track(context.Background(), req.UserID, top.ID, "search", top.GenreList()); err != nil {
				slog.Warn("failed to track search interaction", "user_id", req.UserID, "movie_id", top.ID, "error", err)
			}
		}()
	}

	results := make([]models.MovieResult, len(res.Movies))
	for i, m := range res.Movies {
		results[i] = models.NewMovieResult(m)
	}

	return &models.ChatResponse{
		SessionID: sessionID,
		Intent:    res.Intent,
		Message:   res.Message,
		Movies:    results,
	}, nil
}

// Welcome returns the opening message for a new session.
func (s *ChatService) Welcome() *models.ChatResponse {
	return &models.ChatResponse{
		SessionID: uuid.NewString(),
		Intent:    "welcome",
		Message:   WelcomeMessage,
		Movies:    []models.MovieResult{},
	}
}

// ListMovies returns the catalog head in popularity order.
func (s *ChatService) ListMovies(limit int) []models.MovieResult {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	movies := search.Search(s.catalog, "", nil)
	if len(movies) > limit {
		movies = movies[:limit]
	}
	results := make([]models.MovieResult, len(movies))
	for i, m := range movies {
		results[i] = models.NewMovieResult(m)
	}
	return results
}

// RecordInteraction validates and persists an explicit user interaction.
func (s *ChatService) RecordInteraction(ctx context.Context, req models.CreateInteractionRequest) error {
	if !models.ValidInteractionTypes[req.InteractionType] {
		return fmt.Errorf("invalid interaction type: %s", req.InteractionType)
	}
	if req.MovieID == "" {
		return fmt.Errorf("movie_id is required")
	}
	if req.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	return s.tracker.Track(ctx, req.UserID, req.MovieID, req.InteractionType, req.Genres)
}

// CatalogSize reports how many movies are loaded.
func (s *ChatService) CatalogSize() int {
	return len(s.catalog)
}
