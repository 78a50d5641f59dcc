// Package intent classifies free-text chat input and dispatches it to the
// filter engine, the recommendation engine, or an external AI collaborator.
// Classification is rule-ordered: the rules slice is the single source of
// truth for precedence, and the first matching rule wins.
package intent

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"movie-chat-service/internal/models"
	"movie-chat-service/internal/recommend"
	"movie-chat-service/internal/search"
)

// Result caps per rule family.
const (
	moodLimit    = 6
	decadeLimit  = 8
	langLimit    = 8
	genreLimit   = 6
	generalLimit = 8
	mergedLimit  = 10
)

// SemanticSearcher retrieves movies by vector similarity from an external
// service. An empty result means "no confident match", not an error.
type SemanticSearcher interface {
	Search(ctx context.Context, query, userID string) ([]models.Movie, error)
}

// GenreProfiler supplies the user's preferred genres from tracked
// interactions. Failures are treated as an empty profile.
type GenreProfiler interface {
	PreferredGenres(ctx context.Context, userID string) ([]string, error)
}

// TextGenerator produces free-form answer text from an external model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, extra string) (string, error)
}

// Result is the outcome of routing one query.
type Result struct {
	Intent  string
	Message string
	Movies  []models.Movie
	// RememberQuery marks the query as a personalization signal worth
	// appending to the session's search history. Only a successful
	// general search sets it; failed searches would pollute the signal.
	RememberQuery bool
}

// Router classifies queries and produces chat responses. All mutable inputs
// (catalog, history) arrive as arguments; the collaborators are stateless and
// the random source is mutex-guarded, so one router serves all requests.
type Router struct {
	semantic  SemanticSearcher
	profiler  GenreProfiler
	generator TextGenerator

	// rand.Rand is not goroutine-safe; rngMu serializes draws.
	rngMu sync.Mutex
	rng   *rand.Rand

	rules []rule
}

// rule pairs a containment predicate with its handler. handle returns
// ok=false to fall through to the next rule.
type rule struct {
	name   string
	match  func(q string) bool
	handle func(ctx context.Context, in input) (Result, bool)
}

type input struct {
	catalog []models.Movie
	userID  string
	raw     string
	lower   string
	history []string
}

// reservedKeywords mark queries that must be handled by an explicit rule
// rather than the semantic fallback.
var reservedKeywords = []string{
	"plot", "director", "cast", "genre of", "when was", "what is", "rating of", "surprise",
}

// NewRouter builds a router. semantic, profiler and generator may be nil when
// the corresponding collaborator is not configured; the affected rules then
// fall through or degrade to their fixed messages.
func NewRouter(semantic SemanticSearcher, profiler GenreProfiler, generator TextGenerator, rng *rand.Rand) *Router {
	r := &Router{
		semantic:  semantic,
		profiler:  profiler,
		generator: generator,
		rng:       rng,
	}
	r.rules = []rule{
		{name: "semantic", match: r.semanticEligible, handle: r.handleSemantic},
		{name: "plot_suggestion", match: matchPlotSuggestion, handle: r.handlePlotSuggestion},
		{name: "fact_question", match: matchFactQuestion, handle: r.handleFactQuestion},
		{name: "surprise", match: matchAny("surprise me", "random"), handle: r.handleSurprise},
		{name: "mood", match: matchAnyMoodKeyword, handle: r.handleMood},
		{name: "decade", match: matchAnyDecadeKeyword, handle: r.handleDecade},
		{name: "language", match: matchAnyLanguageKeyword, handle: r.handleLanguage},
		{name: "genre", match: matchAnyGenreKeyword, handle: r.handleGenre},
		{name: "general", match: func(string) bool { return true }, handle: r.handleGeneral},
	}
	return r
}

// Respond classifies the query and executes the first matching rule.
// It never fails: every collaborator error degrades to a fallback response.
func (r *Router) Respond(ctx context.Context, catalog []models.Movie, userID, query string, history []string) Result {
	in := input{
		catalog: catalog,
		userID:  userID,
		raw:     strings.TrimSpace(query),
		lower:   strings.ToLower(strings.TrimSpace(query)),
		history: history,
	}

	for _, rl := range r.rules {
		if !rl.match(in.lower) {
			continue
		}
		if res, ok := rl.handle(ctx, in); ok {
			if res.Intent == "" {
				res.Intent = rl.name
			}
			return res
		}
	}

	// Unreachable: the general rule always matches and always resolves.
	return Result{Intent: "general", Message: msgNothingFound(query)}
}

func (r *Router) semanticEligible(q string) bool {
	if r.semantic == nil {
		return false
	}
	for _, kw := range reservedKeywords {
		if strings.Contains(q, kw) {
			return false
		}
	}
	return true
}

func (r *Router) handleSemantic(ctx context.Context, in input) (Result, bool) {
	movies, err := r.semantic.Search(ctx, in.raw, in.userID)
	if err != nil {
		slog.Warn("semantic search unavailable, falling through", "error", err)
		return Result{}, false
	}
	if len(movies) == 0 {
		return Result{}, false
	}

	msg := fmt.Sprintf("🔍 Here's what I found for \"%s\":", in.raw)
	if genres := r.preferredGenres(ctx, in.userID); len(genres) > 0 {
		msg = fmt.Sprintf("🔍 Based on your taste for %s, here's what I found for \"%s\":",
			strings.Join(genres, ", "), in.raw)
	}
	return Result{Message: msg, Movies: movies}, true
}

// preferredGenres fetches the personalization context. Failure means no
// personalization, never an error surfaced to the user.
func (r *Router) preferredGenres(ctx context.Context, userID string) []string {
	if r.profiler == nil || userID == "" {
		return nil
	}
	genres, err := r.profiler.PreferredGenres(ctx, userID)
	if err != nil {
		slog.Warn("could not fetch preferred genres", "user_id", userID, "error", err)
		return nil
	}
	return genres
}

func matchPlotSuggestion(q string) bool {
	if !strings.Contains(q, "plot") {
		return false
	}
	return strings.Contains(q, "suggest") || strings.Contains(q, "idea") || strings.Contains(q, "storyline")
}

const plotApology = "Sorry, my creative circuits are offline right now. Please try again in a bit!"

func (r *Router) handlePlotSuggestion(ctx context.Context, in input) (Result, bool) {
	if r.generator == nil {
		return Result{Message: plotApology}, true
	}
	prompt := fmt.Sprintf("Suggest an original movie plot based on this request: %q. "+
		"Keep it to a short paragraph with a title suggestion.", in.raw)
	text, err := r.generator.Generate(ctx, prompt, "")
	if err != nil {
		slog.Warn("plot generation failed", "error", err)
		return Result{Message: plotApology}, true
	}
	return Result{Message: text}, true
}

func (r *Router) handleSurprise(_ context.Context, in input) (Result, bool) {
	if len(in.catalog) == 0 {
		return Result{Message: "Sorry, I couldn't find any movies to surprise you with."}, true
	}
	r.rngMu.Lock()
	pick := in.catalog[r.rng.Intn(len(in.catalog))]
	r.rngMu.Unlock()
	return Result{
		Message: "🎲 Here's a surprise pick for you! This hidden gem might be exactly what you need:",
		Movies:  []models.Movie{pick},
	}, true
}

// moodRules are checked in order; the first keyword hit decides the mood.
var moodRules = []struct {
	keywords []string
	mood     models.Mood
	message  string
}{
	{[]string{"bored"}, models.MoodBored,
		"😴 Feeling bored? Here are some entertaining picks to lift your spirits:"},
	{[]string{"sad", "down", "depressed"}, models.MoodSad,
		"💙 When you're feeling down, these uplifting movies can help:"},
	{[]string{"excited", "pumped", "energetic"}, models.MoodExcited,
		"⚡ Ready for some high-energy entertainment? These will keep you on the edge of your seat:"},
	{[]string{"romantic", "love", "romance"}, models.MoodRomantic,
		"💕 In the mood for romance? These beautiful love stories will warm your heart:"},
	{[]string{"family", "kids"}, models.MoodFamily,
		"👨‍👩‍👧‍👦 Perfect for family movie night! These films are great for all ages:"},
}

func matchAnyMoodKeyword(q string) bool {
	for _, mr := range moodRules {
		if containsAny(q, mr.keywords...) {
			return true
		}
	}
	return false
}

func (r *Router) handleMood(_ context.Context, in input) (Result, bool) {
	for _, mr := range moodRules {
		if !containsAny(in.lower, mr.keywords...) {
			continue
		}
		movies := limit(search.Search(in.catalog, "", &models.SearchFilters{Mood: mr.mood}), moodLimit)
		return Result{Message: mr.message, Movies: movies}, true
	}
	return Result{}, false
}

// decadeRules map recognized decade phrases to a decade start year.
var decadeRules = []struct {
	keywords []string
	decade   string
	message  string
}{
	{[]string{"90s", "1990s", "nineties"}, "1990",
		"📼 Ah, the golden 90s! Here are some classics from that amazing decade:"},
	{[]string{"2000s", "2000", "early 2000s"}, "2000",
		"🎬 The 2000s brought us some incredible cinema! Check these out:"},
	{[]string{"80s", "1980s", "eighties"}, "1980",
		"🕺 The iconic 80s! Here are some legendary films from that era:"},
	{[]string{"2010s"}, "2010",
		"🎥 The 2010s delivered some modern favorites! Take a look:"},
}

func matchAnyDecadeKeyword(q string) bool {
	for _, dr := range decadeRules {
		if containsAny(q, dr.keywords...) {
			return true
		}
	}
	return false
}

func (r *Router) handleDecade(_ context.Context, in input) (Result, bool) {
	for _, dr := range decadeRules {
		if !containsAny(in.lower, dr.keywords...) {
			continue
		}
		movies := limit(search.Search(in.catalog, "", &models.SearchFilters{Decade: dr.decade}), decadeLimit)
		return Result{Message: dr.message, Movies: movies}, true
	}
	return Result{}, false
}

var languageRules = []struct {
	keywords []string
	language string
	message  string
}{
	{[]string{"bollywood", "hindi"}, "hi", "🇮🇳 Bollywood magic! Here are some fantastic Hindi films:"},
	{[]string{"hollywood", "english"}, "en", "🎭 Hollywood blockbusters! Here are some great English films:"},
	{[]string{"tamil"}, "ta", "🌟 Tamil cinema excellence! Here are some brilliant Tamil films:"},
	{[]string{"telugu"}, "te", "⭐ Telugu movie magic! Here are some amazing Telugu films:"},
}

func matchAnyLanguageKeyword(q string) bool {
	for _, lr := range languageRules {
		if containsAny(q, lr.keywords...) {
			return true
		}
	}
	return false
}

func (r *Router) handleLanguage(_ context.Context, in input) (Result, bool) {
	for _, lr := range languageRules {
		if !containsAny(in.lower, lr.keywords...) {
			continue
		}
		movies := limit(search.Search(in.catalog, "", &models.SearchFilters{Language: lr.language}), langLimit)
		return Result{Message: lr.message, Movies: movies}, true
	}
	return Result{}, false
}

var genreRules = []struct {
	keyword string
	message string
}{
	{"action", "💥 Action-packed adventures coming right up:"},
	{"comedy", "😂 Time for some laughs! These comedies will brighten your day:"},
	{"drama", "🎭 Powerful dramas that will move you:"},
	{"thriller", "🔥 Edge-of-your-seat thrillers:"},
}

func matchAnyGenreKeyword(q string) bool {
	for _, gr := range genreRules {
		if strings.Contains(q, gr.keyword) {
			return true
		}
	}
	return false
}

func (r *Router) handleGenre(_ context.Context, in input) (Result, bool) {
	for _, gr := range genreRules {
		if !strings.Contains(in.lower, gr.keyword) {
			continue
		}
		movies := limit(search.Search(in.catalog, "", &models.SearchFilters{Genre: gr.keyword}), genreLimit)
		return Result{Message: gr.message, Movies: movies}, true
	}
	return Result{}, false
}

func (r *Router) handleGeneral(ctx context.Context, in input) (Result, bool) {
	found := limit(search.Search(in.catalog, in.raw, nil), generalLimit)
	if len(found) == 0 {
		if r.generator != nil {
			prompt := fmt.Sprintf("A user of a movie chat assistant asked: %q. "+
				"The catalog has no matching movies. Answer helpfully in one or two sentences.", in.raw)
			text, err := r.generator.Generate(ctx, prompt, "")
			if err == nil {
				return Result{Message: text}, true
			}
			slog.Warn("generative fallback failed", "error", err)
		}
		return Result{Message: msgNothingFound(in.raw)}, true
	}

	msg := fmt.Sprintf("🔍 Found %d movie(s) matching \"%s\":", len(found), in.raw)

	seed := append(append([]string{}, in.history...), in.raw)
	recs := recommend.Recommend(in.catalog, seed, nil)
	merged := mergeUnique(found, recs, mergedLimit)
	if len(merged) > len(found) {
		msg += " You might also like the similar picks I've added at the end."
	}

	return Result{Message: msg, Movies: merged, RememberQuery: true}, true
}

func msgNothingFound(query string) string {
	return fmt.Sprintf("Sorry, I couldn't find any movies matching \"%s\". "+
		"Try searching by genre, mood, language, or decade!", query)
}

// mergeUnique appends extras to base, skipping duplicate identifiers, and
// caps the combined list.
func mergeUnique(base, extras []models.Movie, max int) []models.Movie {
	seen := make(map[string]bool, len(base))
	merged := make([]models.Movie, 0, len(base)+len(extras))
	for _, m := range base {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		merged = append(merged, m)
	}
	for _, m := range extras {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		merged = append(merged, m)
	}
	if len(merged) > max {
		merged = merged[:max]
	}
	return merged
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func limit(movies []models.Movie, max int) []models.Movie {
	if len(movies) > max {
		return movies[:max]
	}
	return movies
}

func matchAny(subs ...string) func(string) bool {
	return func(q string) bool { return containsAny(q, subs...) }
}
