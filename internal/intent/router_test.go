package intent

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"movie-chat-service/internal/models"
)

type fakeSemantic struct {
	movies []models.Movie
	err    error
	calls  int
}

func (f *fakeSemantic) Search(_ context.Context, _, _ string) ([]models.Movie, error) {
	f.calls++
	return f.movies, f.err
}

type fakeProfiler struct {
	genres []string
	err    error
}

func (f *fakeProfiler) PreferredGenres(_ context.Context, _ string) ([]string, error) {
	return f.genres, f.err
}

type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

func testCatalog() []models.Movie {
	return []models.Movie{
		{
			ID: "1", Title: "Inception", Director: "Christopher Nolan",
			Cast: "Leonardo DiCaprio, Joseph Gordon-Levitt", Genres: "Action, Science Fiction, Thriller",
			OriginalLanguage: "en", Overview: "A thief steals secrets through dream-sharing.",
			Popularity: 29.1, ReleaseDate: "2010-07-16", VoteAverage: 8.4, VoteCount: 30000,
		},
		{
			ID: "2", Title: "Dilwale Dulhania Le Jayenge", Director: "Aditya Chopra",
			Cast: "Shah Rukh Khan, Kajol", Genres: "Comedy, Drama, Romance",
			OriginalLanguage: "hi", Popularity: 25.8, ReleaseDate: "1995-10-20",
		},
		{
			ID: "3", Title: "The Dark Knight", Director: "Christopher Nolan",
			Cast: "Christian Bale", Genres: "Action, Crime, Drama, Thriller",
			OriginalLanguage: "en", Popularity: 28.0, ReleaseDate: "2008-07-16",
		},
		{
			ID: "4", Title: "The Lion King", Director: "Roger Allers",
			Genres: "Family, Animation, Drama", OriginalLanguage: "en",
			Popularity: 22.0, ReleaseDate: "1994-06-24",
		},
	}
}

// plainRouter has no AI collaborators: only the keyword rules apply.
func plainRouter() *Router {
	return NewRouter(nil, nil, nil, rand.New(rand.NewSource(1)))
}

func TestSurpriseMeReturnsExactlyOneMovie(t *testing.T) {
	r := plainRouter()

	for _, query := range []string{"surprise me", "give me something random"} {
		res := r.Respond(context.Background(), testCatalog(), "", query, nil)
		if res.Intent != "surprise" {
			t.Errorf("query %q: expected surprise intent, got %s", query, res.Intent)
		}
		if len(res.Movies) != 1 {
			t.Errorf("query %q: expected exactly one movie, got %d", query, len(res.Movies))
		}
	}
}

func TestSurpriseMeSingleEntryCatalog(t *testing.T) {
	r := plainRouter()
	catalog := testCatalog()[:1]

	res := r.Respond(context.Background(), catalog, "", "surprise me", nil)
	if len(res.Movies) != 1 || res.Movies[0].ID != "1" {
		t.Errorf("expected the only catalog entry, got %v", res.Movies)
	}
}

func TestSurpriseMeEmptyCatalog(t *testing.T) {
	r := plainRouter()

	res := r.Respond(context.Background(), nil, "", "surprise me", nil)
	if len(res.Movies) != 0 {
		t.Errorf("empty catalog should attach no movies, got %d", len(res.Movies))
	}
	if !strings.Contains(res.Message, "Sorry") {
		t.Errorf("expected apology message, got %q", res.Message)
	}
}

// One router serves all HTTP requests, so surprise picks must be safe to
// draw from many goroutines at once. Run with -race.
func TestSurpriseMeConcurrentRequests(t *testing.T) {
	r := plainRouter()
	catalog := testCatalog()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				res := r.Respond(context.Background(), catalog, "", "surprise me", nil)
				if len(res.Movies) != 1 {
					t.Errorf("expected exactly one movie, got %d", len(res.Movies))
				}
			}
		}()
	}
	wg.Wait()
}

func TestWhoDirectedFactQuestion(t *testing.T) {
	r := plainRouter()

	res := r.Respond(context.Background(), testCatalog(), "", "who directed inception", nil)
	if !strings.Contains(res.Message, "Christopher Nolan") {
		t.Errorf("expected the director in the answer, got %q", res.Message)
	}
	if len(res.Movies) != 1 || res.Movies[0].ID != "1" {
		t.Errorf("expected Inception attached, got %v", res.Movies)
	}
}

func TestFactQuestionMovieNotFound(t *testing.T) {
	r := plainRouter()

	res := r.Respond(context.Background(), testCatalog(), "", "who directed flibbertigibbet", nil)
	if len(res.Movies) != 0 {
		t.Errorf("expected no attached movies, got %d", len(res.Movies))
	}
	if !strings.Contains(res.Message, "couldn't find") {
		t.Errorf("expected a not-found message, got %q", res.Message)
	}
}

func TestFactQuestionWithoutMovieName(t *testing.T) {
	r := plainRouter()

	res := r.Respond(context.Background(), testCatalog(), "", "who directed", nil)
	if len(res.Movies) != 0 {
		t.Errorf("expected no attached movies, got %d", len(res.Movies))
	}
	if !strings.Contains(res.Message, "which movie") {
		t.Errorf("expected a prompt to name a movie, got %q", res.Message)
	}
}

func TestFactQuestionAnswers(t *testing.T) {
	r := plainRouter()

	tests := []struct {
		query    string
		contains string
	}{
		{"cast of inception", "Leonardo DiCaprio"},
		{"what genre is inception", "Science Fiction"},
		{"genre of the dark knight", "Crime"},
		{"when was inception released", "2010-07-16"},
		{"what is inception about", "dream-sharing"},
		{"rating of inception", "8.4"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := r.Respond(context.Background(), testCatalog(), "", tt.query, nil)
			if !strings.Contains(res.Message, tt.contains) {
				t.Errorf("query %q: expected answer containing %q, got %q", tt.query, tt.contains, res.Message)
			}
			if len(res.Movies) != 1 {
				t.Errorf("query %q: expected one attached movie, got %d", tt.query, len(res.Movies))
			}
		})
	}
}

func TestMoodRule(t *testing.T) {
	r := plainRouter()

	res := r.Respond(context.Background(), testCatalog(), "", "i'm feeling romantic tonight", nil)
	if res.Intent != "mood" {
		t.Fatalf("expected mood intent, got %s", res.Intent)
	}
	if len(res.Movies) == 0 || len(res.Movies) > moodLimit {
		t.Fatalf("expected 1..%d movies, got %d", moodLimit, len(res.Movies))
	}
	for _, m := range res.Movies {
		genres := strings.ToLower(m.Genres)
		if !strings.Contains(genres, "romance") && !strings.Contains(genres, "drama") {
			t.Errorf("movie %s does not match the romantic mood", m.Title)
		}
	}
}

func TestDecadeRule(t *testing.T) {
	r := plainRouter()

	res := r.Respond(context.Background(), testCatalog(), "", "show me 90s classics", nil)
	if res.Intent != "decade" {
		t.Fatalf("expected decade intent, got %s", res.Intent)
	}
	for _, m := range res.Movies {
		year, ok := m.ReleaseYear()
		if !ok || year < 1990 || year > 1999 {
			t.Errorf("movie %s (%s) is not from the 1990s", m.Title, m.ReleaseDate)
		}
	}
	if len(res.Movies) == 0 {
		t.Error("expected 1990s movies in the catalog")
	}
}

func TestLanguageRule(t *testing.T) {
	r := plainRouter()

	res := r.Respond(context.Background(), testCatalog(), "", "any good bollywood films?", nil)
	if res.Intent != "language" {
		t.Fatalf("expected language intent, got %s", res.Intent)
	}
	for _, m := range res.Movies {
		if m.OriginalLanguage != "hi" {
			t.Errorf("movie %s is not Hindi", m.Title)
		}
	}
}

func TestGenreRule(t *testing.T) {
	r := plainRouter()

	res := r.Respond(context.Background(), testCatalog(), "", "action movies please", nil)
	if res.Intent != "genre" {
		t.Fatalf("expected genre intent, got %s", res.Intent)
	}
	if len(res.Movies) == 0 || len(res.Movies) > genreLimit {
		t.Fatalf("expected 1..%d movies, got %d", genreLimit, len(res.Movies))
	}
	for _, m := range res.Movies {
		if !strings.Contains(strings.ToLower(m.Genres), "action") {
			t.Errorf("movie %s is not an action movie", m.Title)
		}
	}
}

func TestMoodOutranksGenre(t *testing.T) {
	r := plainRouter()

	// "romantic" is a mood keyword and must win over any genre keyword
	// appearing later in the same query.
	res := r.Respond(context.Background(), testCatalog(), "", "romantic drama", nil)
	if res.Intent != "mood" {
		t.Errorf("expected the mood rule to win, got %s", res.Intent)
	}
}

func TestGeneralSearchAttachesRecommendations(t *testing.T) {
	r := plainRouter()

	res := r.Respond(context.Background(), testCatalog(), "", "dicaprio", []string{"nolan"})
	if res.Intent != "general" {
		t.Fatalf("expected general intent, got %s", res.Intent)
	}
	if !res.RememberQuery {
		t.Error("a successful general search must be remembered as history")
	}
	if len(res.Movies) == 0 {
		t.Fatal("expected search results")
	}
	if len(res.Movies) > mergedLimit {
		t.Errorf("merged list exceeds %d entries", mergedLimit)
	}

	seen := make(map[string]bool)
	for _, m := range res.Movies {
		if seen[m.ID] {
			t.Errorf("duplicate movie %s in merged results", m.ID)
		}
		seen[m.ID] = true
	}

	// History mentioned Nolan, so The Dark Knight should ride along.
	if !seen["3"] {
		t.Error("expected a history-seeded recommendation in the merged list")
	}
	if !strings.Contains(res.Message, "also like") {
		t.Errorf("expected a recommendation note, got %q", res.Message)
	}
}

func TestGeneralSearchMergedListCapped(t *testing.T) {
	var catalog []models.Movie
	for i := 0; i < 30; i++ {
		catalog = append(catalog, models.Movie{
			ID:    fmt.Sprintf("m%d", i),
			Title: fmt.Sprintf("Galaxy Quest %d", i),
		})
	}
	r := plainRouter()

	res := r.Respond(context.Background(), catalog, "", "galaxy", []string{"quest"})
	if len(res.Movies) > mergedLimit {
		t.Errorf("expected at most %d movies, got %d", mergedLimit, len(res.Movies))
	}
}

func TestGeneralSearchNothingFoundFixedMessage(t *testing.T) {
	r := plainRouter()

	res := r.Respond(context.Background(), testCatalog(), "", "zzyzx", nil)
	if len(res.Movies) != 0 {
		t.Errorf("expected no movies, got %d", len(res.Movies))
	}
	if res.RememberQuery {
		t.Error("a failed search must not pollute the history")
	}
	if !strings.Contains(res.Message, "couldn't find any movies") {
		t.Errorf("expected the fixed not-found message, got %q", res.Message)
	}
}

func TestGeneralSearchNothingFoundUsesGenerator(t *testing.T) {
	gen := &fakeGenerator{text: "Nothing in the catalog, but try a space documentary!"}
	r := NewRouter(nil, nil, gen, rand.New(rand.NewSource(1)))

	res := r.Respond(context.Background(), testCatalog(), "", "zzyzx", nil)
	if res.Message != gen.text {
		t.Errorf("expected the generated answer, got %q", res.Message)
	}
	if gen.calls != 1 {
		t.Errorf("expected one generator call, got %d", gen.calls)
	}
}

func TestGeneralSearchGeneratorFailureDegrades(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model overloaded")}
	r := NewRouter(nil, nil, gen, rand.New(rand.NewSource(1)))

	res := r.Respond(context.Background(), testCatalog(), "", "zzyzx", nil)
	if !strings.Contains(res.Message, "couldn't find any movies") {
		t.Errorf("expected the fixed fallback, got %q", res.Message)
	}
}

func TestPlotSuggestionUsesGenerator(t *testing.T) {
	gen := &fakeGenerator{text: "A heist inside a shared lucid dream."}
	r := NewRouter(nil, nil, gen, rand.New(rand.NewSource(1)))

	res := r.Respond(context.Background(), testCatalog(), "", "suggest a plot idea for me", nil)
	if res.Intent != "plot_suggestion" {
		t.Fatalf("expected plot_suggestion intent, got %s", res.Intent)
	}
	if res.Message != gen.text {
		t.Errorf("expected the generated plot, got %q", res.Message)
	}
	if len(res.Movies) != 0 {
		t.Errorf("plot suggestions attach no movies, got %d", len(res.Movies))
	}
}

func TestPlotSuggestionDegradesOnFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("timeout")}
	r := NewRouter(nil, nil, gen, rand.New(rand.NewSource(1)))

	res := r.Respond(context.Background(), testCatalog(), "", "suggest a plot idea", nil)
	if res.Message != plotApology {
		t.Errorf("expected the fixed apology, got %q", res.Message)
	}
}

func TestSemanticSearchWinsWhenItSucceeds(t *testing.T) {
	sem := &fakeSemantic{movies: []models.Movie{{ID: "s1", Title: "Dream Heist"}}}
	r := NewRouter(sem, nil, nil, rand.New(rand.NewSource(1)))

	// "thriller" would hit the genre rule, but the semantic rule comes first.
	res := r.Respond(context.Background(), testCatalog(), "u1", "a mind-bending thriller about dreams", nil)
	if res.Intent != "semantic" {
		t.Fatalf("expected semantic intent, got %s", res.Intent)
	}
	if len(res.Movies) != 1 || res.Movies[0].ID != "s1" {
		t.Errorf("expected the semantic result, got %v", res.Movies)
	}
	if sem.calls != 1 {
		t.Errorf("expected one semantic call, got %d", sem.calls)
	}
}

func TestSemanticEmptyResultFallsThrough(t *testing.T) {
	sem := &fakeSemantic{}
	r := NewRouter(sem, nil, nil, rand.New(rand.NewSource(1)))

	res := r.Respond(context.Background(), testCatalog(), "", "a mind-bending thriller about dreams", nil)
	if res.Intent != "genre" {
		t.Errorf("expected fall-through to the genre rule, got %s", res.Intent)
	}
}

func TestSemanticFailureFallsThrough(t *testing.T) {
	sem := &fakeSemantic{err: errors.New("service down")}
	r := NewRouter(sem, nil, nil, rand.New(rand.NewSource(1)))

	res := r.Respond(context.Background(), testCatalog(), "", "a mind-bending thriller about dreams", nil)
	if res.Intent != "genre" {
		t.Errorf("expected fall-through to the genre rule, got %s", res.Intent)
	}
}

func TestReservedKeywordsBypassSemantic(t *testing.T) {
	sem := &fakeSemantic{movies: []models.Movie{{ID: "s1", Title: "Should Not Appear"}}}
	r := NewRouter(sem, nil, nil, rand.New(rand.NewSource(1)))

	res := r.Respond(context.Background(), testCatalog(), "", "surprise me", nil)
	if res.Intent != "surprise" {
		t.Errorf("expected surprise intent, got %s", res.Intent)
	}
	if sem.calls != 0 {
		t.Errorf("reserved keywords must skip the semantic rule, got %d calls", sem.calls)
	}
}

func TestSemanticResponseMentionsPreferredGenres(t *testing.T) {
	sem := &fakeSemantic{movies: []models.Movie{{ID: "s1", Title: "Dream Heist"}}}
	prof := &fakeProfiler{genres: []string{"Thriller", "Drama"}}
	r := NewRouter(sem, prof, nil, rand.New(rand.NewSource(1)))

	res := r.Respond(context.Background(), testCatalog(), "u1", "something clever and twisty", nil)
	if !strings.Contains(res.Message, "Thriller") {
		t.Errorf("expected personalization context in the message, got %q", res.Message)
	}
}

func TestProfilerFailureDoesNotBreakSemanticResponse(t *testing.T) {
	sem := &fakeSemantic{movies: []models.Movie{{ID: "s1", Title: "Dream Heist"}}}
	prof := &fakeProfiler{err: errors.New("db down")}
	r := NewRouter(sem, prof, nil, rand.New(rand.NewSource(1)))

	res := r.Respond(context.Background(), testCatalog(), "u1", "something clever and twisty", nil)
	if len(res.Movies) != 1 {
		t.Errorf("profiler failure must not affect the results, got %d movies", len(res.Movies))
	}
}
