package recommend

import (
	"fmt"
	"testing"

	"movie-chat-service/internal/models"
)

func testCatalog() []models.Movie {
	return []models.Movie{
		{
			ID: "1", Title: "Inception", Director: "Christopher Nolan",
			Cast: "Leonardo DiCaprio", Genres: "Action, Science Fiction, Thriller",
			Popularity: 29.1, ReleaseDate: "2010-07-16",
		},
		{
			ID: "2", Title: "Interstellar", Director: "Christopher Nolan",
			Cast: "Matthew McConaughey", Genres: "Adventure, Drama, Science Fiction",
			Popularity: 31.0, ReleaseDate: "2014-11-05",
		},
		{
			ID: "3", Title: "Grown Ups", Director: "Dennis Dugan",
			Cast: "Adam Sandler", Genres: "Comedy",
			Popularity: 10.0, ReleaseDate: "2010-06-24",
		},
		{
			ID: "4", Title: "The Dark Knight", Director: "Christopher Nolan",
			Cast: "Christian Bale", Genres: "Action, Crime, Drama, Thriller",
			Popularity: 28.0, ReleaseDate: "2008-07-16",
		},
	}
}

func ids(movies []models.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func TestRecommendRequiresASignal(t *testing.T) {
	if got := Recommend(testCatalog(), nil, nil); len(got) != 0 {
		t.Errorf("no history and no reference should yield nothing, got %v", ids(got))
	}
	if got := Recommend(testCatalog(), []string{}, nil); len(got) != 0 {
		t.Errorf("empty history and no reference should yield nothing, got %v", ids(got))
	}
}

func TestRecommendHistoryTitleMatchRanksFirst(t *testing.T) {
	got := Recommend(testCatalog(), []string{"inception"}, nil)
	if len(got) != 1 {
		t.Fatalf("expected only the title match to score, got %v", ids(got))
	}
	if got[0].ID != "1" {
		t.Errorf("expected Inception first, got %s", got[0].Title)
	}
}

func TestRecommendHistoryDirectorMatch(t *testing.T) {
	got := Recommend(testCatalog(), []string{"nolan"}, nil)
	if len(got) != 3 {
		t.Fatalf("expected the three Nolan movies, got %v", ids(got))
	}
	for _, m := range got {
		if m.Director != "Christopher Nolan" {
			t.Errorf("unexpected movie %s in director-match results", m.Title)
		}
	}
}

func TestRecommendHistoryScoresAccumulate(t *testing.T) {
	// "inception" hits title (+5) on movie 1; "nolan" hits director (+4)
	// on movies 1, 2 and 4. Movie 1 must outrank the rest.
	got := Recommend(testCatalog(), []string{"inception", "nolan"}, nil)
	if len(got) == 0 || got[0].ID != "1" {
		t.Fatalf("expected movie 1 to rank first, got %v", ids(got))
	}
}

func TestRecommendReferenceMovieScoring(t *testing.T) {
	catalog := testCatalog()
	ref := catalog[0] // Inception

	got := Recommend(catalog, nil, &ref)

	for _, m := range got {
		if m.ID == ref.ID {
			t.Fatalf("reference movie must never appear in its own recommendations")
		}
	}

	// The Dark Knight shares two genres and the director with Inception
	// and is within five years; Interstellar shares one genre and the
	// director; Grown Ups shares nothing but the era.
	if len(got) < 2 {
		t.Fatalf("expected at least two scored candidates, got %v", ids(got))
	}
	if got[0].ID != "4" {
		t.Errorf("expected The Dark Knight first, got %s", got[0].Title)
	}
	if got[1].ID != "2" {
		t.Errorf("expected Interstellar second, got %s", got[1].Title)
	}
}

func TestRecommendReferenceExcludedEvenWithHistory(t *testing.T) {
	catalog := testCatalog()
	ref := catalog[0]

	got := Recommend(catalog, []string{"inception"}, &ref)
	for _, m := range got {
		if m.ID == ref.ID {
			t.Fatalf("reference movie leaked into recommendations")
		}
	}
}

func TestRecommendZeroScoreCandidatesExcluded(t *testing.T) {
	got := Recommend(testCatalog(), []string{"zzyzx"}, nil)
	if len(got) != 0 {
		t.Errorf("history with no matches should yield nothing, got %v", ids(got))
	}
}

func TestRecommendCapsAtMaxResults(t *testing.T) {
	var catalog []models.Movie
	for i := 0; i < 10; i++ {
		catalog = append(catalog, models.Movie{
			ID:     fmt.Sprintf("m%d", i),
			Title:  fmt.Sprintf("Space Story %d", i),
			Genres: "Science Fiction",
		})
	}

	got := Recommend(catalog, []string{"space"}, nil)
	if len(got) != MaxResults {
		t.Errorf("expected %d results, got %d", MaxResults, len(got))
	}
	// Equal scores: stable sort keeps catalog order.
	for i, m := range got {
		if want := fmt.Sprintf("m%d", i); m.ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, m.ID)
		}
	}
}
