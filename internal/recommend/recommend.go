// Package recommend scores catalog entries against the session's recent
// queries, and optionally against a reference movie, to produce a short
// "you might also like" list.
package recommend

import (
	"sort"
	"strings"

	"movie-chat-service/internal/models"
)

// MaxResults caps the recommendation list.
const MaxResults = 6

// Signal weights for history matches and reference-movie affinity.
const (
	titleWeight       = 5
	directorWeight    = 4
	genreWeight       = 3
	castWeight        = 2
	sharedGenreWeight = 3
	sameDirectorBonus = 5
	closeYearBonus    = 2
	closeYearRange    = 5
)

// Recommend ranks catalog entries by how well they match the recent query
// history and the optional reference movie. Candidates scoring zero or below
// are dropped, the reference movie itself is always excluded, and at most
// MaxResults entries are returned. With no history and no reference there is
// no signal to rank on, so the result is empty.
func Recommend(catalog []models.Movie, history []string, reference *models.Movie) []models.Movie {
	if len(history) == 0 && reference == nil {
		return nil
	}

	type scored struct {
		movie models.Movie
		score int
	}
	candidates := make([]scored, 0, len(catalog))

	for _, m := range catalog {
		if reference != nil && m.ID == reference.ID {
			continue
		}
		s := historyScore(m, history)
		if reference != nil {
			s += referenceScore(m, *reference)
		}
		if s <= 0 {
			continue
		}
		candidates = append(candidates, scored{movie: m, score: s})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > MaxResults {
		candidates = candidates[:MaxResults]
	}

	result := make([]models.Movie, len(candidates))
	for i, c := range candidates {
		result[i] = c.movie
	}
	return result
}

func historyScore(m models.Movie, history []string) int {
	title := strings.ToLower(m.Title)
	director := strings.ToLower(m.Director)
	genres := strings.ToLower(m.Genres)
	cast := strings.ToLower(m.Cast)

	score := 0
	for _, q := range history {
		q = strings.ToLower(strings.TrimSpace(q))
		if q == "" {
			continue
		}
		if strings.Contains(title, q) {
			score += titleWeight
		}
		if strings.Contains(director, q) {
			score += directorWeight
		}
		if strings.Contains(genres, q) {
			score += genreWeight
		}
		if strings.Contains(cast, q) {
			score += castWeight
		}
	}
	return score
}

func referenceScore(m, ref models.Movie) int {
	score := 0

	refGenres := make(map[string]bool)
	for _, g := range ref.GenreList() {
		refGenres[strings.ToLower(g)] = true
	}
	for _, g := range m.GenreList() {
		if refGenres[strings.ToLower(g)] {
			score += sharedGenreWeight
		}
	}

	if m.Director != "" && m.Director == ref.Director {
		score += sameDirectorBonus
	}

	if my, ok := m.ReleaseYear(); ok {
		if ry, ok := ref.ReleaseYear(); ok {
			diff := my - ry
			if diff < 0 {
				diff = -diff
			}
			if diff <= closeYearRange {
				score += closeYearBonus
			}
		}
	}
	return score
}
