// Package search implements the catalog filter engine: pure functions that
// compute a filtered, popularity-ordered subset of the in-memory catalog.
package search

import (
	"sort"
	"strconv"
	"strings"

	"movie-chat-service/internal/models"
)

// Search returns the catalog entries matching the free-text query and the
// structured filters, sorted by popularity descending. The sort is stable,
// so ties keep their catalog order and identical inputs always produce an
// identical result list. A nil filters value applies no structured filters.
func Search(catalog []models.Movie, query string, filters *models.SearchFilters) []models.Movie {
	matched := make([]models.Movie, 0, len(catalog))

	q := strings.ToLower(strings.TrimSpace(query))
	for _, m := range catalog {
		if q != "" && !matchesText(m, q) {
			continue
		}
		if filters != nil && !matchesFilters(m, filters) {
			continue
		}
		matched = append(matched, m)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Popularity > matched[j].Popularity
	})
	return matched
}

// matchesText reports whether any searchable field contains the lower-cased
// query as a substring. No tokenization and no field weighting.
func matchesText(m models.Movie, q string) bool {
	return strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Director), q) ||
		strings.Contains(strings.ToLower(m.Cast), q) ||
		strings.Contains(strings.ToLower(m.Genres), q) ||
		strings.Contains(strings.ToLower(m.Overview), q)
}

func matchesFilters(m models.Movie, f *models.SearchFilters) bool {
	if f.Genre != "" && !strings.Contains(strings.ToLower(m.Genres), strings.ToLower(f.Genre)) {
		return false
	}
	if f.Language != "" && !strings.EqualFold(m.OriginalLanguage, f.Language) {
		return false
	}
	if f.Director != "" && !strings.Contains(strings.ToLower(m.Director), strings.ToLower(f.Director)) {
		return false
	}
	if f.Actor != "" && !strings.Contains(strings.ToLower(m.Cast), strings.ToLower(f.Actor)) {
		return false
	}
	if f.Year != "" && !strings.HasPrefix(m.ReleaseDate, f.Year) {
		return false
	}
	if f.Decade != "" && !inDecade(m, f.Decade) {
		return false
	}
	if f.Mood != "" && !matchesMood(m, f.Mood) {
		return false
	}
	return true
}

// inDecade reports whether the movie's release year falls in
// [decadeStart, decadeStart+9]. Records with unparsable dates never match.
func inDecade(m models.Movie, decade string) bool {
	start, err := strconv.Atoi(decade)
	if err != nil {
		return false
	}
	year, ok := m.ReleaseYear()
	if !ok {
		return false
	}
	return year >= start && year <= start+9
}

// matchesMood reports whether any of the movie's genres matches any genre in
// the mood lexicon.
func matchesMood(m models.Movie, mood models.Mood) bool {
	genres := strings.ToLower(m.Genres)
	for _, g := range MoodGenres(mood) {
		if strings.Contains(genres, strings.ToLower(g)) {
			return true
		}
	}
	return false
}
