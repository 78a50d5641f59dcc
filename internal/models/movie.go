package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Movie represents one catalog entry. Records are immutable once loaded;
// every engine works on value copies.
type Movie struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Director         string  `json:"director"`
	Cast             string  `json:"cast"`
	Genres           string  `json:"genres"`
	IMDbID           string  `json:"imdb_id"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	Popularity       float64 `json:"popularity"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	Runtime          string  `json:"runtime"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
}

const (
	TMDBImageBaseW500 = "https://image.tmdb.org/t/p/w500"
	PlaceholderPoster = "/placeholder.svg"
)

// ReleaseYear parses the year component of the release date.
// Partial dates like "1995" are accepted; unparsable dates report ok=false.
func (m Movie) ReleaseYear() (int, bool) {
	field := m.ReleaseDate
	if i := strings.IndexByte(field, '-'); i >= 0 {
		field = field[:i]
	}
	year, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, false
	}
	return year, true
}

// GenreList splits the comma-joined genres field into trimmed entries.
func (m Movie) GenreList() []string {
	if strings.TrimSpace(m.Genres) == "" {
		return nil
	}
	parts := strings.Split(m.Genres, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// PosterURL resolves the poster reference to a full image URL.
func (m Movie) PosterURL() string {
	if m.PosterPath == "" {
		return PlaceholderPoster
	}
	if strings.HasPrefix(m.PosterPath, "http") {
		return m.PosterPath
	}
	return TMDBImageBaseW500 + m.PosterPath
}

// WatchURL builds an external "where to watch" search link for the movie.
func (m Movie) WatchURL() string {
	q := "Watch " + m.Title
	if year, ok := m.ReleaseYear(); ok {
		q = fmt.Sprintf("%s %d", q, year)
	}
	return "https://www.google.com/search?q=" + url.QueryEscape(q)
}

// Tags derives up to three display badges from the movie's metadata.
func (m Movie) Tags() []string {
	var tags []string
	if m.VoteAverage >= 8.0 {
		tags = append(tags, "Highly Rated")
	}
	if m.VoteAverage >= 7.5 {
		tags = append(tags, "Critic Choice")
	}
	if m.Popularity > 10 {
		tags = append(tags, "Popular")
	}
	if strings.Contains(strings.ToLower(m.Genres), "family") {
		tags = append(tags, "Family Favorite")
	}
	switch m.OriginalLanguage {
	case "hi":
		tags = append(tags, "Bollywood")
	case "en":
		tags = append(tags, "Hollywood")
	case "ta":
		tags = append(tags, "Tamil Cinema")
	case "te":
		tags = append(tags, "Telugu Cinema")
	}
	if year, ok := m.ReleaseYear(); ok {
		if year >= 2020 {
			tags = append(tags, "Recent Release")
		}
		if year < 2000 {
			tags = append(tags, "Classic")
		}
	}
	if len(tags) > 3 {
		tags = tags[:3]
	}
	return tags
}

// Mood is a closed set of emotional states that map to genres.
type Mood string

const (
	MoodBored     Mood = "bored"
	MoodSad       Mood = "sad"
	MoodExcited   Mood = "excited"
	MoodRomantic  Mood = "romantic"
	MoodAdventure Mood = "adventure"
	MoodFamily    Mood = "family"
)

// SearchFilters narrows a catalog search. All set fields apply conjunctively.
type SearchFilters struct {
	Genre    string `json:"genre,omitempty"`
	Language string `json:"language,omitempty"`
	Year     string `json:"year,omitempty"`
	Decade   string `json:"decade,omitempty"`
	Director string `json:"director,omitempty"`
	Actor    string `json:"actor,omitempty"`
	Mood     Mood   `json:"mood,omitempty"`
}
