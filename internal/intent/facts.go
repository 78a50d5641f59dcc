package intent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"movie-chat-service/internal/models"
	"movie-chat-service/internal/search"
)

// factPattern recognizes one fact question. trigger gates the pattern,
// capture extracts the trailing movie-name phrase (first capture group, no
// validation), and answer renders the reply from the resolved movie.
type factPattern struct {
	intent  string
	trigger string
	capture *regexp.Regexp
	answer  func(m models.Movie) string
}

// factPatterns are evaluated in order; the first trigger hit decides the
// question type.
var factPatterns = []factPattern{
	{
		intent:  "fact_director",
		trigger: "who directed",
		capture: regexp.MustCompile(`who directed\s+(.+?)\s*\??$`),
		answer: func(m models.Movie) string {
			if m.Director == "" {
				return fmt.Sprintf("I don't have director info for %s, sorry!", m.Title)
			}
			return fmt.Sprintf("🎬 %s was directed by %s.", m.Title, m.Director)
		},
	},
	{
		intent:  "fact_cast",
		trigger: "cast of",
		capture: regexp.MustCompile(`cast of\s+(.+?)\s*\??$`),
		answer: func(m models.Movie) string {
			if m.Cast == "" {
				return fmt.Sprintf("I don't have cast info for %s, sorry!", m.Title)
			}
			return fmt.Sprintf("🌟 The cast of %s includes %s.", m.Title, m.Cast)
		},
	},
	{
		intent:  "fact_genre",
		trigger: "genre of",
		capture: regexp.MustCompile(`genre of\s+(.+?)\s*\??$`),
		answer:  genreAnswer,
	},
	{
		intent:  "fact_genre",
		trigger: "what genre is",
		capture: regexp.MustCompile(`what genre is\s+(.+?)\s*\??$`),
		answer:  genreAnswer,
	},
	{
		intent:  "fact_release",
		trigger: "when was",
		capture: regexp.MustCompile(`when was\s+(.+?)(?:\s+released)?\s*\??$`),
		answer: func(m models.Movie) string {
			if m.ReleaseDate == "" {
				return fmt.Sprintf("I don't have a release date for %s, sorry!", m.Title)
			}
			return fmt.Sprintf("📅 %s was released on %s.", m.Title, m.ReleaseDate)
		},
	},
	{
		intent:  "fact_overview",
		trigger: "what is",
		capture: regexp.MustCompile(`what is\s+(.+?)\s+about\s*\??$`),
		answer: func(m models.Movie) string {
			if m.Overview == "" {
				return fmt.Sprintf("I don't have a synopsis for %s, sorry!", m.Title)
			}
			return fmt.Sprintf("📖 %s: %s", m.Title, m.Overview)
		},
	},
	{
		intent:  "fact_rating",
		trigger: "rating of",
		capture: regexp.MustCompile(`rating of\s+(.+?)\s*\??$`),
		answer: func(m models.Movie) string {
			return fmt.Sprintf("⭐ %s has a rating of %.1f/10 from %d votes.",
				m.Title, m.VoteAverage, m.VoteCount)
		},
	},
}

func genreAnswer(m models.Movie) string {
	if m.Genres == "" {
		return fmt.Sprintf("I don't have genre info for %s, sorry!", m.Title)
	}
	return fmt.Sprintf("🎭 %s is a %s film.", m.Title, m.Genres)
}

func matchFactQuestion(q string) bool {
	for _, fp := range factPatterns {
		if strings.Contains(q, fp.trigger) {
			return true
		}
	}
	return false
}

func (r *Router) handleFactQuestion(_ context.Context, in input) (Result, bool) {
	for _, fp := range factPatterns {
		if !strings.Contains(in.lower, fp.trigger) {
			continue
		}

		name := extractMovieName(fp.capture, in.lower)
		if name == "" {
			return Result{
				Intent: fp.intent,
				Message: "Could you tell me which movie you mean? " +
					"For example: \"who directed Inception\".",
			}, true
		}

		// The filter engine sorts by popularity, so the first match is
		// the best-known movie with that name.
		matches := search.Search(in.catalog, name, nil)
		if len(matches) == 0 {
			return Result{
				Intent:  fp.intent,
				Message: fmt.Sprintf("Sorry, I couldn't find \"%s\" in my collection.", name),
			}, true
		}

		m := matches[0]
		return Result{
			Intent:  fp.intent,
			Message: fp.answer(m),
			Movies:  []models.Movie{m},
		}, true
	}
	return Result{}, false
}

func extractMovieName(re *regexp.Regexp, q string) string {
	groups := re.FindStringSubmatch(q)
	if len(groups) < 2 {
		return ""
	}
	return strings.TrimSpace(groups[1])
}
