package search

import "movie-chat-service/internal/models"

// moodGenres maps each mood to the genres that represent it. This is data,
// not logic: tuning a mood means editing this table only.
var moodGenres = map[models.Mood][]string{
	models.MoodBored:     {"Comedy", "Action", "Adventure"},
	models.MoodSad:       {"Drama", "Romance", "Family"},
	models.MoodExcited:   {"Action", "Adventure", "Thriller"},
	models.MoodRomantic:  {"Romance", "Drama"},
	models.MoodAdventure: {"Adventure", "Action", "Thriller"},
	models.MoodFamily:    {"Family", "Comedy", "Animation"},
}

// MoodGenres returns the genres associated with a mood. Unknown moods
// resolve to an empty list, never an error.
func MoodGenres(mood models.Mood) []string {
	return moodGenres[mood]
}
