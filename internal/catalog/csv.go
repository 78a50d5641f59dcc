package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"movie-chat-service/internal/models"
)

// LoadCSV reads the catalog from a header-driven CSV file. Rows without a
// title are dropped; numeric fields parse leniently, defaulting to zero.
func LoadCSV(path string) ([]models.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	movies, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	slog.Info("catalog loaded from CSV", "path", path, "movies", len(movies))
	return movies, nil
}

// ParseCSV decodes catalog records from CSV data. The first row is the
// header; column lookup is by name and case-insensitive, so "Title" and
// "title" both work.
func ParseCSV(r io.Reader) ([]models.Movie, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var movies []models.Movie
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			slog.Warn("skipping malformed catalog row", "line", line, "error", err)
			continue
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		title := field("title")
		if title == "" {
			continue
		}

		id := field("id")
		if id == "" {
			id = strconv.Itoa(line)
		}

		popularity, _ := strconv.ParseFloat(field("popularity"), 64)
		voteAverage, _ := strconv.ParseFloat(field("vote_average"), 64)
		voteCount, _ := strconv.Atoi(field("vote_count"))

		movies = append(movies, models.Movie{
			ID:               id,
			Title:            title,
			Director:         field("director"),
			Cast:             field("cast"),
			Genres:           field("genres"),
			IMDbID:           field("imdb_id"),
			OriginalLanguage: field("original_language"),
			Overview:         field("overview"),
			Popularity:       popularity,
			PosterPath:       field("poster_path"),
			ReleaseDate:      field("release_date"),
			Runtime:          field("runtime"),
			VoteAverage:      voteAverage,
			VoteCount:        voteCount,
		})
	}

	return movies, nil
}
