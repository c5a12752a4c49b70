package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"flixnet/pkg/models"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

// DefaultMovies is the catalog installed by `seed` when no file is given.
var DefaultMovies = []models.MovieCreate{
	{
		Title:        "Inception",
		Description:  strPtr("A skilled thief leads a team into people's dreams."),
		Genre:        strPtr("Sci-Fi"),
		ReleaseYear:  intPtr(2010),
		Rating:       floatPtr(8.8),
		ThumbnailURL: strPtr("https://image.tmdb.org/t/p/w500/qmDpIHrmpJINaRKAfWQfftjCdyi.jpg"),
		VideoURL:     strPtr("https://example.com/inception.mp4"),
	},
	{
		Title:        "Stranger Things",
		Description:  strPtr("A group of kids uncover a secret lab and a strange girl with powers."),
		Genre:        strPtr("Drama"),
		ReleaseYear:  intPtr(2016),
		Rating:       floatPtr(8.7),
		ThumbnailURL: strPtr("https://image.tmdb.org/t/p/w500/x2LSRK2Cm7MZhjluni1msVJ3wDF.jpg"),
		VideoURL:     strPtr("https://example.com/strangerthings.mp4"),
	},
	{
		Title:        "The Dark Knight",
		Description:  strPtr("Batman faces his toughest challenge against the Joker."),
		Genre:        strPtr("Action"),
		ReleaseYear:  intPtr(2008),
		Rating:       floatPtr(9.0),
		ThumbnailURL: strPtr("https://image.tmdb.org/t/p/w500/qJ2tW6WMUDux911r6m7haRef0WH.jpg"),
		VideoURL:     strPtr("https://example.com/darkknight.mp4"),
	},
}

func LoadMoviesFromJSON(jsonPath string) ([]models.MovieCreate, error) {
	b, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read movies json: %w", err)
	}

	var list []models.MovieCreate
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("unmarshal movies json: %w", err)
	}
	for i, m := range list {
		if m.Title == "" {
			return nil, fmt.Errorf("movie %d: title required", i)
		}
	}
	return list, nil
}

// SeedMovies inserts every movie whose title is not already present and
// returns how many rows were added.
func SeedMovies(ctx context.Context, db *sql.DB, movies []models.MovieCreate) (int, error) {
	inserted := 0
	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, m := range movies {
			var exists int
			err := tx.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE title = $1`, m.Title).Scan(&exists)
			if err == nil {
				continue
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("lookup movie %q: %w", m.Title, err)
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO movies (title, description, genre, release_year, rating, thumbnail_url, video_url)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				m.Title, m.Description, m.Genre, m.ReleaseYear, m.Rating, m.ThumbnailURL, m.VideoURL)
			if err != nil {
				return fmt.Errorf("insert movie %q: %w", m.Title, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
