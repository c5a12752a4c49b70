package movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flixnet/internal/apperr"
	"flixnet/pkg/database"
	"flixnet/pkg/models"
)

const movieColumns = `id, title, description, genre, release_year, rating, thumbnail_url, video_url`

func scanMovie(row interface{ Scan(...any) error }) (models.Movie, error) {
	var m models.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Genre, &m.ReleaseYear, &m.Rating, &m.ThumbnailURL, &m.VideoURL)
	return m, err
}

// List returns the whole catalog ordered by id. It never returns nil.
func List(ctx context.Context, db database.Querier) ([]models.Movie, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	res := []models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func GetByID(ctx context.Context, db database.Querier, id int64) (models.Movie, error) {
	m, err := scanMovie(db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Movie{}, apperr.NotFound("Movie not found")
	}
	if err != nil {
		return models.Movie{}, fmt.Errorf("get movie %d: %w", id, err)
	}
	return m, nil
}

// Create inserts a movie. Any authenticated user may call this; there is no
// role check.
func Create(ctx context.Context, db database.Querier, in models.MovieCreate) (models.Movie, error) {
	if in.Title == "" {
		return models.Movie{}, apperr.Validation("title is required")
	}
	m, err := scanMovie(db.QueryRowContext(ctx, `
		INSERT INTO movies (title, description, genre, release_year, rating, thumbnail_url, video_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+movieColumns,
		in.Title, in.Description, in.Genre, in.ReleaseYear, in.Rating, in.ThumbnailURL, in.VideoURL))
	if err != nil {
		return models.Movie{}, fmt.Errorf("insert movie: %w", err)
	}
	return m, nil
}
