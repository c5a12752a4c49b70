package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"flixnet/internal/apperr"
	"flixnet/pkg/database"
	"flixnet/pkg/models"
)

// every entry is read together with its movie in a single query
const entryQuery = `
	SELECT w.id, w.user_id, w.movie_id, w.added_at,
	       m.id, m.title, m.genre, m.release_year, m.rating, m.thumbnail_url
	FROM watchlist w
	JOIN movies m ON m.id = w.movie_id`

func scanEntry(row interface{ Scan(...any) error }) (models.WatchlistEntry, error) {
	var e models.WatchlistEntry
	err := row.Scan(&e.ID, &e.UserID, &e.MovieID, &e.AddedAt,
		&e.Movie.ID, &e.Movie.Title, &e.Movie.Genre, &e.Movie.ReleaseYear, &e.Movie.Rating, &e.Movie.ThumbnailURL)
	if err != nil {
		return models.WatchlistEntry{}, err
	}
	e.InWatchlist = true
	return e, nil
}

// FindEntry returns the (user, movie) entry with its movie joined, or a
// NotFound error when the pair is absent.
func FindEntry(ctx context.Context, db database.Querier, userID, movieID int64) (models.WatchlistEntry, error) {
	e, err := scanEntry(db.QueryRowContext(ctx, entryQuery+` WHERE w.user_id = $1 AND w.movie_id = $2`, userID, movieID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.WatchlistEntry{}, apperr.NotFound("Not in watchlist")
	}
	if err != nil {
		return models.WatchlistEntry{}, fmt.Errorf("find watchlist entry: %w", err)
	}
	return e, nil
}

// ListEntries returns every entry owned by userID, oldest first. It never
// returns nil.
func ListEntries(ctx context.Context, db database.Querier, userID int64) ([]models.WatchlistEntry, error) {
	rows, err := db.QueryContext(ctx, entryQuery+` WHERE w.user_id = $1 ORDER BY w.added_at, w.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	res := []models.WatchlistEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// InsertEntry creates the (user, movie) row. The store's unique constraint
// is the final guard against duplicates; a violation becomes a Conflict.
func InsertEntry(ctx context.Context, db database.Querier, userID, movieID int64, addedAt time.Time) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO watchlist (user_id, movie_id, added_at)
		VALUES ($1, $2, $3)
		RETURNING id`, userID, movieID, addedAt).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, apperr.Conflict("Already in watchlist")
		}
		return 0, fmt.Errorf("insert watchlist entry: %w", err)
	}
	return id, nil
}

// DeleteEntry removes the (user, movie) row. Deleting an absent pair is a
// NotFound error.
func DeleteEntry(ctx context.Context, db database.Querier, userID, movieID int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM watchlist WHERE user_id = $1 AND movie_id = $2`, userID, movieID)
	if err != nil {
		return fmt.Errorf("delete watchlist entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete watchlist entry: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("Not in watchlist")
	}
	return nil
}
