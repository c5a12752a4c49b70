package models

import "time"

// users table
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// movies table
type Movie struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  *string  `json:"description"`
	Genre        *string  `json:"genre"`
	ReleaseYear  *int     `json:"release_year"`
	Rating       *float64 `json:"rating"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	VideoURL     *string  `json:"video_url"`
}

// MovieCreate is the body of POST /movies and the shape of seed files.
type MovieCreate struct {
	Title        string   `json:"title" binding:"required"`
	Description  *string  `json:"description"`
	Genre        *string  `json:"genre"`
	ReleaseYear  *int     `json:"release_year"`
	Rating       *float64 `json:"rating"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	VideoURL     *string  `json:"video_url"`
}

// WatchlistMovie is the movie summary joined onto a watchlist entry.
type WatchlistMovie struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Genre        *string  `json:"genre"`
	ReleaseYear  *int     `json:"release_year"`
	Rating       *float64 `json:"rating"`
	ThumbnailURL *string  `json:"thumbnail_url"`
}

// watchlist table joined with movies
type WatchlistEntry struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	MovieID     int64          `json:"movie_id"`
	AddedAt     time.Time      `json:"added_at"`
	InWatchlist bool           `json:"in_watchlist"`
	Movie       WatchlistMovie `json:"movie"`
}

const (
	WatchlistAdded   = "added"
	WatchlistRemoved = "removed"
)

// pushed to websocket subscribers after a watchlist change
type WatchlistEvent struct {
	Type      string         `json:"type"`
	UserID    int64          `json:"user_id"`
	MovieID   int64          `json:"movie_id"`
	Entry     WatchlistEntry `json:"entry"`
	Timestamp int64          `json:"timestamp"`
}
