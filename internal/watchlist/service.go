package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"flixnet/internal/apperr"
	"flixnet/internal/movie"
	"flixnet/pkg/database"
	"flixnet/pkg/models"
)

// Notifier receives an event after every committed watchlist change.
type Notifier interface {
	Publish(evt models.WatchlistEvent)
}

// Service implements the per-(user, movie) Absent/Present state machine.
// Every mutating call runs its read-check-then-act inside one transaction.
type Service struct {
	db       *sql.DB
	notifier Notifier
	log      zerolog.Logger

	// inTx runs fn against one store transaction.
	inTx func(ctx context.Context, fn func(q database.Querier) error) error
}

// NewService wires a service to db. notifier may be nil.
func NewService(db *sql.DB, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		db:       db,
		notifier: notifier,
		log:      logger,
		inTx: func(ctx context.Context, fn func(q database.Querier) error) error {
			return database.WithTx(ctx, db, func(tx *sql.Tx) error { return fn(tx) })
		},
	}
}

// Add moves the pair from Absent to Present. The movie must exist; an
// existing entry is a Conflict.
func (s *Service) Add(ctx context.Context, userID, movieID int64) (models.WatchlistEntry, error) {
	var entry models.WatchlistEntry
	err := s.inTx(ctx, func(tx database.Querier) error {
		if _, err := movie.GetByID(ctx, tx, movieID); err != nil {
			return err
		}
		if _, err := FindEntry(ctx, tx, userID, movieID); err == nil {
			return apperr.Conflict("Already in watchlist")
		} else if !isNotFound(err) {
			return err
		}
		var err error
		entry, err = add(ctx, tx, userID, movieID)
		return err
	})
	if err != nil {
		return models.WatchlistEntry{}, s.fail(err, "add", userID, movieID)
	}
	s.publish(models.WatchlistAdded, entry)
	return entry, nil
}

// Remove moves the pair from Present to Absent and returns the entry as it
// was just before deletion.
func (s *Service) Remove(ctx context.Context, userID, movieID int64) (models.WatchlistEntry, error) {
	var entry models.WatchlistEntry
	err := s.inTx(ctx, func(tx database.Querier) error {
		existing, err := FindEntry(ctx, tx, userID, movieID)
		if err != nil {
			return err
		}
		entry, err = remove(ctx, tx, existing)
		return err
	})
	if err != nil {
		return models.WatchlistEntry{}, s.fail(err, "remove", userID, movieID)
	}
	s.publish(models.WatchlistRemoved, entry)
	return entry, nil
}

// Toggle flips the pair: exactly one of add or remove runs, chosen by the
// state read inside the transaction. The result's InWatchlist reports the new
// state.
func (s *Service) Toggle(ctx context.Context, userID, movieID int64) (models.WatchlistEntry, error) {
	var entry models.WatchlistEntry
	err := s.inTx(ctx, func(tx database.Querier) error {
		if _, err := movie.GetByID(ctx, tx, movieID); err != nil {
			return err
		}
		existing, err := FindEntry(ctx, tx, userID, movieID)
		switch {
		case err == nil:
			entry, err = remove(ctx, tx, existing)
		case isNotFound(err):
			entry, err = add(ctx, tx, userID, movieID)
		}
		return err
	})
	if err != nil {
		return models.WatchlistEntry{}, s.fail(err, "toggle", userID, movieID)
	}
	if entry.InWatchlist {
		s.publish(models.WatchlistAdded, entry)
	} else {
		s.publish(models.WatchlistRemoved, entry)
	}
	return entry, nil
}

func (s *Service) Get(ctx context.Context, userID, movieID int64) (models.WatchlistEntry, error) {
	entry, err := FindEntry(ctx, s.db, userID, movieID)
	if err != nil {
		return models.WatchlistEntry{}, s.fail(err, "get", userID, movieID)
	}
	return entry, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]models.WatchlistEntry, error) {
	entries, err := ListEntries(ctx, s.db, userID)
	if err != nil {
		return nil, s.fail(err, "list", userID, 0)
	}
	return entries, nil
}

func add(ctx context.Context, tx database.Querier, userID, movieID int64) (models.WatchlistEntry, error) {
	if _, err := InsertEntry(ctx, tx, userID, movieID, time.Now().UTC()); err != nil {
		return models.WatchlistEntry{}, err
	}
	return FindEntry(ctx, tx, userID, movieID)
}

// remove deletes the row and hands back the last known entry; nothing is
// read from the store after the delete.
func remove(ctx context.Context, tx database.Querier, existing models.WatchlistEntry) (models.WatchlistEntry, error) {
	if err := DeleteEntry(ctx, tx, existing.UserID, existing.MovieID); err != nil {
		return models.WatchlistEntry{}, err
	}
	existing.InWatchlist = false
	return existing, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}

// fail logs store failures; client errors pass through silently.
func (s *Service) fail(err error, op string, userID, movieID int64) error {
	if apperr.Status(err) >= 500 {
		s.log.Error().Err(err).
			Str("op", op).
			Int64("user_id", userID).
			Int64("movie_id", movieID).
			Msg("watchlist store failure")
	}
	return err
}

func (s *Service) publish(kind string, entry models.WatchlistEntry) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(models.WatchlistEvent{
		Type:      kind,
		UserID:    entry.UserID,
		MovieID:   entry.MovieID,
		Entry:     entry,
		Timestamp: time.Now().Unix(),
	})
}
