package grpc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flixnet/internal/apperr"
	"flixnet/internal/movie"
	"flixnet/pkg/models"
)

// Server implements CatalogServer on top of the movies table.
type Server struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewServer(db *sql.DB, logger zerolog.Logger) *Server {
	return &Server{db: db, log: logger}
}

func (s *Server) GetMovie(ctx context.Context, req *GetMovieRequest) (*models.Movie, error) {
	if req.ID <= 0 {
		return nil, status.Errorf(codes.InvalidArgument, "invalid movie id: %d", req.ID)
	}
	m, err := movie.GetByID(ctx, s.db, req.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, status.Errorf(codes.NotFound, "movie not found: %d", req.ID)
		}
		s.log.Error().Err(err).Int64("movie_id", req.ID).Msg("grpc get movie")
		return nil, status.Error(codes.Internal, "failed to get movie")
	}
	return &m, nil
}

func (s *Server) ListMovies(ctx context.Context, _ *ListMoviesRequest) (*ListMoviesResponse, error) {
	movies, err := movie.List(ctx, s.db)
	if err != nil {
		s.log.Error().Err(err).Msg("grpc list movies")
		return nil, status.Error(codes.Internal, "failed to list movies")
	}
	return &ListMoviesResponse{Movies: movies}, nil
}
