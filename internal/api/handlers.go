package api

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"flixnet/internal/apperr"
	"flixnet/internal/auth"
	"flixnet/internal/movie"
	"flixnet/internal/user"
	"flixnet/internal/watchlist"
	"flixnet/pkg/models"
)

type handlers struct {
	db        *sql.DB
	tokens    *auth.Tokens
	watchlist *watchlist.Service
	log       zerolog.Logger
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// writeError renders err with the status of its kind. Unclassified errors
// are logged and reported as 500 without detail.
func (h *handlers) writeError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

func (h *handlers) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		h.writeError(c, apperr.Validation(err.Error()))
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid " + name)
	}
	return id, nil
}

// currentUser is set by auth.RequireJWT on every protected route.
func currentUser(c *gin.Context) (int64, error) {
	id, ok := auth.UserID(c)
	if !ok {
		return 0, apperr.Unauthenticated("missing bearer token")
	}
	return id, nil
}

func (h *handlers) signup(c *gin.Context) {
	var req signupRequest
	if !h.bind(c, &req) {
		return
	}
	u, err := user.CreateUser(c.Request.Context(), h.db, req.Username, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if !h.bind(c, &req) {
		return
	}
	u, err := user.VerifyLogin(c.Request.Context(), h.db, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *handlers) me(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	u, err := user.GetByID(c.Request.Context(), h.db, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *handlers) listMovies(c *gin.Context) {
	movies, err := movie.List(c.Request.Context(), h.db)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (h *handlers) getMovie(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	m, err := movie.GetByID(c.Request.Context(), h.db, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handlers) createMovie(c *gin.Context) {
	var req models.MovieCreate
	if !h.bind(c, &req) {
		return
	}
	m, err := movie.Create(c.Request.Context(), h.db, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handlers) listWatchlist(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	entries, err := h.watchlist.List(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type watchlistOp func(*watchlist.Service, context.Context, int64, int64) (models.WatchlistEntry, error)

// watchlistEntry adapts a per-(user, movie) service method, such as
// (*watchlist.Service).Toggle, to a handler.
func (h *handlers) watchlistEntry(op watchlistOp) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := currentUser(c)
		if err != nil {
			h.writeError(c, err)
			return
		}
		movieID, err := pathID(c, "movieId")
		if err != nil {
			h.writeError(c, err)
			return
		}
		entry, err := op(h.watchlist, c.Request.Context(), userID, movieID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}
