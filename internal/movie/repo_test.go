package movie

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flixnet/internal/apperr"
	"flixnet/pkg/database/dbtest"
	"flixnet/pkg/models"
)

func TestListEmpty(t *testing.T) {
	db := dbtest.Open(t)

	movies, err := List(context.Background(), db)
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestCreateGetList(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	genre := "Crime"
	year := 1995
	rating := 8.3
	created, err := Create(ctx, db, models.MovieCreate{Title: "Heat", Genre: &genre, ReleaseYear: &year, Rating: &rating})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Heat", created.Title)
	require.NotNil(t, created.Rating)
	assert.Equal(t, 8.3, *created.Rating)
	assert.Nil(t, created.Description)

	got, err := GetByID(ctx, db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	dbtest.InsertMovie(t, db, "Alien", "Sci-Fi")
	all, err := List(ctx, db)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Heat", all[0].Title)
	assert.Equal(t, "Alien", all[1].Title)
}

func TestGetByIDNotFound(t *testing.T) {
	db := dbtest.Open(t)
	_, err := GetByID(context.Background(), db, 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.EqualError(t, err, "Movie not found")
}

func TestCreateRequiresTitle(t *testing.T) {
	db := dbtest.Open(t)
	_, err := Create(context.Background(), db, models.MovieCreate{})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
