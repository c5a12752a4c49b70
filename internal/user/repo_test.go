package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flixnet/internal/apperr"
	"flixnet/pkg/database/dbtest"
)

func TestCreateUserAndLogin(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "user1", "u1@x.com", "pw")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "user1", u.Username)
	assert.Equal(t, "u1@x.com", u.Email)
	assert.NotEqual(t, "pw", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := VerifyLogin(ctx, db, "u1@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = VerifyLogin(ctx, db, "u1@x.com", "wrong")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, err = VerifyLogin(ctx, db, "nobody@x.com", "pw")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestCreateUserConflicts(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	_, err := CreateUser(ctx, db, "user1", "u1@x.com", "pw")
	require.NoError(t, err)

	_, err = CreateUser(ctx, db, "other", "u1@x.com", "pw")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.EqualError(t, err, "Email already registered")

	// username taken, email free: caught by the unique constraint
	_, err = CreateUser(ctx, db, "user1", "u2@x.com", "pw")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	assert.Equal(t, 1, dbtest.CountRows(t, db, "users"))
}

func TestGetByID(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	id := dbtest.InsertUser(t, db, "ann", "ann@x.com")
	u, err := GetByID(ctx, db, id)
	require.NoError(t, err)
	assert.Equal(t, "ann", u.Username)

	_, err = GetByID(ctx, db, id+100)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
