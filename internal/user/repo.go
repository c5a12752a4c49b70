package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flixnet/internal/apperr"
	"flixnet/internal/auth"
	"flixnet/pkg/database"
	"flixnet/pkg/models"
)

const userColumns = `id, username, email, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// CreateUser stores a new user with a freshly hashed password. A taken email
// or username is reported as a conflict.
func CreateUser(ctx context.Context, db database.Querier, username, email, password string) (models.User, error) {
	if _, err := GetByEmail(ctx, db, email); err == nil {
		return models.User{}, apperr.Conflict("Email already registered")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	var id int64
	err = db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id`, username, email, hash).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return models.User{}, apperr.Conflict("Username or email already registered")
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return GetByID(ctx, db, id)
}

// VerifyLogin returns the user for email when password matches. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func VerifyLogin(ctx context.Context, db database.Querier, email, password string) (models.User, error) {
	u, err := GetByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.User{}, apperr.Unauthenticated("Invalid email or password")
		}
		return models.User{}, err
	}
	if !auth.VerifyPassword(password, u.PasswordHash) {
		return models.User{}, apperr.Unauthenticated("Invalid email or password")
	}
	return u, nil
}

func GetByEmail(ctx context.Context, db database.Querier, email string) (models.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, apperr.NotFound("User not found")
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func GetByID(ctx context.Context, db database.Querier, id int64) (models.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, apperr.NotFound("User not found")
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}
