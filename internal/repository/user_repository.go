package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/yudistira/open-music-api/internal/utils"
)

// User mirrors the 'users' table.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Fullname     string
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with an application-generated id and returns it.
// A duplicate username maps to ErrUsernameExists via MySQL error 1062.
func (r *UserRepo) Create(ctx context.Context, username, password, fullname string, cost int) (string, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	id := utils.NewID("user")
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, username, password_hash, fullname) VALUES (?,?,?,?)",
		id, username, hash, fullname)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return "", ErrUsernameExists
		}
		return "", err
	}
	return id, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, fullname FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Fullname)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	return u, err
}

// Exists reports whether a user id references an existing row. Used as the
// referential check before granting a collaboration.
func (r *UserRepo) Exists(ctx context.Context, id string) error {
	var found string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE id=? LIMIT 1", id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	return err
}

// VerifyCredentials checks username/password and returns the user id.
// Both an unknown username and a wrong password map to the same
// ErrInvalidCredentials so the response does not leak which part failed.
func (r *UserRepo) VerifyCredentials(ctx context.Context, username, password string) (string, error) {
	var (
		id   string
		hash string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, password_hash FROM users WHERE username=? LIMIT 1",
		strings.TrimSpace(username)).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !utils.VerifyPassword(hash, password) {
		return "", ErrInvalidCredentials
	}
	return id, nil
}
