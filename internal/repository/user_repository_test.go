package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/yudistira/open-music-api/internal/utils"
)

func TestUserRepo_Create_OK_and_DuplicateUsername(t *testing.T) {
	db, mock := newMock(t)
	r := NewUserRepo(db)
	ctx := context.Background()

	q := regexp.QuoteMeta("INSERT INTO users (id, username, password_hash, fullname) VALUES (?,?,?,?)")

	// OK
	mock.ExpectExec(q).
		WithArgs(sqlmock.AnyArg(), "alice", sqlmock.AnyArg(), "Alice A").
		WillReturnResult(sqlmock.NewResult(0, 1))
	id, err := r.Create(ctx, "alice", "secret", "Alice A", 4)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(id, "user-"))

	// Duplicate username -> unique constraint 1062
	mock.ExpectExec(q).
		WithArgs(sqlmock.AnyArg(), "alice", sqlmock.AnyArg(), "Alice A").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.username'"))
	_, err = r.Create(ctx, "alice", "secret", "Alice A", 4)
	require.ErrorIs(t, err, ErrUsernameExists)
	require.ErrorIs(t, err, ErrInvariant)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_VerifyCredentials(t *testing.T) {
	db, mock := newMock(t)
	r := NewUserRepo(db)
	ctx := context.Background()

	hash, err := utils.HashPassword("secret", 4)
	require.NoError(t, err)

	q := regexp.QuoteMeta("SELECT id, password_hash FROM users WHERE username=? LIMIT 1")

	mock.ExpectQuery(q).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow("user-1", hash))
	id, err := r.VerifyCredentials(ctx, "alice", "secret")
	require.NoError(t, err)
	require.Equal(t, "user-1", id)

	// Wrong password
	mock.ExpectQuery(q).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow("user-1", hash))
	_, err = r.VerifyCredentials(ctx, "alice", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.ErrorIs(t, err, ErrUnauthorized)

	// Unknown username maps to the same error
	mock.ExpectQuery(q).WithArgs("mallory").
		WillReturnError(sql.ErrNoRows)
	_, err = r.VerifyCredentials(ctx, "mallory", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Exists(t *testing.T) {
	db, mock := newMock(t)
	r := NewUserRepo(db)
	ctx := context.Background()

	q := regexp.QuoteMeta("SELECT id FROM users WHERE id=? LIMIT 1")

	mock.ExpectQuery(q).WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-1"))
	require.NoError(t, r.Exists(ctx, "user-1"))

	mock.ExpectQuery(q).WithArgs("user-ghost").
		WillReturnError(sql.ErrNoRows)
	err := r.Exists(ctx, "user-ghost")
	require.ErrorIs(t, err, ErrUserNotFound)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
