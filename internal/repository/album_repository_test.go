package repository

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestAlbumRepo_CRUD(t *testing.T) {
	db, mock := newMock(t)
	r := NewAlbumRepo(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO albums (id, name, year) VALUES (?,?,?)")).
		WithArgs(sqlmock.AnyArg(), "Viva la Vida", 2008).
		WillReturnResult(sqlmock.NewResult(0, 1))
	id, err := r.Create(ctx, "Viva la Vida", 2008)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(id, "album-"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, year FROM albums WHERE id=? LIMIT 1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "year"}).AddRow(id, "Viva la Vida", 2008))
	a, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 2008, a.Year)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE albums SET name=?, year=?, updated_at=CURRENT_TIMESTAMP WHERE id=?")).
		WithArgs("Viva la Vida", 2009, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, r.Update(ctx, id, "Viva la Vida", 2009))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM albums WHERE id=?")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, r.Delete(ctx, id))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAlbumRepo_NotFound(t *testing.T) {
	db, mock := newMock(t)
	r := NewAlbumRepo(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, year FROM albums WHERE id=? LIMIT 1")).
		WithArgs("album-ghost").
		WillReturnError(sql.ErrNoRows)
	_, err := r.GetByID(ctx, "album-ghost")
	require.ErrorIs(t, err, ErrAlbumNotFound)
	require.ErrorIs(t, err, ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE albums SET name=?, year=?, updated_at=CURRENT_TIMESTAMP WHERE id=?")).
		WithArgs("x", 2000, "album-ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, r.Update(ctx, "album-ghost", "x", 2000), ErrAlbumNotFound)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM albums WHERE id=?")).
		WithArgs("album-ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, r.Delete(ctx, "album-ghost"), ErrAlbumNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
