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

func songRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "year", "genre", "performer", "duration", "album_id"})
}

func TestSongRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	r := NewSongRepo(db)
	ctx := context.Background()

	s := Song{
		Title:     "Life in Technicolor",
		Year:      2008,
		Genre:     "Indie",
		Performer: "Coldplay",
		Duration:  sql.NullInt64{Int64: 120, Valid: true},
		AlbumID:   sql.NullString{String: "album-1", Valid: true},
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO songs (id, title, year, genre, performer, duration, album_id) VALUES (?,?,?,?,?,?,?)")).
		WithArgs(sqlmock.AnyArg(), s.Title, s.Year, s.Genre, s.Performer, s.Duration, s.AlbumID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	id, err := r.Create(ctx, s)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(id, "song-"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSongRepo_List_Filters(t *testing.T) {
	db, mock := newMock(t)
	r := NewSongRepo(db)
	ctx := context.Background()

	q := regexp.QuoteMeta("SELECT id, title, year, genre, performer, duration, album_id FROM songs WHERE title LIKE ? AND performer LIKE ?")

	mock.ExpectQuery(q).WithArgs("%life%", "%coldplay%").
		WillReturnRows(songRows().
			AddRow("song-1", "Life in Technicolor", 2008, "Indie", "Coldplay", 120, "album-1"))
	out, err := r.List(ctx, "life", "coldplay")
	require.NoError(t, err)
	require.Len(t, out, 1)

	// Empty filters degrade to match-all wildcards.
	mock.ExpectQuery(q).WithArgs("%%", "%%").
		WillReturnRows(songRows().
			AddRow("song-1", "Life in Technicolor", 2008, "Indie", "Coldplay", 120, "album-1").
			AddRow("song-2", "Yellow", 2000, "Alternative", "Coldplay", nil, nil))
	out, err = r.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.False(t, out[1].Duration.Valid)
	require.False(t, out[1].AlbumID.Valid)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSongRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	r := NewSongRepo(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, year, genre, performer, duration, album_id FROM songs WHERE id=? LIMIT 1")).
		WithArgs("song-ghost").
		WillReturnError(sql.ErrNoRows)
	_, err := r.GetByID(ctx, "song-ghost")
	require.ErrorIs(t, err, ErrSongNotFound)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSongRepo_ListByPlaylist(t *testing.T) {
	db, mock := newMock(t)
	r := NewSongRepo(db)
	ctx := context.Background()

	q := regexp.QuoteMeta("SELECT s.id, s.title, s.year, s.genre, s.performer, s.duration, s.album_id FROM playlist_songs ps INNER JOIN songs s ON s.id = ps.song_id WHERE ps.playlist_id = ?")

	mock.ExpectQuery(q).WithArgs("playlist-x").
		WillReturnRows(songRows().
			AddRow("song-1", "Life in Technicolor", 2008, "Indie", "Coldplay", 120, "album-1"))
	out, err := r.ListByPlaylist(ctx, "playlist-x")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Life in Technicolor", out[0].Title)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSongRepo_UpdateDelete_NotFound(t *testing.T) {
	db, mock := newMock(t)
	r := NewSongRepo(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE songs SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, r.Update(ctx, "song-ghost", Song{Title: "x", Year: 2000}), ErrSongNotFound)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM songs WHERE id=?")).
		WithArgs("song-ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, r.Delete(ctx, "song-ghost"), ErrSongNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
