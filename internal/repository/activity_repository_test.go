package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestActivityRepo_Record(t *testing.T) {
	db, mock := newMock(t)
	r := NewActivityRepo(db)
	ctx := context.Background()

	q := regexp.QuoteMeta("INSERT INTO playlist_song_activities (id, playlist_id, song_id, user_id, action, time) VALUES (?,?,?,?,?,?)")

	mock.ExpectExec(q).
		WithArgs(sqlmock.AnyArg(), "playlist-x", "song-1", "user-alice", ActionAdd, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, r.Record(ctx, "playlist-x", "song-1", "user-alice", ActionAdd))

	mock.ExpectExec(q).
		WithArgs(sqlmock.AnyArg(), "playlist-x", "song-1", "user-alice", ActionDelete, sqlmock.AnyArg()).
		WillReturnError(errors.New("driver: bad connection"))
	err := r.Record(ctx, "playlist-x", "song-1", "user-alice", ActionDelete)
	require.ErrorIs(t, err, ErrInvariant)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepo_ListByPlaylist(t *testing.T) {
	db, mock := newMock(t)
	r := NewActivityRepo(db)
	ctx := context.Background()

	q := regexp.QuoteMeta("SELECT u.username, s.title, a.action, a.time FROM playlist_song_activities a INNER JOIN users u ON u.id = a.user_id INNER JOIN songs s ON s.id = a.song_id WHERE a.playlist_id = ?")

	now := time.Now().UTC()
	mock.ExpectQuery(q).WithArgs("playlist-x").
		WillReturnRows(sqlmock.NewRows([]string{"username", "title", "action", "time"}).
			AddRow("alice", "Highway Song", ActionAdd, now).
			AddRow("bob", "Highway Song", ActionDelete, now.Add(time.Minute)))
	out, err := r.ListByPlaylist(ctx, "playlist-x")
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, ActionAdd, out[0].Action)
	require.Equal(t, "bob", out[1].Username)

	// No history yet: empty result, not an error.
	mock.ExpectQuery(q).WithArgs("playlist-empty").
		WillReturnRows(sqlmock.NewRows([]string{"username", "title", "action", "time"}))
	out, err = r.ListByPlaylist(ctx, "playlist-empty")
	require.NoError(t, err)
	require.Empty(t, out)

	require.NoError(t, mock.ExpectationsWereMet())
}
