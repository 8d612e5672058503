package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/yudistira/open-music-api/internal/repository"
)

const (
	playlistQuery = "SELECT p.id, p.name, p.owner, u.username FROM playlists p INNER JOIN users u ON u.id = p.owner WHERE p.id = ? LIMIT 1"
	collabQuery   = "SELECT id FROM collaborations WHERE playlist_id=? AND user_id=? LIMIT 1"
)

func newAccess(t *testing.T) (*PlaylistAccess, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPlaylistAccess(repository.NewPlaylistRepo(db), repository.NewCollaborationRepo(db)), mock
}

func expectPlaylist(mock sqlmock.Sqlmock, id, owner string) {
	mock.ExpectQuery(regexp.QuoteMeta(playlistQuery)).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner", "username"}).
			AddRow(id, "Roadtrip", owner, "alice"))
}

func TestVerify_OwnerNeedsNoGrant(t *testing.T) {
	access, mock := newAccess(t)

	// No collaborator lookup is expected for the owner.
	expectPlaylist(mock, "playlist-x", "user-alice")
	level, err := access.Verify(context.Background(), "playlist-x", "user-alice")
	require.NoError(t, err)
	require.Equal(t, LevelOwner, level)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerify_CollaboratorGetsTaggedLevel(t *testing.T) {
	access, mock := newAccess(t)

	expectPlaylist(mock, "playlist-x", "user-alice")
	mock.ExpectQuery(regexp.QuoteMeta(collabQuery)).WithArgs("playlist-x", "user-bob").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("collab-1"))
	level, err := access.Verify(context.Background(), "playlist-x", "user-bob")
	require.NoError(t, err)
	require.Equal(t, LevelCollaborator, level)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerify_MissingPlaylistDominates(t *testing.T) {
	access, mock := newAccess(t)

	// The collaborator fallback must not run when the playlist is absent.
	mock.ExpectQuery(regexp.QuoteMeta(playlistQuery)).WithArgs("playlist-ghost").
		WillReturnError(sql.ErrNoRows)
	_, err := access.Verify(context.Background(), "playlist-ghost", "user-bob")
	require.ErrorIs(t, err, repository.ErrPlaylistNotFound)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerify_StrangerGetsOwnershipDenial(t *testing.T) {
	access, mock := newAccess(t)

	expectPlaylist(mock, "playlist-x", "user-alice")
	mock.ExpectQuery(regexp.QuoteMeta(collabQuery)).WithArgs("playlist-x", "user-eve").
		WillReturnError(sql.ErrNoRows)
	_, err := access.Verify(context.Background(), "playlist-x", "user-eve")
	require.ErrorIs(t, err, repository.ErrNotPlaylistOwner)
	require.ErrorIs(t, err, repository.ErrForbidden)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerify_GrantLookupErrorStillDeniesAsOwner(t *testing.T) {
	access, mock := newAccess(t)

	// A transient failure in the grant lookup must not leak: the caller
	// sees the same denial as a user with no grant at all.
	expectPlaylist(mock, "playlist-x", "user-alice")
	mock.ExpectQuery(regexp.QuoteMeta(collabQuery)).WithArgs("playlist-x", "user-bob").
		WillReturnError(errors.New("driver: bad connection"))
	_, err := access.Verify(context.Background(), "playlist-x", "user-bob")
	require.ErrorIs(t, err, repository.ErrNotPlaylistOwner)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerify_ServerErrorPropagates(t *testing.T) {
	access, mock := newAccess(t)

	mock.ExpectQuery(regexp.QuoteMeta(playlistQuery)).WithArgs("playlist-x").
		WillReturnError(errors.New("driver: bad connection"))
	_, err := access.Verify(context.Background(), "playlist-x", "user-bob")
	require.Error(t, err)
	require.NotErrorIs(t, err, repository.ErrNotFound)
	require.NotErrorIs(t, err, repository.ErrForbidden)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyOwner_RejectsCollaborator(t *testing.T) {
	access, mock := newAccess(t)

	// Owner-only operations never consult the collaborations table.
	expectPlaylist(mock, "playlist-x", "user-alice")
	err := access.VerifyOwner(context.Background(), "playlist-x", "user-bob")
	require.ErrorIs(t, err, repository.ErrNotPlaylistOwner)

	expectPlaylist(mock, "playlist-x", "user-alice")
	require.NoError(t, access.VerifyOwner(context.Background(), "playlist-x", "user-alice"))

	require.NoError(t, mock.ExpectationsWereMet())
}
