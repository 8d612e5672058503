package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yudistira/open-music-api/internal/utils"
)

// Playlist mirrors the 'playlists' table joined with the owner's username.
type Playlist struct {
	ID       string
	Name     string
	OwnerID  string
	Username string
}

type PlaylistRepo struct{ DB *sql.DB }

func NewPlaylistRepo(db *sql.DB) *PlaylistRepo { return &PlaylistRepo{DB: db} }

// Create inserts a playlist with an application-generated id and returns it.
func (r *PlaylistRepo) Create(ctx context.Context, name, ownerID string) (string, error) {
	id := utils.NewID("playlist")
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO playlists (id, name, owner) VALUES (?,?,?)",
		id, name, ownerID)
	if err != nil {
		return "", err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return "", invariant("failed to add playlist")
	}
	return id, nil
}

// GetByID fetches a playlist together with its owner's username.
func (r *PlaylistRepo) GetByID(ctx context.Context, id string) (Playlist, error) {
	const q = `SELECT p.id, p.name, p.owner, u.username
	           FROM playlists p INNER JOIN users u ON u.id = p.owner
	           WHERE p.id = ? LIMIT 1`
	var p Playlist
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.OwnerID, &p.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return Playlist{}, ErrPlaylistNotFound
	}
	return p, err
}

// ListByOwner returns all playlists owned by a user, joined with the
// owner's display name. Row order is whatever the database returns.
func (r *PlaylistRepo) ListByOwner(ctx context.Context, ownerID string) ([]Playlist, error) {
	const q = `SELECT p.id, p.name, p.owner, u.username
	           FROM playlists p INNER JOIN users u ON u.id = p.owner
	           WHERE p.owner = ?`
	rows, err := r.DB.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Playlist
	for rows.Next() {
		var p Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.OwnerID, &p.Username); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a playlist. Dependent membership, collaboration and
// activity rows go with it via ON DELETE CASCADE. Ownership must have been
// verified by the caller beforehand.
func (r *PlaylistRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM playlists WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// AddSong inserts a membership row and returns its id. Uniqueness of
// (playlist_id, song_id) is enforced only by the CheckSongNotInPlaylist
// pre-check; the table carries no unique constraint, so two concurrent
// adds for the same pair can both succeed.
func (r *PlaylistRepo) AddSong(ctx context.Context, playlistID, songID string) (string, error) {
	id := utils.NewID("list")
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO playlist_songs (id, playlist_id, song_id) VALUES (?,?,?)",
		id, playlistID, songID)
	if err != nil {
		return "", invariant("failed to add song to playlist")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return "", invariant("failed to add song to playlist")
	}
	return id, nil
}

// CheckSongNotInPlaylist fails with ErrSongAlreadyInPlaylist when a
// membership row for the pair exists.
func (r *PlaylistRepo) CheckSongNotInPlaylist(ctx context.Context, playlistID, songID string) error {
	var id string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM playlist_songs WHERE playlist_id=? AND song_id=? LIMIT 1",
		playlistID, songID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	return ErrSongAlreadyInPlaylist
}

// RemoveSong deletes the membership row(s) for the pair. Zero affected
// rows means the song was never in the playlist.
func (r *PlaylistRepo) RemoveSong(ctx context.Context, playlistID, songID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM playlist_songs WHERE playlist_id=? AND song_id=?",
		playlistID, songID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSongNotInPlaylist
	}
	return nil
}
