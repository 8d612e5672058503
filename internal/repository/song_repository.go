package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yudistira/open-music-api/internal/utils"
)

// Song mirrors the 'songs' table. Duration and AlbumID are nullable.
type Song struct {
	ID        string
	Title     string
	Year      int
	Genre     string
	Performer string
	Duration  sql.NullInt64
	AlbumID   sql.NullString
}

type SongRepo struct{ DB *sql.DB }

func NewSongRepo(db *sql.DB) *SongRepo { return &SongRepo{DB: db} }

// Create inserts a song and returns its generated id.
func (r *SongRepo) Create(ctx context.Context, s Song) (string, error) {
	id := utils.NewID("song")
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO songs (id, title, year, genre, performer, duration, album_id) VALUES (?,?,?,?,?,?,?)",
		id, s.Title, s.Year, s.Genre, s.Performer, s.Duration, s.AlbumID)
	if err != nil {
		return "", err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return "", invariant("failed to add song")
	}
	return id, nil
}

// GetByID fetches a song by id.
func (r *SongRepo) GetByID(ctx context.Context, id string) (Song, error) {
	var s Song
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, year, genre, performer, duration, album_id FROM songs WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Title, &s.Year, &s.Genre, &s.Performer, &s.Duration, &s.AlbumID)
	if errors.Is(err, sql.ErrNoRows) {
		return Song{}, ErrSongNotFound
	}
	return s, err
}

// Exists reports whether a song id references an existing row. Used as the
// referential check before adding a song to a playlist.
func (r *SongRepo) Exists(ctx context.Context, id string) error {
	var found string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM songs WHERE id=? LIMIT 1", id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSongNotFound
	}
	return err
}

// List returns songs filtered by optional title and performer substrings.
// Empty filters match everything.
func (r *SongRepo) List(ctx context.Context, title, performer string) ([]Song, error) {
	const q = `SELECT id, title, year, genre, performer, duration, album_id
	           FROM songs WHERE title LIKE ? AND performer LIKE ?`
	rows, err := r.DB.QueryContext(ctx, q, "%"+title+"%", "%"+performer+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSongs(rows)
}

// ListByAlbum returns the songs belonging to an album.
func (r *SongRepo) ListByAlbum(ctx context.Context, albumID string) ([]Song, error) {
	const q = `SELECT id, title, year, genre, performer, duration, album_id
	           FROM songs WHERE album_id=?`
	rows, err := r.DB.QueryContext(ctx, q, albumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSongs(rows)
}

// ListByPlaylist returns the songs contained in a playlist via the
// playlist_songs membership table.
func (r *SongRepo) ListByPlaylist(ctx context.Context, playlistID string) ([]Song, error) {
	const q = `SELECT s.id, s.title, s.year, s.genre, s.performer, s.duration, s.album_id
	           FROM playlist_songs ps
	           INNER JOIN songs s ON s.id = ps.song_id
	           WHERE ps.playlist_id = ?`
	rows, err := r.DB.QueryContext(ctx, q, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSongs(rows)
}

// Update replaces a song's mutable fields.
func (r *SongRepo) Update(ctx context.Context, id string, s Song) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE songs SET title=?, year=?, genre=?, performer=?, duration=?, album_id=?,
		 updated_at=CURRENT_TIMESTAMP WHERE id=?`,
		s.Title, s.Year, s.Genre, s.Performer, s.Duration, s.AlbumID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSongNotFound
	}
	return nil
}

// Delete removes a song.
func (r *SongRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM songs WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSongNotFound
	}
	return nil
}

func scanSongs(rows *sql.Rows) ([]Song, error) {
	var out []Song
	for rows.Next() {
		var s Song
		if err := rows.Scan(&s.ID, &s.Title, &s.Year, &s.Genre, &s.Performer, &s.Duration, &s.AlbumID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
