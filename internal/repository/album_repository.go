package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yudistira/open-music-api/internal/utils"
)

// Album mirrors the 'albums' table.
type Album struct {
	ID   string
	Name string
	Year int
}

type AlbumRepo struct{ DB *sql.DB }

func NewAlbumRepo(db *sql.DB) *AlbumRepo { return &AlbumRepo{DB: db} }

// Create inserts an album and returns its generated id.
func (r *AlbumRepo) Create(ctx context.Context, name string, year int) (string, error) {
	id := utils.NewID("album")
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO albums (id, name, year) VALUES (?,?,?)",
		id, name, year)
	if err != nil {
		return "", err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return "", invariant("failed to add album")
	}
	return id, nil
}

// GetByID fetches an album by id.
func (r *AlbumRepo) GetByID(ctx context.Context, id string) (Album, error) {
	var a Album
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, year FROM albums WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Name, &a.Year)
	if errors.Is(err, sql.ErrNoRows) {
		return Album{}, ErrAlbumNotFound
	}
	return a, err
}

// Update replaces an album's name and year.
func (r *AlbumRepo) Update(ctx context.Context, id, name string, year int) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE albums SET name=?, year=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		name, year, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// Delete removes an album.
func (r *AlbumRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM albums WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAlbumNotFound
	}
	return nil
}
