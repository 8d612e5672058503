package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/yudistira/open-music-api/internal/utils"
)

// CollaborationRepo owns the many-to-many relation between playlists and
// non-owner collaborators. The table enforces UNIQUE(playlist_id, user_id).
type CollaborationRepo struct{ DB *sql.DB }

func NewCollaborationRepo(db *sql.DB) *CollaborationRepo { return &CollaborationRepo{DB: db} }

// Add inserts a collaboration grant and returns its id. The caller is
// responsible for having verified playlist ownership and user existence.
// A duplicate grant trips the unique constraint (MySQL error 1062).
func (r *CollaborationRepo) Add(ctx context.Context, playlistID, userID string) (string, error) {
	id := utils.NewID("collab")
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO collaborations (id, playlist_id, user_id) VALUES (?,?,?)",
		id, playlistID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return "", ErrDuplicateCollaboration
		}
		return "", invariant("failed to add collaboration")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return "", invariant("failed to add collaboration")
	}
	return id, nil
}

// Delete revokes a grant. Zero affected rows means there was no grant.
func (r *CollaborationRepo) Delete(ctx context.Context, playlistID, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM collaborations WHERE playlist_id=? AND user_id=?",
		playlistID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCollaborationNotFound
	}
	return nil
}

// VerifyCollaborator succeeds only when a grant exists for the pair.
func (r *CollaborationRepo) VerifyCollaborator(ctx context.Context, playlistID, userID string) error {
	var id string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM collaborations WHERE playlist_id=? AND user_id=? LIMIT 1",
		playlistID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCollaboratorNotFound
	}
	return err
}
