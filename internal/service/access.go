// Package service holds logic that spans more than one repository. The
// main piece is the playlist access protocol: deciding whether a user may
// read or modify a playlist as its owner or as a collaborator.
package service

import (
	"context"
	"errors"

	"github.com/yudistira/open-music-api/internal/repository"
)

// Level tags how a caller gained access to a playlist.
type Level int

const (
	LevelOwner Level = iota + 1
	LevelCollaborator
)

// PlaylistAccess performs the two-tier ownership/collaboration check.
type PlaylistAccess struct {
	Playlists *repository.PlaylistRepo
	Collabs   *repository.CollaborationRepo
}

func NewPlaylistAccess(p *repository.PlaylistRepo, c *repository.CollaborationRepo) *PlaylistAccess {
	return &PlaylistAccess{Playlists: p, Collabs: c}
}

// VerifyOwner succeeds only when userID owns the playlist. A missing
// playlist is reported as ErrPlaylistNotFound, a foreign playlist as
// ErrNotPlaylistOwner. Owner-only operations (delete playlist, manage
// collaborators) use this check alone.
func (s *PlaylistAccess) VerifyOwner(ctx context.Context, playlistID, userID string) error {
	p, err := s.Playlists.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if p.OwnerID != userID {
		return repository.ErrNotPlaylistOwner
	}
	return nil
}

// Verify succeeds when userID is the playlist's owner or holds a
// collaboration grant, and reports which one applied.
//
// The tie-break order matters:
//
//  1. a missing playlist always surfaces as ErrPlaylistNotFound, even if
//     the caller is also not a collaborator;
//  2. the owner never needs a grant;
//  3. a non-owner falls back to the collaborator lookup, and when that
//     lookup fails for ANY reason (no grant, or a transient query error)
//     the caller receives the original ErrNotPlaylistOwner. Every denied
//     caller therefore sees one consistent message, and the fallback
//     path never leaks whether a grant lookup merely errored.
func (s *PlaylistAccess) Verify(ctx context.Context, playlistID, userID string) (Level, error) {
	ownerErr := s.VerifyOwner(ctx, playlistID, userID)
	if ownerErr == nil {
		return LevelOwner, nil
	}
	if !errors.Is(ownerErr, repository.ErrForbidden) {
		// Not-found and server errors dominate the collaborator fallback.
		return 0, ownerErr
	}
	if err := s.Collabs.VerifyCollaborator(ctx, playlistID, userID); err != nil {
		return 0, ownerErr
	}
	return LevelCollaborator, nil
}
