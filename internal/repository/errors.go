// Package repository contains data access logic separated from HTTP
// handlers. This file defines the error kinds shared by every repository.
// Each failure a client can cause belongs to one of four kinds, and the
// handler layer maps the kind to an HTTP status: ErrInvariant -> 400,
// ErrUnauthorized -> 401, ErrForbidden -> 403, ErrNotFound -> 404.
// Anything that does not wrap one of these kinds (driver or connection
// failures) is a server error and surfaces as a generic 500.
package repository

import "errors"

// Base kinds. Use errors.Is against these to classify a failure.
var (
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the caller lacks rights on a resource.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvariant indicates a data-integrity rule was violated: a
	// duplicate row, or an insert/delete that affected zero rows.
	ErrInvariant = errors.New("invariant violated")
)

// classified pairs a client-facing message with one of the base kinds so
// that errors.Is(err, kind) works while the message stays clean.
type classified struct {
	kind error
	msg  string
}

func (e *classified) Error() string { return e.msg }
func (e *classified) Unwrap() error { return e.kind }

func notFound(msg string) error     { return &classified{kind: ErrNotFound, msg: msg} }
func forbidden(msg string) error    { return &classified{kind: ErrForbidden, msg: msg} }
func unauthorized(msg string) error { return &classified{kind: ErrUnauthorized, msg: msg} }
func invariant(msg string) error    { return &classified{kind: ErrInvariant, msg: msg} }

// Per-entity sentinels. Repositories return these directly so callers and
// tests can compare with errors.Is.
var (
	ErrUserNotFound       = notFound("user not found")
	ErrUsernameExists     = invariant("username already taken")
	ErrInvalidCredentials = unauthorized("wrong username or password")

	ErrInvalidRefreshToken = invariant("refresh token is not valid")

	ErrAlbumNotFound = notFound("album not found")
	ErrSongNotFound  = notFound("song not found")

	ErrPlaylistNotFound = notFound("playlist not found")
	ErrNotPlaylistOwner = forbidden("you are not authorized to access this resource")

	ErrCollaboratorNotFound   = notFound("collaborator not found")
	ErrDuplicateCollaboration = invariant("user is already a collaborator on this playlist")
	ErrCollaborationNotFound  = invariant("collaboration not found")

	ErrSongAlreadyInPlaylist = invariant("song already in playlist")
	ErrSongNotInPlaylist     = invariant("song is not in the playlist")
)
