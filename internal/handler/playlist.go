package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yudistira/open-music-api/internal/queue"
	"github.com/yudistira/open-music-api/internal/repository"
	"github.com/yudistira/open-music-api/internal/service"
)

// ActivityNotifier dispatches an activity event to the message broker.
// Implemented by service.ActivityPublisher; nil disables dispatch.
type ActivityNotifier interface {
	Publish(ctx context.Context, event queue.ActivityRecordedEvent) error
}

// PlaylistHandler serves playlists, playlist membership and the activity
// log. All routes require an authenticated user; modification of a
// playlist's contents requires owner or collaborator access, deletion of
// the playlist itself requires ownership.
type PlaylistHandler struct {
	Playlists  *repository.PlaylistRepo
	Songs      *repository.SongRepo
	Activities *repository.ActivityRepo
	Access     *service.PlaylistAccess
	Events     ActivityNotifier
}

func NewPlaylistHandler(
	playlists *repository.PlaylistRepo,
	songs *repository.SongRepo,
	activities *repository.ActivityRepo,
	access *service.PlaylistAccess,
	events ActivityNotifier,
) *PlaylistHandler {
	return &PlaylistHandler{
		Playlists:  playlists,
		Songs:      songs,
		Activities: activities,
		Access:     access,
		Events:     events,
	}
}

type playlistReq struct {
	Name string `json:"name"`
}

type playlistSongReq struct {
	SongID string `json:"songId"`
}

type playlistItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type activityItem struct {
	Username string    `json:"username"`
	Title    string    `json:"title"`
	Action   string    `json:"action"`
	Time     time.Time `json:"time"`
}

// Create handles POST /playlists.
func (h *PlaylistHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, payload{Status: "fail", Message: "unauthorized"})
	}
	var req playlistReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return badRequest(c, "name is required")
	}
	if len(req.Name) > 50 {
		return badRequest(c, "name must be at most 50 characters")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Playlists.Create(ctx, req.Name, userID)
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusCreated, "playlist added", echo.Map{"playlistId": id})
}

// List handles GET /playlists and returns the caller's own playlists.
func (h *PlaylistHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, payload{Status: "fail", Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	playlists, err := h.Playlists.ListByOwner(ctx, userID)
	if err != nil {
		return fail(c, err)
	}
	items := make([]playlistItem, 0, len(playlists))
	for _, p := range playlists {
		items = append(items, playlistItem{ID: p.ID, Name: p.Name, Username: p.Username})
	}
	return success(c, http.StatusOK, "", echo.Map{"playlists": items})
}

// Delete handles DELETE /playlists/:id. Owner only: collaborators cannot
// delete the playlist itself.
func (h *PlaylistHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, payload{Status: "fail", Message: "unauthorized"})
	}
	playlistID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Access.VerifyOwner(ctx, playlistID, userID); err != nil {
		return fail(c, err)
	}
	if err := h.Playlists.Delete(ctx, playlistID); err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusOK, "playlist deleted", nil)
}

// AddSong handles POST /playlists/:id/songs. Order of checks: playlist
// access, song existence, duplicate membership, then insert. The activity
// record is best-effort and never fails the request.
func (h *PlaylistHandler) AddSong(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, payload{Status: "fail", Message: "unauthorized"})
	}
	playlistID := c.Param("id")
	var req playlistSongReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.SongID) == "" {
		return badRequest(c, "songId is required")
	}
	songID := strings.TrimSpace(req.SongID)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Access.Verify(ctx, playlistID, userID); err != nil {
		return fail(c, err)
	}
	if err := h.Songs.Exists(ctx, songID); err != nil {
		return fail(c, err)
	}
	if err := h.Playlists.CheckSongNotInPlaylist(ctx, playlistID, songID); err != nil {
		return fail(c, err)
	}
	id, err := h.Playlists.AddSong(ctx, playlistID, songID)
	if err != nil {
		return fail(c, err)
	}
	h.recordActivity(c, playlistID, songID, userID, repository.ActionAdd)

	return success(c, http.StatusCreated, "song added to playlist", echo.Map{"playlistSongId": id})
}

// GetSongs handles GET /playlists/:id/songs.
func (h *PlaylistHandler) GetSongs(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, payload{Status: "fail", Message: "unauthorized"})
	}
	playlistID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Access.Verify(ctx, playlistID, userID); err != nil {
		return fail(c, err)
	}
	p, err := h.Playlists.GetByID(ctx, playlistID)
	if err != nil {
		return fail(c, err)
	}
	songs, err := h.Songs.ListByPlaylist(ctx, playlistID)
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusOK, "", echo.Map{"playlist": echo.Map{
		"id":       p.ID,
		"name":     p.Name,
		"username": p.Username,
		"songs":    toSongItems(songs),
	}})
}

// RemoveSong handles DELETE /playlists/:id/songs. Removing a song that is
// not in the playlist is a client error, not a no-op.
func (h *PlaylistHandler) RemoveSong(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, payload{Status: "fail", Message: "unauthorized"})
	}
	playlistID := c.Param("id")
	var req playlistSongReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.SongID) == "" {
		return badRequest(c, "songId is required")
	}
	songID := strings.TrimSpace(req.SongID)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Access.Verify(ctx, playlistID, userID); err != nil {
		return fail(c, err)
	}
	if err := h.Playlists.RemoveSong(ctx, playlistID, songID); err != nil {
		return fail(c, err)
	}
	h.recordActivity(c, playlistID, songID, userID, repository.ActionDelete)

	return success(c, http.StatusOK, "song removed from playlist", nil)
}

// GetActivities handles GET /playlists/:id/activities. An empty history is
// a valid success response.
func (h *PlaylistHandler) GetActivities(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, payload{Status: "fail", Message: "unauthorized"})
	}
	playlistID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Access.Verify(ctx, playlistID, userID); err != nil {
		return fail(c, err)
	}
	acts, err := h.Activities.ListByPlaylist(ctx, playlistID)
	if err != nil {
		return fail(c, err)
	}
	items := make([]activityItem, 0, len(acts))
	for _, a := range acts {
		items = append(items, activityItem{Username: a.Username, Title: a.Title, Action: a.Action, Time: a.Time})
	}
	return success(c, http.StatusOK, "", echo.Map{
		"playlistId": playlistID,
		"activities": items,
	})
}

// recordActivity appends to the activity log and dispatches a broker
// event. Both are best-effort relative to the membership mutation that
// already succeeded: a failed write is logged, never escalated, and the
// broker publish runs in its own goroutine so the response is not held up.
func (h *PlaylistHandler) recordActivity(c echo.Context, playlistID, songID, userID, action string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Activities.Record(ctx, playlistID, songID, userID, action); err != nil {
		c.Logger().Warnf("activity record failed for playlist %s: %v", playlistID, err)
	}
	if h.Events != nil {
		ev := queue.ActivityRecordedEvent{
			PlaylistID: playlistID,
			SongID:     songID,
			UserID:     userID,
			Action:     action,
			RecordedAt: time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = h.Events.Publish(ctx, ev)
		}()
	}
}
