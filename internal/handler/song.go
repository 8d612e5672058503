package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yudistira/open-music-api/internal/repository"
)

// SongHandler serves the song catalog.
type SongHandler struct {
	Songs *repository.SongRepo
}

func NewSongHandler(songs *repository.SongRepo) *SongHandler {
	return &SongHandler{Songs: songs}
}

type songReq struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int64  `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

// songItem is the list representation: id, title and performer only.
type songItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

type songResp struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int64  `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

func (r songReq) toSong() repository.Song {
	s := repository.Song{
		Title:     strings.TrimSpace(r.Title),
		Year:      r.Year,
		Genre:     strings.TrimSpace(r.Genre),
		Performer: strings.TrimSpace(r.Performer),
	}
	if r.Duration != nil {
		s.Duration = sql.NullInt64{Int64: *r.Duration, Valid: true}
	}
	if r.AlbumID != nil && *r.AlbumID != "" {
		s.AlbumID = sql.NullString{String: *r.AlbumID, Valid: true}
	}
	return s
}

func toSongItems(songs []repository.Song) []songItem {
	out := make([]songItem, 0, len(songs))
	for _, s := range songs {
		out = append(out, songItem{ID: s.ID, Title: s.Title, Performer: s.Performer})
	}
	return out
}

func toSongResp(s repository.Song) songResp {
	resp := songResp{
		ID:        s.ID,
		Title:     s.Title,
		Year:      s.Year,
		Genre:     s.Genre,
		Performer: s.Performer,
	}
	if s.Duration.Valid {
		d := s.Duration.Int64
		resp.Duration = &d
	}
	if s.AlbumID.Valid {
		a := s.AlbumID.String
		resp.AlbumID = &a
	}
	return resp
}

// Create handles POST /songs.
func (h *SongHandler) Create(c echo.Context) error {
	var req songReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	s := req.toSong()
	if s.Title == "" || s.Year == 0 || s.Genre == "" || s.Performer == "" {
		return badRequest(c, "title, year, genre and performer are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Songs.Create(ctx, s)
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusCreated, "song added", echo.Map{"songId": id})
}

// List handles GET /songs with optional ?title= and ?performer= filters.
func (h *SongHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	songs, err := h.Songs.List(ctx, c.QueryParam("title"), c.QueryParam("performer"))
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusOK, "", echo.Map{"songs": toSongItems(songs)})
}

// Get handles GET /songs/:id.
func (h *SongHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Songs.GetByID(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusOK, "", echo.Map{"song": toSongResp(s)})
}

// Update handles PUT /songs/:id.
func (h *SongHandler) Update(c echo.Context) error {
	var req songReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	s := req.toSong()
	if s.Title == "" || s.Year == 0 || s.Genre == "" || s.Performer == "" {
		return badRequest(c, "title, year, genre and performer are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Songs.Update(ctx, c.Param("id"), s); err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusOK, "song updated", nil)
}

// Delete handles DELETE /songs/:id.
func (h *SongHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Songs.Delete(ctx, c.Param("id")); err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusOK, "song deleted", nil)
}
