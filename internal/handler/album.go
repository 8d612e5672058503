package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yudistira/open-music-api/internal/repository"
)

// AlbumHandler serves the album catalog.
type AlbumHandler struct {
	Albums *repository.AlbumRepo
	Songs  *repository.SongRepo
}

func NewAlbumHandler(albums *repository.AlbumRepo, songs *repository.SongRepo) *AlbumHandler {
	return &AlbumHandler{Albums: albums, Songs: songs}
}

type albumReq struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

type albumResp struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Year  int        `json:"year"`
	Songs []songItem `json:"songs,omitempty"`
}

// Create handles POST /albums.
func (h *AlbumHandler) Create(c echo.Context) error {
	var req albumReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Year == 0 {
		return badRequest(c, "name and year are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Albums.Create(ctx, req.Name, req.Year)
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusCreated, "album added", echo.Map{"albumId": id})
}

// Get handles GET /albums/:id and includes the album's songs.
func (h *AlbumHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	album, err := h.Albums.GetByID(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	songs, err := h.Songs.ListByAlbum(ctx, album.ID)
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusOK, "", echo.Map{"album": albumResp{
		ID:    album.ID,
		Name:  album.Name,
		Year:  album.Year,
		Songs: toSongItems(songs),
	}})
}

// Update handles PUT /albums/:id.
func (h *AlbumHandler) Update(c echo.Context) error {
	var req albumReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Year == 0 {
		return badRequest(c, "name and year are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Albums.Update(ctx, c.Param("id"), req.Name, req.Year); err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusOK, "album updated", nil)
}

// Delete handles DELETE /albums/:id.
func (h *AlbumHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Albums.Delete(ctx, c.Param("id")); err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusOK, "album deleted", nil)
}
