package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yudistira/open-music-api/internal/repository"
	"github.com/yudistira/open-music-api/internal/service"
)

// CollaborationHandler serves collaborator management. Only a playlist's
// owner may grant or revoke collaborations.
type CollaborationHandler struct {
	Users   *repository.UserRepo
	Collabs *repository.CollaborationRepo
	Access  *service.PlaylistAccess
}

func NewCollaborationHandler(users *repository.UserRepo, collabs *repository.CollaborationRepo, access *service.PlaylistAccess) *CollaborationHandler {
	return &CollaborationHandler{Users: users, Collabs: collabs, Access: access}
}

type collaborationReq struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

func (r *collaborationReq) validate() (string, string, bool) {
	playlistID := strings.TrimSpace(r.PlaylistID)
	userID := strings.TrimSpace(r.UserID)
	return playlistID, userID, playlistID != "" && userID != ""
}

// Add handles POST /collaborations. The granted user must exist; the
// caller must own the playlist.
func (h *CollaborationHandler) Add(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, payload{Status: "fail", Message: "unauthorized"})
	}
	var req collaborationReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	playlistID, userID, ok := req.validate()
	if !ok {
		return badRequest(c, "playlistId and userId are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Exists(ctx, userID); err != nil {
		return fail(c, err)
	}
	if err := h.Access.VerifyOwner(ctx, playlistID, callerID); err != nil {
		return fail(c, err)
	}
	id, err := h.Collabs.Add(ctx, playlistID, userID)
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusCreated, "collaborator added", echo.Map{"collaborationId": id})
}

// Delete handles DELETE /collaborations.
func (h *CollaborationHandler) Delete(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, payload{Status: "fail", Message: "unauthorized"})
	}
	var req collaborationReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	playlistID, userID, ok := req.validate()
	if !ok {
		return badRequest(c, "playlistId and userId are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Access.VerifyOwner(ctx, playlistID, callerID); err != nil {
		return fail(c, err)
	}
	if err := h.Collabs.Delete(ctx, playlistID, userID); err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusOK, "collaborator removed", nil)
}
