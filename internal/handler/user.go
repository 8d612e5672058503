package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yudistira/open-music-api/internal/config"
	"github.com/yudistira/open-music-api/internal/repository"
)

// UserHandler serves user registration.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

type registerReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

// Register handles POST /users.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Fullname = strings.TrimSpace(req.Fullname)
	if req.Username == "" || req.Password == "" || req.Fullname == "" {
		return badRequest(c, "username, password and fullname are required")
	}
	if len(req.Username) > 50 {
		return badRequest(c, "username must be at most 50 characters")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Username, req.Password, req.Fullname, h.Cfg.BcryptCost)
	if err != nil {
		return fail(c, err)
	}
	return success(c, http.StatusCreated, "user added", echo.Map{"userId": id})
}
