// Package handler implements the HTTP surface. Every response uses the
// same envelope: {"status": "success"|"fail"|"error", "message"?, "data"?}.
// "fail" marks client-caused errors (400/401/403/404/429), "error" marks
// server failures (500).
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yudistira/open-music-api/internal/repository"
)

type payload struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, payload{Status: "success", Message: message, Data: data})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, payload{Status: "fail", Message: message})
}

// fail maps a repository/service error onto the HTTP status dictated by
// its kind. Errors outside the taxonomy are logged and surfaced as a
// generic 500 so driver details never leak to clients.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrInvariant):
		return c.JSON(http.StatusBadRequest, payload{Status: "fail", Message: err.Error()})
	case errors.Is(err, repository.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, payload{Status: "fail", Message: err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, payload{Status: "fail", Message: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, payload{Status: "fail", Message: err.Error()})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, payload{
		Status:  "error",
		Message: "sorry, something went wrong on our end",
	})
}

// getUserID extracts the authenticated user id placed in the context by
// the JWT middleware.
func getUserID(c echo.Context) (string, error) {
	if id, ok := c.Get("user_id").(string); ok && id != "" {
		return id, nil
	}
	return "", errors.New("missing user_id in context")
}
