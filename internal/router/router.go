// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/yudistira/open-music-api/internal/handler"
	"github.com/yudistira/open-music-api/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication beyond what
// the handlers themselves enforce. The login endpoint carries the redis
// rate limiter; loginLimit may be a no-op when redis is absent.
func RegisterRoutes(e *echo.Echo, u *handler.UserHandler, a *handler.AuthHandler, loginLimit echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	e.POST("/users", u.Register)

	e.POST("/authentications", a.Login, loginLimit)
	e.PUT("/authentications", a.Refresh)
	e.DELETE("/authentications", a.Logout)
}

// RegisterCatalog registers the album and song catalog. The catalog is
// public: playlists reference it but it carries no per-user state.
func RegisterCatalog(e *echo.Echo, al *handler.AlbumHandler, s *handler.SongHandler) {
	e.POST("/albums", al.Create)
	e.GET("/albums/:id", al.Get)
	e.PUT("/albums/:id", al.Update)
	e.DELETE("/albums/:id", al.Delete)

	e.POST("/songs", s.Create)
	e.GET("/songs", s.List)
	e.GET("/songs/:id", s.Get)
	e.PUT("/songs/:id", s.Update)
	e.DELETE("/songs/:id", s.Delete)
}

// RegisterPlaylists registers all playlist and collaboration endpoints.
// Every route requires a valid access token; the JWT middleware places the
// caller's user id in the request context.
func RegisterPlaylists(e *echo.Echo, p *handler.PlaylistHandler, col *handler.CollaborationHandler, jwtSecret string) {
	g := e.Group("", middleware.JWTAuth(jwtSecret))

	g.POST("/playlists", p.Create)
	g.GET("/playlists", p.List)
	g.DELETE("/playlists/:id", p.Delete)

	g.POST("/playlists/:id/songs", p.AddSong)
	g.GET("/playlists/:id/songs", p.GetSongs)
	g.DELETE("/playlists/:id/songs", p.RemoveSong)

	g.GET("/playlists/:id/activities", p.GetActivities)

	g.POST("/collaborations", col.Add)
	g.DELETE("/collaborations", col.Delete)
}
