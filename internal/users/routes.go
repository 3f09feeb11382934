package users

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all account routes on the given API group.
// Register and login are public; the credential endpoints take per-IP rate
// limiters to slow brute-force and credential-stuffing attempts. Everything
// else sits behind the bearer-token gate.
func RegisterRoutes(api *echo.Group, h *Handler, requireAuth, registerLimit, loginLimit echo.MiddlewareFunc) {
	g := api.Group("/users")

	g.POST("/register", h.Register, registerLimit)
	g.POST("/login", h.Login, loginLimit)

	g.GET("/current", h.Current, requireAuth)
	g.GET("/search/:userName", h.Search, requireAuth)
	g.POST("/delete", h.Delete, requireAuth)
}
