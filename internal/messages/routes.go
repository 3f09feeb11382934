package messages

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up message routes on the given API group.
// Every message operation requires authentication.
func RegisterRoutes(api *echo.Group, h *Handler, requireAuth echo.MiddlewareFunc) {
	g := api.Group("/messages", requireAuth)

	g.POST("/:id", h.Send)
	g.GET("", h.Inbox)
	g.DELETE("", h.Clear)
}
