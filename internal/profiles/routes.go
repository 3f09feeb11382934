package profiles

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up profile routes on the given API group. Profile
// lookup and the people feed are public; editing and matching require auth.
func RegisterRoutes(api *echo.Group, h *Handler, requireAuth echo.MiddlewareFunc) {
	api.PUT("/profile", h.Upsert, requireAuth)
	api.GET("/profile/:handle", h.GetByHandle)
	api.GET("/people", h.People)
	api.GET("/matches", h.Matches, requireAuth)
}
