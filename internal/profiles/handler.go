package profiles

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kindred-app/kindred/internal/apperror"
	"github.com/kindred-app/kindred/internal/users"
	"github.com/kindred-app/kindred/internal/validate"
)

// Handler handles HTTP requests for profiles, the people feed, and matches.
type Handler struct {
	service ProfileService
}

// NewHandler creates a new profiles handler with the given service.
func NewHandler(service ProfileService) *Handler {
	return &Handler{service: service}
}

// Upsert creates or replaces the caller's profile (PUT /api/profile).
func (h *Handler) Upsert(c echo.Context) error {
	user := users.CurrentUser(c)
	if user == nil {
		return apperror.NewUnauthorized("authentication required")
	}

	var req UpsertRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if errs := validate.Profile(req.Website, req.Bio, req.Age); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, errs)
	}

	profile, err := h.service.Upsert(c.Request().Context(), user.ID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}

// GetByHandle returns the public profile for a handle (GET /api/profile/:handle).
func (h *Handler) GetByHandle(c echo.Context) error {
	person, err := h.service.GetByHandle(c.Request().Context(), c.Param("handle"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, person)
}

// People returns the public feed of recent users (GET /api/people).
func (h *Handler) People(c echo.Context) error {
	people, err := h.service.People(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, people)
}

// Matches returns people compatible with the caller (GET /api/matches).
func (h *Handler) Matches(c echo.Context) error {
	user := users.CurrentUser(c)
	if user == nil {
		return apperror.NewUnauthorized("authentication required")
	}

	matches, err := h.service.Matches(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, matches)
}
