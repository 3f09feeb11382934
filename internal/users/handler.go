package users

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kindred-app/kindred/internal/apperror"
	"github.com/kindred-app/kindred/internal/validate"
)

// Delete responses are part of the API contract -- clients match on the
// exact strings.
const (
	deleteSuccessMessage = "User has been deleted."
	deleteFailureMessage = "User has not been deleted!"
)

// Handler handles HTTP requests for accounts (register, login, current,
// search, delete). Handlers are thin: they bind the request, run the shape
// validators, call the service, and render JSON. No business logic lives here.
type Handler struct {
	service UserService
}

// NewHandler creates a new users handler with the given service.
func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

// Register creates a new account (POST /api/users/register).
// Responds with the created record; the password hash never serializes.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if errs := validate.Register(req.Name, req.Email, req.Handle, req.Password); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, errs)
	}

	user, err := h.service.Register(c.Request().Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Handle:   req.Handle,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Login authenticates and returns a bearer token (POST /api/users/login).
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if errs := validate.Login(req.Email, req.Password); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, errs)
	}

	token, err := h.service.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// Current returns the authenticated user (GET /api/users/current).
// The record comes from the auth gate's re-resolution, not from the token.
func (h *Handler) Current(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return apperror.NewUnauthorized("authentication required")
	}
	return c.JSON(http.StatusOK, user)
}

// Search finds users by display name (GET /api/users/search/:userName).
func (h *Handler) Search(c echo.Context) error {
	users, err := h.service.Search(c.Request().Context(), c.Param("userName"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Delete removes the authenticated user's own account
// (POST /api/users/delete). Any failure -- including the record already
// being gone -- reports the failure message; a second delete is not a
// silent success.
func (h *Handler) Delete(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return apperror.NewUnauthorized("authentication required")
	}

	if err := h.service.Delete(c.Request().Context(), user.ID); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": deleteFailureMessage})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": deleteSuccessMessage})
}
