package messages

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kindred-app/kindred/internal/apperror"
	"github.com/kindred-app/kindred/internal/users"
	"github.com/kindred-app/kindred/internal/validate"
)

// Handler handles HTTP requests for direct messages.
type Handler struct {
	service MessageService
}

// NewHandler creates a new messages handler with the given service.
func NewHandler(service MessageService) *Handler {
	return &Handler{service: service}
}

// Send delivers a message to the user in the path (POST /api/messages/:id).
// Sender identity comes from the auth gate, never from the body.
func (h *Handler) Send(c echo.Context) error {
	sender := users.CurrentUser(c)
	if sender == nil {
		return apperror.NewUnauthorized("authentication required")
	}

	var req SendRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if errs := validate.Message(req.Body); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, errs)
	}

	message, err := h.service.Send(c.Request().Context(), sender, c.Param("id"), req.Body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, message)
}

// Inbox lists the caller's received messages (GET /api/messages).
func (h *Handler) Inbox(c echo.Context) error {
	user := users.CurrentUser(c)
	if user == nil {
		return apperror.NewUnauthorized("authentication required")
	}

	msgs, err := h.service.Inbox(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, msgs)
}

// Clear empties the caller's inbox (DELETE /api/messages).
func (h *Handler) Clear(c echo.Context) error {
	user := users.CurrentUser(c)
	if user == nil {
		return apperror.NewUnauthorized("authentication required")
	}

	n, err := h.service.ClearInbox(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]int64{"deleted": n})
}
