package users

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kindred-app/kindred/internal/apperror"
	"github.com/kindred-app/kindred/internal/auth"
)

// contextKeyUser is the Echo context key holding the authenticated user.
// Other features read it via CurrentUser.
const contextKeyUser = "auth_user"

// bearerPrefix is the expected Authorization header scheme.
const bearerPrefix = "Bearer "

// RequireAuth returns middleware that gates a route behind bearer-token
// authentication. It verifies the presented token and then re-resolves the
// user from storage -- the downstream handler gets a trusted record, never
// raw claims. On any failure the handler does not run.
//
// Re-resolution also means a token issued to a since-deleted account is
// rejected here, even though its signature and expiry still check out
// (there is no revocation list).
func RequireAuth(tokens *auth.TokenManager, service UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return apperror.NewUnauthorized("authentication required")
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					return apperror.NewUnauthorized("token expired")
				}
				return apperror.NewUnauthorized("invalid token")
			}

			user, err := service.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return apperror.NewUnauthorized("invalid token")
			}

			c.Set(contextKeyUser, user)
			return next(c)
		}
	}
}

// CurrentUser retrieves the authenticated user from the Echo context.
// Returns nil if the request is not authenticated (middleware not applied).
func CurrentUser(c echo.Context) *User {
	user, ok := c.Get(contextKeyUser).(*User)
	if !ok {
		return nil
	}
	return user
}
