package app

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kindred-app/kindred/internal/auth"
	"github.com/kindred-app/kindred/internal/messages"
	"github.com/kindred-app/kindred/internal/middleware"
	"github.com/kindred-app/kindred/internal/profiles"
	"github.com/kindred-app/kindred/internal/users"
)

// RegisterRoutes builds every feature's service stack and registers all
// application routes. This is the single place where features are wired
// together: construction order follows the dependency graph (auth
// primitives, then users, then the features that lean on users).
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Health check endpoint for container orchestration.
	e.GET("/healthz", a.health)

	api := e.Group("/api")

	// --- Auth primitives ---
	hasher := auth.NewPasswordHasher(a.Config.Auth.BcryptCost)
	tokens := auth.NewTokenManager(a.Config.Auth.SecretKey)

	// --- Users (accounts, login, auth gate) ---
	userRepo := users.NewUserRepository(a.DB)
	userSvc := users.NewUserService(userRepo, hasher, tokens,
		a.Config.Auth.TokenTTL, a.Config.Auth.DistinctLoginErrors)
	requireAuth := users.RequireAuth(tokens, userSvc)

	// Credential endpoints are brute-force targets: 5 registrations and 10
	// login attempts per IP per minute.
	registerLimit := middleware.RateLimit(a.Redis, 5, time.Minute)
	loginLimit := middleware.RateLimit(a.Redis, 10, time.Minute)

	users.RegisterRoutes(api, users.NewHandler(userSvc), requireAuth, registerLimit, loginLimit)

	// --- Profiles, people feed, matches ---
	profileRepo := profiles.NewProfileRepository(a.DB)
	profileSvc := profiles.NewProfileService(profileRepo, userSvc, a.Redis)
	profiles.RegisterRoutes(api, profiles.NewHandler(profileSvc), requireAuth)

	// --- Direct messages ---
	messageRepo := messages.NewMessageRepository(a.DB)
	messageSvc := messages.NewMessageService(messageRepo, userSvc)
	messages.RegisterRoutes(api, messages.NewHandler(messageSvc), requireAuth)
}

// health reports liveness plus DB and Redis connectivity.
func (a *App) health(c echo.Context) error {
	ctx := c.Request().Context()

	if err := a.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "database unreachable"})
	}
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "redis unreachable"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
