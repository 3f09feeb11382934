package users

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kindred-app/kindred/internal/apperror"
	"github.com/kindred-app/kindred/internal/auth"
)

// searchLimit caps how many rows a name search returns.
const searchLimit = 20

// UserService defines the business logic contract for accounts.
// Handlers call these methods -- they never touch the repository directly.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (token string, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByHandle(ctx context.Context, handle string) (*User, error)
	Search(ctx context.Context, name string) ([]User, error)
	Delete(ctx context.Context, id string) error
}

// userService implements UserService with bcrypt hashing and JWT tokens.
type userService struct {
	repo   UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager

	// tokenTTL is the validity window stamped into issued tokens.
	tokenTTL time.Duration

	// distinctLoginErrors preserves the original API behavior of reporting
	// "user not found" and "password incorrect" separately. See config.
	distinctLoginErrors bool
}

// NewUserService creates a new user service with the given dependencies.
func NewUserService(repo UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager, tokenTTL time.Duration, distinctLoginErrors bool) UserService {
	return &userService{
		repo:                repo,
		hasher:              hasher,
		tokens:              tokens,
		tokenTTL:            tokenTTL,
		distinctLoginErrors: distinctLoginErrors,
	}
}

// Register creates a new account. The email check runs strictly before the
// handle check, so a request that conflicts on both reports only the email.
// Nothing is persisted on any failure branch; the unique indexes in the
// users table backstop the check-then-insert race.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	handle := strings.TrimSpace(input.Handle)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, apperror.NewFieldError(http.StatusBadRequest, "email", "Email already exists")
	} else if !apperror.IsNotFound(err) {
		return nil, apperror.NewInternal(fmt.Errorf("checking email: %w", err))
	}

	if _, err := s.repo.FindByHandle(ctx, handle); err == nil {
		return nil, apperror.NewFieldError(http.StatusBadRequest, "handle", "Handle already taken. Choose another handle")
	} else if !apperror.IsNotFound(err) {
		return nil, apperror.NewInternal(fmt.Errorf("checking handle: %w", err))
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Handle:       handle,
		Avatar:       avatarURL(email),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if appErr, ok := err.(*apperror.AppError); ok {
			// Unique-index conflict: a concurrent registration won the race.
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("handle", user.Handle),
	)

	return user, nil
}

// Login authenticates by email and password and returns a bearer token
// ("Bearer <jwt>") valid for the configured TTL. No partial token is ever
// returned: every failure path yields an empty string and an error.
func (s *userService) Login(ctx context.Context, input LoginInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			if s.distinctLoginErrors {
				return "", apperror.NewFieldError(http.StatusNotFound, "email", "User not found")
			}
			return "", genericLoginError()
		}
		return "", apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		if s.distinctLoginErrors {
			return "", apperror.NewFieldError(http.StatusBadRequest, "password", "Password incorrect")
		}
		return "", genericLoginError()
	}

	signed, err := s.tokens.Issue(auth.Identity{
		ID:     user.ID,
		Name:   user.Name,
		Avatar: user.Avatar,
	}, s.tokenTTL)
	if err != nil {
		// Signing failure is infrastructure, not user error. Propagate it
		// as such instead of masking it behind a credential message.
		return "", apperror.NewInternal(fmt.Errorf("issuing token: %w", err))
	}

	slog.Info("user logged in", slog.String("user_id", user.ID))

	return "Bearer " + signed, nil
}

// genericLoginError is the unified response used when distinct login errors
// are disabled, so callers can't probe which emails have accounts.
func genericLoginError() *apperror.AppError {
	return apperror.NewFieldError(http.StatusBadRequest, "credentials", "Invalid email or password")
}

// GetByID resolves a user by ID. Used by the auth gate to turn verified
// token claims back into a trusted record.
func (s *userService) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByHandle resolves a user by their unique handle.
func (s *userService) GetByHandle(ctx context.Context, handle string) (*User, error) {
	return s.repo.FindByHandle(ctx, strings.TrimSpace(handle))
}

// Search returns users whose name contains the given substring.
func (s *userService) Search(ctx context.Context, name string) ([]User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewFieldError(http.StatusBadRequest, "userName", "Search term is required")
	}

	users, err := s.repo.SearchByName(ctx, name, searchLimit)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("searching users: %w", err))
	}
	return users, nil
}

// Delete removes the given account. Not idempotent: deleting an account
// that is already gone reports a failure, which the handler maps to the
// "has not been deleted" response.
func (s *userService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err == nil {
		slog.Info("user deleted", slog.String("user_id", id))
		return nil
	}
	if appErr, ok := err.(*apperror.AppError); ok {
		return appErr
	}
	return apperror.NewInternal(fmt.Errorf("deleting user: %w", err))
}
