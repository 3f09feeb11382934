package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kindred-app/kindred/internal/apperror"
	"github.com/kindred-app/kindred/internal/auth"
)

// --- Mock Service ---

// mockUserService implements UserService for middleware and handler tests.
type mockUserService struct {
	registerFn    func(ctx context.Context, input RegisterInput) (*User, error)
	loginFn       func(ctx context.Context, input LoginInput) (string, error)
	getByIDFn     func(ctx context.Context, id string) (*User, error)
	getByHandleFn func(ctx context.Context, handle string) (*User, error)
	searchFn      func(ctx context.Context, name string) ([]User, error)
	deleteFn      func(ctx context.Context, id string) error
}

func (m *mockUserService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, input)
	}
	return &User{ID: "user-123"}, nil
}

func (m *mockUserService) Login(ctx context.Context, input LoginInput) (string, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, input)
	}
	return "Bearer token", nil
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserService) GetByHandle(ctx context.Context, handle string) (*User, error) {
	if m.getByHandleFn != nil {
		return m.getByHandleFn(ctx, handle)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserService) Search(ctx context.Context, name string) ([]User, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, name)
	}
	return nil, nil
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- RequireAuth ---

// runGate sends a request with the given Authorization header through
// RequireAuth and returns the user the inner handler saw plus the gate's error.
func runGate(t *testing.T, tokens *auth.TokenManager, service UserService, header string) (*User, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/current", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *User
	handler := RequireAuth(tokens, service)(func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	return seen, err
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret)
	signed, err := tokens.Issue(auth.Identity{ID: "user-123", Name: "Alice"}, time.Hour)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	service := &mockUserService{
		getByIDFn: func(ctx context.Context, id string) (*User, error) {
			if id != "user-123" {
				t.Errorf("expected lookup of user-123, got %q", id)
			}
			return &User{ID: id, Name: "Alice"}, nil
		},
	}

	seen, err := runGate(t, tokens, service, "Bearer "+signed)
	if err != nil {
		t.Fatalf("expected request to pass the gate, got %v", err)
	}
	if seen == nil || seen.ID != "user-123" {
		t.Errorf("expected handler to see user-123, got %+v", seen)
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret)
	seen, err := runGate(t, tokens, &mockUserService{}, "")
	assertAppError(t, err, 401)
	if seen != nil {
		t.Error("handler must not run without credentials")
	}
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret)
	_, err := runGate(t, tokens, &mockUserService{}, "Basic dXNlcjpwYXNz")
	assertAppError(t, err, 401)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret)
	signed, err := tokens.Issue(auth.Identity{ID: "user-123"}, -time.Minute)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	_, gateErr := runGate(t, tokens, &mockUserService{}, "Bearer "+signed)
	assertAppError(t, gateErr, 401)
	var appErr *apperror.AppError
	if errors.As(gateErr, &appErr) && appErr.Message != "token expired" {
		t.Errorf("expected message %q, got %q", "token expired", appErr.Message)
	}
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret)
	_, err := runGate(t, tokens, &mockUserService{}, "Bearer not.a.jwt")
	assertAppError(t, err, 401)
}

// A structurally valid token for an account that no longer exists must be
// rejected: the gate re-resolves the user from storage on every request.
func TestRequireAuth_DeletedUser(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret)
	signed, err := tokens.Issue(auth.Identity{ID: "ghost-user"}, time.Hour)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	service := &mockUserService{
		getByIDFn: func(ctx context.Context, id string) (*User, error) {
			return nil, apperror.NewNotFound("user not found")
		},
	}

	seen, gateErr := runGate(t, tokens, service, "Bearer "+signed)
	assertAppError(t, gateErr, 401)
	if seen != nil {
		t.Error("handler must not run for a deleted account")
	}
}

func TestCurrentUser_Unauthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if user := CurrentUser(c); user != nil {
		t.Errorf("expected nil user on unauthenticated context, got %+v", user)
	}
}
