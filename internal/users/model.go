// Package users handles account registration, login, bearer-token gating,
// and account deletion for Kindred. It owns the users table and composes
// the auth package's hasher and token manager into the credential flows.
package users

import (
	"time"
)

// User represents a registered Kindred user. This is the domain model used
// throughout the application. Database scanning and JSON marshaling use this
// struct directly.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Handle       string    `json:"handle"`
	Avatar       string    `json:"avatar"`
	PasswordHash string    `json:"-"` // Never expose in JSON responses.
	CreatedAt    time.Time `json:"created_at"`
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted to POST /api/users/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

// LoginRequest holds the data submitted to POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the shape-validated input for creating a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Handle   string
	Password string
}

// LoginInput is the shape-validated input for authenticating a user.
type LoginInput struct {
	Email    string
	Password string
}
