package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/kindred-app/kindred/internal/apperror"
)

// mysqlDuplicateEntry is the MariaDB error number for a unique-index
// violation. The unique indexes on email and handle are the real guard
// against the check-then-insert race in registration.
const mysqlDuplicateEntry = 1062

// UserRepository defines the data access contract for user records.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByHandle(ctx context.Context, handle string) (*User, error)
	SearchByName(ctx context.Context, name string, limit int) ([]User, error)
	Delete(ctx context.Context, id string) error
}

// userRepository implements UserRepository with hand-written MariaDB queries.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user row. A duplicate email or handle trips the
// unique indexes and comes back as a conflict, so a registration that lost
// a race still fails cleanly instead of surfacing a driver error.
func (r *userRepository) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (id, name, email, handle, avatar, password_hash, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Handle,
		user.Avatar,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return apperror.NewConflict("email or handle already registered")
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by their UUID.
// Returns apperror.NotFound if no user exists with this ID.
func (r *userRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT id, name, email, handle, avatar, password_hash, created_at
	          FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindByEmail retrieves a user by their email address.
// Returns apperror.NotFound if no user exists with this email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, name, email, handle, avatar, password_hash, created_at
	          FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// FindByHandle retrieves a user by their unique handle.
// Returns apperror.NotFound if no user exists with this handle.
func (r *userRepository) FindByHandle(ctx context.Context, handle string) (*User, error) {
	query := `SELECT id, name, email, handle, avatar, password_hash, created_at
	          FROM users WHERE handle = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, handle))
}

// SearchByName returns users whose display name contains the given
// substring, newest first.
func (r *userRepository) SearchByName(ctx context.Context, name string, limit int) ([]User, error) {
	query := `SELECT id, name, email, handle, avatar, password_hash, created_at
	          FROM users WHERE name LIKE ? ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, "%"+name+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Handle, &u.Avatar, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// Delete removes a user row. Deliberately not idempotent: deleting a row
// that is already gone reports not found, and the handler surfaces that as
// a failed delete.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("user not found")
	}

	return nil
}

// scanOne scans a single user row, mapping sql.ErrNoRows to apperror.NotFound.
func (r *userRepository) scanOne(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Handle,
		&user.Avatar,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return user, nil
}
