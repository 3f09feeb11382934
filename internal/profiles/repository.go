package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kindred-app/kindred/internal/apperror"
)

// ProfileRepository defines the data access contract for profiles.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *Profile) error
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	ListPeople(ctx context.Context, limit int) ([]Person, error)
}

// profileRepository implements ProfileRepository with hand-written MariaDB queries.
type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository backed by the given DB pool.
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Upsert inserts or replaces the profile for a user. user_id carries a
// unique index, so ON DUPLICATE KEY UPDATE gives one-profile-per-user
// without a separate existence check.
func (r *profileRepository) Upsert(ctx context.Context, profile *Profile) error {
	query := `INSERT INTO profiles (user_id, bio, website, location, hobbies, age, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)
	          ON DUPLICATE KEY UPDATE
	            bio = VALUES(bio), website = VALUES(website), location = VALUES(location),
	            hobbies = VALUES(hobbies), age = VALUES(age), updated_at = VALUES(updated_at)`

	_, err := r.db.ExecContext(ctx, query,
		profile.UserID,
		profile.Bio,
		profile.Website,
		profile.Location,
		joinHobbies(profile.Hobbies),
		profile.Age,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}

	return nil
}

// FindByUserID retrieves the profile belonging to a user.
// Returns apperror.NotFound if the user has no profile yet.
func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	query := `SELECT user_id, bio, website, location, hobbies, age, updated_at
	          FROM profiles WHERE user_id = ?`

	profile := &Profile{}
	var hobbies string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Bio,
		&profile.Website,
		&profile.Location,
		&hobbies,
		&profile.Age,
		&profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("There is no profile for this user")
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	profile.Hobbies = splitHobbies(hobbies)
	return profile, nil
}

// ListPeople returns the newest users joined with their profiles (users
// without a profile still appear, with empty profile fields).
func (r *profileRepository) ListPeople(ctx context.Context, limit int) ([]Person, error) {
	query := `SELECT u.id, u.name, u.handle, u.avatar,
	                 p.bio, p.website, p.location, p.hobbies, p.age
	          FROM users u
	          LEFT JOIN profiles p ON p.user_id = u.id
	          ORDER BY u.created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var people []Person
	for rows.Next() {
		var p Person
		var bio, website, location, hobbies sql.NullString
		var age sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &p.Handle, &p.Avatar,
			&bio, &website, &location, &hobbies, &age); err != nil {
			return nil, fmt.Errorf("scanning person row: %w", err)
		}
		p.Bio = bio.String
		p.Website = website.String
		p.Location = location.String
		p.Hobbies = splitHobbies(hobbies.String)
		p.Age = int(age.Int64)
		people = append(people, p)
	}

	return people, rows.Err()
}

// joinHobbies flattens a hobby list into the stored comma-separated form.
func joinHobbies(hobbies []string) string {
	cleaned := make([]string, 0, len(hobbies))
	for _, h := range hobbies {
		if h = strings.TrimSpace(h); h != "" {
			cleaned = append(cleaned, h)
		}
	}
	return strings.Join(cleaned, ",")
}

// splitHobbies expands the stored comma-separated form back into a list.
func splitHobbies(stored string) []string {
	if stored == "" {
		return nil
	}
	parts := strings.Split(stored, ",")
	hobbies := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			hobbies = append(hobbies, p)
		}
	}
	return hobbies
}
