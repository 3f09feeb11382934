// Package profiles handles dating profiles: the free-form details a user
// shares (bio, website, location, hobbies, age), the public people feed,
// and hobby/age matching. One profile per user, keyed by user ID.
package profiles

import (
	"time"
)

// Profile is the domain model for a user's profile. Hobbies are stored
// comma-separated in MariaDB and split at the repository boundary.
type Profile struct {
	UserID    string    `json:"user_id"`
	Bio       string    `json:"bio,omitempty"`
	Website   string    `json:"website,omitempty"`
	Location  string    `json:"location,omitempty"`
	Hobbies   []string  `json:"hobbies,omitempty"`
	Age       int       `json:"age,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Person is the public projection of a user and their profile, used by the
// people feed, profile lookup, and matches. Never includes email or any
// credential material.
type Person struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Handle   string   `json:"handle"`
	Avatar   string   `json:"avatar"`
	Bio      string   `json:"bio,omitempty"`
	Website  string   `json:"website,omitempty"`
	Location string   `json:"location,omitempty"`
	Hobbies  []string `json:"hobbies,omitempty"`
	Age      int      `json:"age,omitempty"`
}

// UpsertRequest holds the data submitted to PUT /api/profile.
type UpsertRequest struct {
	Bio      string   `json:"bio"`
	Website  string   `json:"website"`
	Location string   `json:"location"`
	Hobbies  []string `json:"hobbies"`
	Age      int      `json:"age"`
}
