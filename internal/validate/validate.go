// Package validate holds the input-shape validators. Each validator checks
// field presence and format only -- no storage lookups -- and returns a map
// of field name to error message. An empty map means the input is valid.
// Handlers run these before calling a service; uniqueness and credential
// checks stay in the services.
package validate

import (
	"net/url"
	"regexp"
	"strings"
)

// emailRe is intentionally loose: real address validation happens when mail
// bounces, not in a regex. This only rejects obviously malformed input.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Register validates the registration payload.
func Register(name, email, handle, password string) map[string]string {
	errs := make(map[string]string)

	name = strings.TrimSpace(name)
	if name == "" {
		errs["name"] = "Name field is required"
	} else if len(name) < 2 || len(name) > 30 {
		errs["name"] = "Name must be between 2 and 30 characters"
	}

	if email = strings.TrimSpace(email); email == "" {
		errs["email"] = "Email field is required"
	} else if !emailRe.MatchString(email) {
		errs["email"] = "Email is invalid"
	}

	handle = strings.TrimSpace(handle)
	if handle == "" {
		errs["handle"] = "Handle field is required"
	} else if len(handle) < 2 || len(handle) > 40 {
		errs["handle"] = "Handle must be between 2 and 40 characters"
	}

	if password == "" {
		errs["password"] = "Password field is required"
	} else if len(password) < 6 || len(password) > 30 {
		errs["password"] = "Password must be between 6 and 30 characters"
	}

	return errs
}

// Login validates the login payload.
func Login(email, password string) map[string]string {
	errs := make(map[string]string)

	if email = strings.TrimSpace(email); email == "" {
		errs["email"] = "Email field is required"
	} else if !emailRe.MatchString(email) {
		errs["email"] = "Email is invalid"
	}

	if password == "" {
		errs["password"] = "Password field is required"
	}

	return errs
}

// Profile validates the profile upsert payload. All fields are optional;
// only format is checked.
func Profile(website, bio string, age int) map[string]string {
	errs := make(map[string]string)

	if website != "" && !isURL(website) {
		errs["website"] = "Not a Valid URL."
	}

	if len(bio) > 500 {
		errs["bio"] = "Bio must be 500 characters or less"
	}

	if age != 0 && (age < 18 || age > 120) {
		errs["age"] = "Age must be between 18 and 120"
	}

	return errs
}

// Message validates a direct-message payload.
func Message(body string) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(body) == "" {
		errs["msg"] = "Message field is required"
	} else if len(body) > 2000 {
		errs["msg"] = "Message must be 2000 characters or less"
	}

	return errs
}

// isURL reports whether s parses as an absolute http(s) URL.
func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
