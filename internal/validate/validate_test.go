package validate

import (
	"strings"
	"testing"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		inName   string
		email    string
		handle   string
		password string
		wantErrs map[string]string
	}{
		{
			name:   "valid input",
			inName: "Alice", email: "alice@example.com", handle: "alice", password: "password123",
			wantErrs: map[string]string{},
		},
		{
			name:   "all fields missing",
			inName: "", email: "", handle: "", password: "",
			wantErrs: map[string]string{
				"name":     "Name field is required",
				"email":    "Email field is required",
				"handle":   "Handle field is required",
				"password": "Password field is required",
			},
		},
		{
			name:   "name too short",
			inName: "A", email: "alice@example.com", handle: "alice", password: "password123",
			wantErrs: map[string]string{"name": "Name must be between 2 and 30 characters"},
		},
		{
			name:   "name too long",
			inName: strings.Repeat("a", 31), email: "alice@example.com", handle: "alice", password: "password123",
			wantErrs: map[string]string{"name": "Name must be between 2 and 30 characters"},
		},
		{
			name:   "invalid email",
			inName: "Alice", email: "not-an-email", handle: "alice", password: "password123",
			wantErrs: map[string]string{"email": "Email is invalid"},
		},
		{
			name:   "email with spaces",
			inName: "Alice", email: "al ice@example.com", handle: "alice", password: "password123",
			wantErrs: map[string]string{"email": "Email is invalid"},
		},
		{
			name:   "password too short",
			inName: "Alice", email: "alice@example.com", handle: "alice", password: "12345",
			wantErrs: map[string]string{"password": "Password must be between 6 and 30 characters"},
		},
		{
			name:   "password too long",
			inName: "Alice", email: "alice@example.com", handle: "alice", password: strings.Repeat("x", 31),
			wantErrs: map[string]string{"password": "Password must be between 6 and 30 characters"},
		},
		{
			name:   "handle too long",
			inName: "Alice", email: "alice@example.com", handle: strings.Repeat("h", 41), password: "password123",
			wantErrs: map[string]string{"handle": "Handle must be between 2 and 40 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Register(tt.inName, tt.email, tt.handle, tt.password)
			assertErrMap(t, errs, tt.wantErrs)
		})
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErrs map[string]string
	}{
		{"valid input", "alice@example.com", "password123", map[string]string{}},
		{"missing email", "", "password123", map[string]string{"email": "Email field is required"}},
		{"invalid email", "nope", "password123", map[string]string{"email": "Email is invalid"}},
		{"missing password", "alice@example.com", "", map[string]string{"password": "Password field is required"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Login(tt.email, tt.password)
			assertErrMap(t, errs, tt.wantErrs)
		})
	}
}

func TestProfile(t *testing.T) {
	tests := []struct {
		name     string
		website  string
		bio      string
		age      int
		wantErrs map[string]string
	}{
		{"all optional fields empty", "", "", 0, map[string]string{}},
		{"valid website", "https://example.com", "hello", 30, map[string]string{}},
		{"website without scheme", "example.com", "", 0, map[string]string{"website": "Not a Valid URL."}},
		{"website with bad scheme", "ftp://example.com", "", 0, map[string]string{"website": "Not a Valid URL."}},
		{"bio too long", "", strings.Repeat("b", 501), 0, map[string]string{"bio": "Bio must be 500 characters or less"}},
		{"age below minimum", "", "", 17, map[string]string{"age": "Age must be between 18 and 120"}},
		{"age above maximum", "", "", 121, map[string]string{"age": "Age must be between 18 and 120"}},
		{"age at minimum", "", "", 18, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Profile(tt.website, tt.bio, tt.age)
			assertErrMap(t, errs, tt.wantErrs)
		})
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErrs map[string]string
	}{
		{"valid message", "hey there", map[string]string{}},
		{"empty message", "", map[string]string{"msg": "Message field is required"}},
		{"whitespace only", "   ", map[string]string{"msg": "Message field is required"}},
		{"too long", strings.Repeat("m", 2001), map[string]string{"msg": "Message must be 2000 characters or less"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Message(tt.body)
			assertErrMap(t, errs, tt.wantErrs)
		})
	}
}

// assertErrMap compares a validator result against the expected field errors.
func assertErrMap(t *testing.T, got, want map[string]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("expected %d errors, got %d: %v", len(want), len(got), got)
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("expected %q error %q, got %q", field, msg, got[field])
		}
	}
}
