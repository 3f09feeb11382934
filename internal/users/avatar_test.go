package users

import (
	"strings"
	"testing"
)

func TestAvatarURL_Deterministic(t *testing.T) {
	a := avatarURL("alice@example.com")
	b := avatarURL("alice@example.com")
	if a != b {
		t.Errorf("same email produced different URLs: %q vs %q", a, b)
	}
}

func TestAvatarURL_Normalization(t *testing.T) {
	// Gravatar hashes the lowercased, trimmed address; casing and whitespace
	// must not change the avatar.
	base := avatarURL("alice@example.com")
	if got := avatarURL("  Alice@Example.COM  "); got != base {
		t.Errorf("expected normalized email to map to same URL, got %q vs %q", got, base)
	}
}

func TestAvatarURL_Shape(t *testing.T) {
	url := avatarURL("alice@example.com")
	if !strings.HasPrefix(url, "https://www.gravatar.com/avatar/") {
		t.Errorf("unexpected URL prefix: %q", url)
	}
	if !strings.HasSuffix(url, "?s=200&r=pg&d=mm") {
		t.Errorf("expected size/rating/default parameters, got %q", url)
	}

	other := avatarURL("bob@example.com")
	if url == other {
		t.Error("different emails must map to different URLs")
	}
}
