package users

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// avatarURL derives a Gravatar URL from an email address. Deterministic by
// design: the same email always maps to the same avatar, and clients that
// know a user's email get the same image Gravatar would serve them.
// Parameters: 200px, PG-rated, "mystery man" fallback for emails with no
// Gravatar account. Not security-relevant -- md5 here is an identifier,
// not a credential hash.
func avatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}
