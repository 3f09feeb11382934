// Package sanitize strips HTML from user-generated text. Messages and
// profile fields are plain text in Kindred; anything that looks like markup
// is hostile input, not formatting. Uses bluemonday's strict policy, which
// removes every element (including script/style contents) and leaves only
// the text.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy for stripping markup.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared strict policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text removes all HTML elements from user-provided text and trims
// surrounding whitespace. This MUST be called on message bodies and profile
// fields before storing them, so stored content is safe to echo back to any
// client verbatim.
func Text(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(getPolicy().Sanitize(input))
}
