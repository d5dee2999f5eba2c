package users

import "strings"

// NormalizeUsername canonicalizes a login identifier. Usernames are stored
// and looked up lowercased so the sign-in form is case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
