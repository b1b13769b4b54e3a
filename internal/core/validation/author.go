package validation

import (
	"strings"
	"unicode"

	"github.com/blogplatform/blog/internal/core/domain"
)

// FallbackAuthorName is used when nothing in the caller's identity can be
// turned into a valid person name.
const FallbackAuthorName = "Member"

// AuthorName derives the author snapshot for content the caller writes. It
// tries the display name, the username and the email local part in turn,
// stripping characters the name rule rejects, so the result always passes
// IsName.
func AuthorName(c domain.Caller) string {
	local, _, _ := strings.Cut(c.Email, "@")
	for _, candidate := range []string{c.DisplayName, c.Username, local} {
		if name := sanitizeName(candidate); IsName(name) {
			return name
		}
	}
	return FallbackAuthorName
}

// sanitizeName keeps letters, apostrophes and hyphens, turns every other
// run of characters into one space and trims the result to 50 runes.
func sanitizeName(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r) || r == '\'' || r == '-':
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			space = true
		}
	}
	out := []rune(b.String())
	if len(out) > 50 {
		out = out[:50]
	}
	return strings.TrimSpace(string(out))
}
