package market

import (
	"regexp"
	"strings"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s#-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugDashRuns   = regexp.MustCompile(`-+`)
)

// Slugify derives the url-safe lookup key for a listing name:
// "Crystal Ball #123" becomes "crystal-ball-123". characters outside
// [a-z0-9 whitespace # -] are dropped, not transliterated. the result
// is a fixed point, slugifying a slug returns it unchanged.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = strings.ReplaceAll(s, "#", "-")
	s = slugDashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
