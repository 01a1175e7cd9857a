package rooms

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slugStripPattern    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapsePattern = regexp.MustCompile(`[\s_-]+`)
)

// Slugify reduces a display name to a URL-safe token: lower-cased, trimmed,
// stripped of punctuation, with whitespace, underscore and hyphen runs
// collapsed to single hyphens. An empty or all-punctuation name yields "".
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = slugCollapsePattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// MakeSlug derives the persisted slug for a room: the slugified name plus a
// base-36 timestamp suffix for uniqueness. The suffix keeps renames cheap
// because the slug is never regenerated once assigned.
func MakeSlug(name string, now time.Time) string {
	return Slugify(name) + "-" + strconv.FormatInt(now.UnixMilli(), 36)
}
