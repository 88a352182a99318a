package util

import (
	"regexp"
	"strings"
)

var slugInvalidChars = regexp.MustCompile("[^a-z0-9]+")

// Slugify derives a URL-safe identifier from a display name: lowercase,
// non-alphanumeric runs collapsed to single hyphens, no leading or
// trailing hyphen.
func Slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = slugInvalidChars.ReplaceAllString(value, "-")

	return strings.Trim(value, "-")
}
