package domain

import (
	"regexp"
	"strings"
)

var (
	nonSlugRun  = regexp.MustCompile(`[^a-z0-9]+`)
	validSlugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify derives a URL-safe slug from a title: lowercase, every run of
// non-alphanumeric characters collapsed to one hyphen, no leading or trailing
// hyphen. Only ASCII letters and digits survive.
//
//	Slugify("Hello, World! 2024") == "hello-world-2024"
func Slugify(title string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// ValidSlug reports whether s is already in the form Slugify produces.
func ValidSlug(s string) bool {
	return validSlugRe.MatchString(s)
}
