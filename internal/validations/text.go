package validations

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var spacesRegex *regexp.Regexp = regexp.MustCompile("[\t|\n]+")

var sanitization = bluemonday.UGCPolicy()

func CleanUpText(text string) string {
	return html.UnescapeString(
		sanitization.Sanitize(
			spacesRegex.ReplaceAllLiteralString(text, " "),
		))
}

var (
	slugInvalidRe = regexp.MustCompile(`[^a-z0-9]+`)
	slugDashesRe  = regexp.MustCompile(`-{2,}`)
)

// Slugify derives the url-safe slug a folder is addressed by.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidRe.ReplaceAllString(slug, "-")
	slug = slugDashesRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "folder"
	}
	return slug
}

// GetLimit parses a ?limit= value, falling back to def and capping at max.
func GetLimit(limitStr string, def, max int) int {
	if limitStr == "" {
		return def
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
