package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeBaseName turns a client-supplied filename into a URL-safe base
// name: extension stripped, lower-cased, every run of non-alphanumeric
// characters collapsed to a single hyphen. Falls back to "upload" when
// nothing usable remains.
func SanitizeBaseName(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	base = nonAlphanumeric.ReplaceAllString(strings.ToLower(base), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		return "upload"
	}
	return base
}
