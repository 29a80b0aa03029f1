package snapshot

import (
	"regexp"
	"strings"
)

// outputSuffix is appended to the extension-stripped upload name.
const outputSuffix = "_code_image.png"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces an uploaded filename to a safe basename: path
// components from either separator convention are stripped, spaces become
// underscores, anything outside [A-Za-z0-9_.-] is dropped, and leading dots
// are removed so the result can never be a hidden or traversal name.
func SanitizeFilename(name string) string {
	// Keep only the final path element; uploads may carry either separator.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "code"
	}
	return name
}

// OutputFilename derives the download filename from the sanitized upload
// name: extension stripped, fixed suffix appended.
func OutputFilename(name string) string {
	name = SanitizeFilename(name)
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return name + outputSuffix
}
