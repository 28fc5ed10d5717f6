package utils

import (
	"path/filepath"
	"strings"
)

func IsStringInSlice(s string, slice []string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// FileExtension returns the lowercased extension of name without the
// leading dot, or "" when name has none.
func FileExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	return strings.TrimPrefix(ext, ".")
}

// SanitizeFilename strips control characters and path separators so the
// value is safe for Content-Disposition headers and client-side save-as.
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	for _, c := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"} {
		name = strings.ReplaceAll(name, c, "_")
	}
	if name == "" {
		name = "unnamed"
	}
	return name
}
