package utils

import (
	"regexp"
	"strings"
)

var (
	// anchored form, the whole value must be one address
	emailExactRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	// unanchored form, finds addresses embedded in display names or header lines
	emailScanRegex = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// IsEmailAddress reports whether s is exactly one syntactically valid
// email address.
func IsEmailAddress(s string) bool {
	return emailExactRegex.MatchString(strings.TrimSpace(s))
}

// FirstEmailAddress returns the first address embedded anywhere in s,
// or "" when s contains none.
func FirstEmailAddress(s string) string {
	return emailScanRegex.FindString(s)
}

// AllEmailAddresses returns every address embedded in s, in order.
func AllEmailAddresses(s string) []string {
	return emailScanRegex.FindAllString(s, -1)
}

func ExtractDomainFromEmail(email string) string {
	if email == "" {
		return ""
	}

	email = strings.TrimSpace(email)

	// Handle angle brackets, e.g. "Name <email@domain.com>"
	if strings.Contains(email, "<") && strings.Contains(email, ">") {
		startIdx := strings.LastIndex(email, "<") + 1
		endIdx := strings.LastIndex(email, ">")
		if startIdx > 0 && endIdx > startIdx {
			email = email[startIdx:endIdx]
		}
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}

	return strings.ToLower(strings.TrimSpace(parts[1]))
}
