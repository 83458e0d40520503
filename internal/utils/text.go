package utils

import "strings"

const truncationSuffix = "... (message truncated due to length)"

// Truncate caps a message at limit runes, appending the truncation notice the
// WhatsApp channel has always used. The notice counts against nothing: the
// cap applies to the original content only.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + truncationSuffix
}

// FirstWord returns the first whitespace-separated token, lowercased. Used to
// route messages like "jira list my open tickets".
func FirstWord(s string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
