package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatCharCount renders a "used/limit" counter for a length-limited input
func FormatCharCount(value string, limit int) string {
	return fmt.Sprintf("%d/%d", utf8.RuneCountInString(strings.TrimSpace(value)), limit)
}

// TruncateString shortens s to at most maxLen characters, ending with an
// ellipsis when something was cut.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// FormatFieldError prefixes a validation message with the error marker
func FormatFieldError(message string) string {
	if message == "" {
		return ""
	}
	return "✗ " + message
}
