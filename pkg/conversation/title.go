package conversation

import (
	"strings"
	"time"
)

const (
	TitleMaxRunes   = 40
	PreviewMaxRunes = 120
	ellipsis        = "..."
)

// Title is taken from the first non-blank user message, or falls back to the date.
func Title(incoming []Message, now time.Time) string {
	for _, m := range incoming {
		if m.Role != RoleUser || IsBlank(m.Content) {
			continue
		}
		return Truncate(strings.TrimSpace(m.Content), TitleMaxRunes)
	}
	return "Chat - " + now.Format("2006-01-02")
}

func Preview(content string) string {
	return Truncate(content, PreviewMaxRunes)
}

// Truncate keeps the first max runes and appends "..." when it cut anything.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + ellipsis
}
