package ui

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}

// truncateMiddle shortens a string by removing characters from the middle,
// preserving both the beginning and end.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

// previewLine flattens content to its first non-blank line.
func previewLine(content string, limit int) string {
	for line := range strings.Lines(content) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return truncate(trimmed, limit)
		}
	}
	return ""
}

// relTime formats a millisecond timestamp relative to the model clock.
func (m Model) relTime(millis int64) string {
	if millis <= 0 {
		return "never"
	}
	then := time.UnixMilli(millis)
	now := m.now()
	if d := now.Sub(then); d < time.Minute && d > -time.Minute {
		return "just now"
	}
	return humanize.RelTime(then, now, "ago", "from now")
}

// formatBytes renders a byte count in SI units.
func formatBytes(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
