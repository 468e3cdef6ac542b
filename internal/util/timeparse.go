package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// ResolveDay turns a day expression into a local YYYY-MM-DD string.
// Accepted forms: "2006-01-02", "today", "yesterday", and "<n>d" / "<n>w"
// for n days or weeks before now.
func ResolveDay(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "", fmt.Errorf("empty date expression")
	}
	now = now.Local()

	switch s {
	case "today":
		return now.Format(dayLayout), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(dayLayout), nil
	}

	suffixes := []struct {
		suffix string
		days   int
	}{
		{"w", 7},
		{"d", 1},
	}
	for _, sfx := range suffixes {
		if strings.HasSuffix(s, sfx.suffix) {
			numStr := strings.TrimSuffix(s, sfx.suffix)
			if n, err := strconv.Atoi(numStr); err == nil && n >= 0 {
				return now.AddDate(0, 0, -n*sfx.days).Format(dayLayout), nil
			}
			return "", fmt.Errorf("invalid %s offset: %q", sfx.suffix, s)
		}
	}

	t, err := time.ParseInLocation(dayLayout, s, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t.Format(dayLayout), nil
}

// ParseIndex parses a positive 1-based position.
func ParseIndex(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
