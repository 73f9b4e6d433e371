package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDateTime = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}(?::\d{2})?$`)
)

// parseDate parses:
// - YYYY-MM-DD (midnight UTC)
// - YYYY-MM-DD HH:MM (local time)
// - RFC3339 / RFC3339Nano
//
// The result is always UTC.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty date")
	}

	if reDateOnly.MatchString(s) {
		ts, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", s, err)
		}
		return &ts, nil
	}

	if reDateTime.MatchString(s) {
		s = strings.Replace(s, "T", " ", 1)
		layout := "2006-01-02 15:04"
		if len(s) > len(layout) {
			layout = "2006-01-02 15:04:05"
		}
		ts, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", s, err)
		}
		ts = ts.UTC()
		return &ts, nil
	}

	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts = ts.UTC()
		return &ts, nil
	}

	return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)", s)
}
