package utils

import "time"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDateTime accepts the timestamp shapes the API and the datetime-local
// form input produce. Values without a zone are read as local time.
func ParseDateTime(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDateTime renders a medium date with a short time, e.g. "Jan 1, 2025, 9:00 AM".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006, 3:04 PM")
}

// FormatDateTimeString formats a raw timestamp, returning it unchanged when it
// cannot be parsed.
func FormatDateTimeString(value string) string {
	t, ok := ParseDateTime(value)
	if !ok {
		return value
	}
	return FormatDateTime(t)
}
