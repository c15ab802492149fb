package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/kirinyoku/eventbuzz/internal/domain"
)

// DisplayLayout renders a medium date with a short time, e.g. "Sep 30, 2025, 7:30 PM".
const DisplayLayout = "Jan 2, 2006, 3:04 PM"

// dateLayouts are the ISO-8601 shapes accepted for event dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// SeatLabel maps "2-9" to "C10". Malformed keys are returned unchanged.
func SeatLabel(key string) string {
	row, col, err := domain.ParseSeatKey(key)
	if err != nil {
		return key
	}
	return string(rune('A'+row)) + strconv.Itoa(col+1)
}

// SeatLabels maps every key, preserving order.
func SeatLabels(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = SeatLabel(k)
	}
	return out
}

// JoinSeatLabels renders keys as "A1, B2".
func JoinSeatLabels(keys []string) string {
	return strings.Join(SeatLabels(keys), ", ")
}

// ParseDate parses a stored event date.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Date renders a stored timestamp for display, falling back to the raw value.
func Date(raw string) string {
	t, err := ParseDate(raw)
	if err != nil {
		return raw
	}
	return t.Format(DisplayLayout)
}
