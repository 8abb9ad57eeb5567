package application

import (
	"fmt"
	"strings"
	"time"
)

// FormatDate renders t the way reservation dates are stored, e.g. "19 Nov, 2025".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s, %d", t.Day(), t.Format("Jan"), t.Year())
}

// FilterByDate keeps reservations whose date text mentions the formatted day.
// The input order is preserved.
func FilterByDate(reservations []Reservation, day time.Time) []Reservation {
	needle := FormatDate(day)
	filtered := make([]Reservation, 0, len(reservations))
	for _, r := range reservations {
		if containsDay(r.Date, needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// containsDay is strings.Contains that refuses matches preceded by a digit,
// so "1 Nov, 2025" does not match "11 Nov, 2025".
func containsDay(text, needle string) bool {
	for offset := 0; offset <= len(text)-len(needle); {
		idx := strings.Index(text[offset:], needle)
		if idx < 0 {
			return false
		}
		start := offset + idx
		if start == 0 || text[start-1] < '0' || text[start-1] > '9' {
			return true
		}
		offset = start + 1
	}
	return false
}
