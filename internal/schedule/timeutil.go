package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// IsValidDate reports whether s is a calendar date in canonical YYYY-MM-DD
// form. Parsing alone is not enough: the parsed date re-serialised must equal
// the input, which rejects overflow dates such as "2024-13-40" as well as
// non-canonical spellings like "24-01-05".
func IsValidDate(s string) bool {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(dateLayout) == s
}

// IsValidTime reports whether s is a 24-hour clock time in H:MM or HH:MM
// form with hour 0-23 and minute 0-59.
func IsValidTime(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

// DurationHours returns the span between two clock times in hours. Unparseable
// inputs and non-positive spans yield 0; overnight sessions are not supported.
func DurationHours(start, end string) float64 {
	startMin, ok := minutesOfDay(start)
	if !ok {
		return 0
	}
	endMin, ok := minutesOfDay(end)
	if !ok {
		return 0
	}
	if endMin <= startMin {
		return 0
	}
	return float64((endMin-startMin)*60) / 3600
}

func minutesOfDay(s string) (int, bool) {
	if !IsValidTime(s) {
		return 0, false
	}
	parts := strings.Split(s, ":")
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	return hour*60 + minute, true
}

// formatDuration renders a duration in hours for display labels, trimming a
// trailing zero fraction ("2h", "1.5h").
func formatDuration(hours float64) string {
	s := strconv.FormatFloat(hours, 'f', -1, 64)
	return fmt.Sprintf("%sh", s)
}

func parseDate(s string) (time.Time, bool) {
	if !IsValidDate(s) {
		return time.Time{}, false
	}
	t, _ := time.Parse(dateLayout, s)
	return t, true
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
