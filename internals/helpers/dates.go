// file: internals/helpers/dates.go
package helper

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDateYYYYMMDD parses a calendar date and normalizes it to midnight UTC
// so equality comparisons on date columns behave the same everywhere.
func ParseDateYYYYMMDD(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return NormalizeDate(t), true
}

func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ISODayOfWeek maps time.Weekday (Sunday=0) onto 1..7 with Monday=1.
func ISODayOfWeek(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}

func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
